package numbering

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/width"
)

// Casers are stateful, so each call builds its own.
func toUpper(s string) string { return cases.Upper(language.Und).String(s) }
func toLower(s string) string { return cases.Lower(language.Und).String(s) }

// maxRoman is the largest value with a standard subtractive roman form.
const maxRoman = 3999

// maxSpelled is the largest value cardinalText and ordinalText can spell.
const maxSpelled = 999999

// FormatNumber renders n in the given number format. When n cannot be
// represented in that format, the decimal form is returned together with a
// *FallbackError.
//
// Bullet and none are not numeric: bullet yields the empty string here
// (the pattern is used literally by the resolver) and none yields "".
func FormatNumber(f Format, n int) (string, error) {
	switch f {
	case FormatDecimal, "":
		return strconv.Itoa(n), nil
	case FormatDecimalZero:
		if n >= 0 && n < 10 {
			return "0" + strconv.Itoa(n), nil
		}
		return strconv.Itoa(n), nil
	case FormatDecimalFullWidth:
		return width.Widen.String(strconv.Itoa(n)), nil
	case FormatUpperRoman, FormatLowerRoman:
		if n < 1 || n > maxRoman {
			return fallback(f, n)
		}
		if f == FormatLowerRoman {
			return toLower(toRoman(n)), nil
		}
		return toRoman(n), nil
	case FormatUpperLetter, FormatLowerLetter:
		if n < 1 {
			return fallback(f, n)
		}
		if f == FormatUpperLetter {
			return toUpper(toLetters(n)), nil
		}
		return toLetters(n), nil
	case FormatOrdinal:
		if n < 0 {
			return fallback(f, n)
		}
		return strconv.Itoa(n) + ordinalSuffix(n), nil
	case FormatCardinalText:
		if n < 0 || n > maxSpelled {
			return fallback(f, n)
		}
		return capitalize(spellCardinal(n)), nil
	case FormatOrdinalText:
		if n < 1 || n > maxSpelled {
			return fallback(f, n)
		}
		return capitalize(spellOrdinal(n)), nil
	case FormatBullet, FormatNone:
		return "", nil
	default:
		return fallback(f, n)
	}
}

func fallback(f Format, n int) (string, error) {
	return strconv.Itoa(n), &FallbackError{Format: f, Value: n}
}

var romanNumerals = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// toRoman converts 1..3999 to upper-case roman numerals.
func toRoman(n int) string {
	var sb strings.Builder
	for _, rn := range romanNumerals {
		for n >= rn.value {
			sb.WriteString(rn.symbol)
			n -= rn.value
		}
	}
	return sb.String()
}

// toLetters converts n >= 1 to bijective base-26 (1=a, 26=z, 27=aa).
func toLetters(n int) string {
	var buf []byte
	for n > 0 {
		n--
		buf = append(buf, byte('a'+n%26))
		n /= 26
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

func ordinalSuffix(n int) string {
	if n%100 >= 11 && n%100 <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

var (
	ones = []string{
		"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
		"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
		"seventeen", "eighteen", "nineteen",
	}
	tens = []string{
		"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
	}
	irregularOrdinals = map[string]string{
		"one": "first", "two": "second", "three": "third", "five": "fifth",
		"eight": "eighth", "nine": "ninth", "twelve": "twelfth",
	}
)

// spellCardinal spells 0..999999 in lower-case English.
func spellCardinal(n int) string {
	if n < 20 {
		return ones[n]
	}
	if n < 100 {
		if n%10 == 0 {
			return tens[n/10]
		}
		return tens[n/10] + "-" + ones[n%10]
	}
	if n < 1000 {
		s := ones[n/100] + " hundred"
		if n%100 != 0 {
			s += " " + spellCardinal(n%100)
		}
		return s
	}
	s := spellCardinal(n/1000) + " thousand"
	if n%1000 != 0 {
		s += " " + spellCardinal(n%1000)
	}
	return s
}

// spellOrdinal spells 1..999999 as a lower-case English ordinal.
func spellOrdinal(n int) string {
	words := spellCardinal(n)

	// Only the final word (after a space or hyphen) takes the ordinal form.
	cut := strings.LastIndexAny(words, " -") + 1
	head, last := words[:cut], words[cut:]

	switch {
	case irregularOrdinals[last] != "":
		last = irregularOrdinals[last]
	case strings.HasSuffix(last, "y"):
		last = strings.TrimSuffix(last, "y") + "ieth"
	default:
		last += "th"
	}
	return head + last
}

// capitalize upper-cases the first letter only ("Twenty-one").
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return toUpper(s[:1]) + s[1:]
}
