package numbering

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		value  int
		want   string
	}{
		{"decimal", FormatDecimal, 12, "12"},
		{"decimal zero start", FormatDecimal, 0, "0"},
		{"empty format is decimal", "", 3, "3"},
		{"decimal zero padded", FormatDecimalZero, 7, "07"},
		{"decimal zero wide", FormatDecimalZero, 12, "12"},
		{"full width", FormatDecimalFullWidth, 12, "１２"},
		{"lower roman 4", FormatLowerRoman, 4, "iv"},
		{"upper roman 4", FormatUpperRoman, 4, "IV"},
		{"lower roman 3999", FormatLowerRoman, 3999, "mmmcmxcix"},
		{"upper roman 1994", FormatUpperRoman, 1994, "MCMXCIV"},
		{"lower letter 1", FormatLowerLetter, 1, "a"},
		{"upper letter 1", FormatUpperLetter, 1, "A"},
		{"lower letter 26", FormatLowerLetter, 26, "z"},
		{"upper letter 26", FormatUpperLetter, 26, "Z"},
		{"lower letter 27", FormatLowerLetter, 27, "aa"},
		{"upper letter 27", FormatUpperLetter, 27, "AA"},
		{"lower letter 28", FormatLowerLetter, 28, "ab"},
		{"lower letter 702", FormatLowerLetter, 702, "zz"},
		{"lower letter 703", FormatLowerLetter, 703, "aaa"},
		{"ordinal 1", FormatOrdinal, 1, "1st"},
		{"ordinal 2", FormatOrdinal, 2, "2nd"},
		{"ordinal 3", FormatOrdinal, 3, "3rd"},
		{"ordinal 11", FormatOrdinal, 11, "11th"},
		{"ordinal 112", FormatOrdinal, 112, "112th"},
		{"ordinal 21", FormatOrdinal, 21, "21st"},
		{"cardinal 1", FormatCardinalText, 1, "One"},
		{"cardinal 21", FormatCardinalText, 21, "Twenty-one"},
		{"cardinal 40", FormatCardinalText, 40, "Forty"},
		{"cardinal 105", FormatCardinalText, 105, "One hundred five"},
		{"cardinal 2300", FormatCardinalText, 2300, "Two thousand three hundred"},
		{"ordinal text 1", FormatOrdinalText, 1, "First"},
		{"ordinal text 12", FormatOrdinalText, 12, "Twelfth"},
		{"ordinal text 20", FormatOrdinalText, 20, "Twentieth"},
		{"ordinal text 23", FormatOrdinalText, 23, "Twenty-third"},
		{"ordinal text 100", FormatOrdinalText, 100, "One hundredth"},
		{"bullet", FormatBullet, 5, ""},
		{"none", FormatNone, 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatNumber(tt.format, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatNumber_Fallback(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		value  int
		want   string
	}{
		{"roman above range", FormatLowerRoman, 4000, "4000"},
		{"roman zero", FormatUpperRoman, 0, "0"},
		{"letter zero", FormatLowerLetter, 0, "0"},
		{"letter negative", FormatUpperLetter, -3, "-3"},
		{"cardinal too large", FormatCardinalText, 1000000, "1000000"},
		{"ordinal text zero", FormatOrdinalText, 0, "0"},
		{"unknown format", Format("chineseCounting"), 8, "8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatNumber(tt.format, tt.value)
			assert.Equal(t, tt.want, got)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrFormatFallback))

			var fb *FallbackError
			require.True(t, errors.As(err, &fb))
			assert.Equal(t, tt.format, fb.Format)
			assert.Equal(t, tt.value, fb.Value)
		})
	}
}

func TestParsePattern(t *testing.T) {
	parts := parsePattern("%1.%2)")
	require.Len(t, parts, 4)
	assert.Equal(t, 0, parts[0].level)
	assert.Equal(t, ".", parts[1].literal)
	assert.Equal(t, 1, parts[2].level)
	assert.Equal(t, ")", parts[3].literal)

	parts = parsePattern("100%")
	require.Len(t, parts, 1)
	assert.Equal(t, "100%", parts[0].literal)

	parts = parsePattern("%0 and %%1")
	require.Len(t, parts, 2)
	assert.Equal(t, "%0 and %", parts[0].literal)
	assert.Equal(t, 0, parts[1].level)
}

func TestSuffixSeparator(t *testing.T) {
	assert.Equal(t, "\t", SuffixTab.Separator())
	assert.Equal(t, " ", SuffixSpace.Separator())
	assert.Equal(t, "", SuffixNothing.Separator())
	assert.Equal(t, "\t", Suffix("").Separator())
}
