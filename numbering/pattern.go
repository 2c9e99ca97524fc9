package numbering

import "strings"

// patternPart is one piece of a parsed text pattern: either literal text or
// a reference to a level's counter.
type patternPart struct {
	literal string
	level   int // 0-based; -1 for literal parts
}

// parsePattern splits a w:lvlText pattern into literals and placeholders.
// "%N" with N in 1..9 references level N-1; any other '%' is literal.
func parsePattern(pattern string) []patternPart {
	var parts []patternPart
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			parts = append(parts, patternPart{literal: lit.String(), level: -1})
			lit.Reset()
		}
	}

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c == '%' && i+1 < len(pattern) && pattern[i+1] >= '1' && pattern[i+1] <= '9' {
			flush()
			parts = append(parts, patternPart{level: int(pattern[i+1] - '1')})
			i++
			continue
		}
		lit.WriteByte(c)
	}
	flush()

	return parts
}

// renderPattern substitutes each placeholder with value(level).
func renderPattern(pattern string, value func(level int) string) string {
	var sb strings.Builder
	for _, p := range parsePattern(pattern) {
		if p.level < 0 {
			sb.WriteString(p.literal)
			continue
		}
		sb.WriteString(value(p.level))
	}
	return sb.String()
}
