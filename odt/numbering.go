package odt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tsawler/docnum/numbering"
)

// maxLevels is the number of levels an ODF list style may define.
const maxLevels = 10

// defaultBullet is used when a bullet level names no character.
const defaultBullet = "•"

// numFormats maps style:num-format to engine formats.
var numFormats = map[string]numbering.Format{
	"1": numbering.FormatDecimal,
	"a": numbering.FormatLowerLetter,
	"A": numbering.FormatUpperLetter,
	"i": numbering.FormatLowerRoman,
	"I": numbering.FormatUpperRoman,
	"":  numbering.FormatNone,
}

// listStyleTable maps ODF list styles to abstract numberings.
type listStyleTable struct {
	abstracts  []numbering.AbstractNumbering
	ids        map[string]int // list style name -> abstract id
	outlineID  int
	hasOutline bool
}

// convertListStyles turns every list style, and the outline style, into an
// abstract numbering. Ids follow sorted style names; the outline style comes
// last. Levels that cannot be read are dropped and reported.
func convertListStyles(sr *StyleResolver) (*listStyleTable, []error) {
	t := &listStyleTable{ids: make(map[string]int)}
	var problems []error

	add := func(name string, ls *listStyleXML) int {
		id := len(t.abstracts)
		abs := numbering.AbstractNumbering{ID: id}
		seen := make(map[int]bool)
		for _, l := range ls.Levels {
			def, ok, err := convertLevel(l)
			if err != nil {
				problems = append(problems, fmt.Errorf("list style %q: %w", name, err))
				continue
			}
			if !ok {
				continue
			}
			if seen[def.Level] {
				problems = append(problems, fmt.Errorf("list style %q level %d: %w", name, def.Level+1, numbering.ErrDuplicateDefinition))
				continue
			}
			seen[def.Level] = true
			abs.Levels = append(abs.Levels, def)
		}
		t.abstracts = append(t.abstracts, abs)
		return id
	}

	for _, name := range sr.ListStyleNames() {
		ls, _ := sr.ListStyle(name)
		t.ids[name] = add(name, ls)
	}
	if outline := sr.OutlineStyle(); outline != nil {
		t.outlineID = add("outline", outline)
		t.hasOutline = true
	}

	return t, problems
}

// abstractID returns the abstract numbering of a list style.
func (t *listStyleTable) abstractID(styleName string) (int, bool) {
	id, ok := t.ids[styleName]
	return id, ok
}

// convertLevel converts one list level style. ok is false for elements that
// are not level styles.
func convertLevel(l listLevelXML) (def numbering.LevelDefinition, ok bool, err error) {
	var isBullet bool
	switch l.XMLName.Local {
	case "list-level-style-number", "outline-level-style":
	case "list-level-style-bullet", "list-level-style-image":
		isBullet = true
	default:
		return def, false, nil
	}

	level, convErr := strconv.Atoi(strings.TrimSpace(l.Level))
	if convErr != nil || level < 1 || level > maxLevels {
		return def, false, fmt.Errorf("invalid level %q", l.Level)
	}

	def = numbering.LevelDefinition{
		Level:         level - 1,
		Start:         1,
		Justification: numbering.JustifyLeft,
		Suffix:        numbering.SuffixTab,
	}

	if isBullet {
		def.Format = numbering.FormatBullet
		def.Text = l.BulletChar
		if def.Text == "" {
			def.Text = defaultBullet
		}
	} else {
		format, known := numFormats[l.NumFormat]
		if !known {
			format = numbering.FormatDecimal
		}
		def.Format = format
		def.Text = l.NumPrefix + levelPattern(def.Level, l.DisplayLevels) + l.NumSuffix
		if l.StartValue != "" {
			if start, err := strconv.Atoi(l.StartValue); err == nil {
				def.Start = start
			}
		}
	}

	if props := l.Properties; props != nil {
		def.Justification = justification(props.TextAlign)
		if la := props.LabelAlignment; la != nil {
			switch la.LabelFollowedBy {
			case "space":
				def.Suffix = numbering.SuffixSpace
			case "nothing":
				def.Suffix = numbering.SuffixNothing
			}
			def.Paragraph = labelIndent(la)
		}
	}

	return def, true, nil
}

// levelPattern builds the placeholder pattern for a level showing display
// levels, e.g. "%1.%2.%3" for level 2 with display-levels 3.
func levelPattern(level int, displayLevels string) string {
	shown := 1
	if n, err := strconv.Atoi(displayLevels); err == nil && n > 1 {
		shown = n
	}
	if shown > level+1 {
		shown = level + 1
	}

	parts := make([]string, 0, shown)
	for l := level - shown + 2; l <= level+1; l++ {
		parts = append(parts, "%"+strconv.Itoa(l))
	}
	return strings.Join(parts, ".")
}

func justification(textAlign string) numbering.Justification {
	switch textAlign {
	case "center":
		return numbering.JustifyCenter
	case "end", "right":
		return numbering.JustifyRight
	default:
		return numbering.JustifyLeft
	}
}

// labelIndent maps label alignment margins to paragraph indentation. A
// negative text-indent is a hanging indent.
func labelIndent(la *labelAlignmentXML) numbering.ParagraphProperties {
	var props numbering.ParagraphProperties
	indent := &numbering.Indent{}
	if v, ok := parseTwips(la.MarginLeft); ok {
		indent.Start = &v
	}
	if v, ok := parseTwips(la.TextIndent); ok {
		switch {
		case v < 0:
			hanging := -v
			indent.Hanging = &hanging
		case v > 0:
			indent.FirstLine = &v
		}
	}
	if *indent != (numbering.Indent{}) {
		props.Indent = indent
	}
	return props
}
