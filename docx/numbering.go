package docx

import (
	"fmt"
	"strings"

	"github.com/tsawler/docnum/numbering"
)

// convertNumbering turns numbering.xml into engine definitions. Entries the
// engine would reject (unparsable or repeated ids, repeated levels) are
// dropped and reported; Word itself keeps the first occurrence.
func convertNumbering(nx *numberingXML) (numbering.Definitions, []error) {
	var defs numbering.Definitions
	var problems []error
	if nx == nil {
		return defs, nil
	}

	seenAbstract := make(map[int]bool)
	for _, a := range nx.AbstractNums {
		id, ok := parseInt(a.AbstractNumID)
		if !ok {
			problems = append(problems, fmt.Errorf("abstractNum %q: invalid id", a.AbstractNumID))
			continue
		}
		if seenAbstract[id] {
			problems = append(problems, fmt.Errorf("abstractNum %d: %w", id, numbering.ErrDuplicateDefinition))
			continue
		}
		seenAbstract[id] = true

		abs := numbering.AbstractNumbering{
			ID:           id,
			NumStyleLink: optionalVal(a.NumStyleLink),
			StyleLink:    optionalVal(a.StyleLink),
		}
		seenLevel := make(map[int]bool)
		for _, l := range a.Levels {
			def, err := convertLevel(l)
			if err != nil {
				problems = append(problems, fmt.Errorf("abstractNum %d: %w", id, err))
				continue
			}
			if seenLevel[def.Level] {
				problems = append(problems, fmt.Errorf("abstractNum %d level %d: %w", id, def.Level, numbering.ErrDuplicateDefinition))
				continue
			}
			seenLevel[def.Level] = true
			abs.Levels = append(abs.Levels, def)
		}
		defs.Abstracts = append(defs.Abstracts, abs)
	}

	seenNum := make(map[int]bool)
	for _, n := range nx.Nums {
		id, ok := parseInt(n.NumID)
		if !ok {
			problems = append(problems, fmt.Errorf("num %q: invalid id", n.NumID))
			continue
		}
		abstractID, ok := parseInt(n.AbstractNumID.Val)
		if !ok {
			problems = append(problems, fmt.Errorf("num %d: invalid abstractNumId %q", id, n.AbstractNumID.Val))
			continue
		}
		if seenNum[id] {
			problems = append(problems, fmt.Errorf("num %d: %w", id, numbering.ErrDuplicateDefinition))
			continue
		}
		seenNum[id] = true

		inst := numbering.NumberingInstance{ID: id, AbstractID: abstractID}
		for _, o := range n.LvlOverrides {
			level, ok := parseInt(o.ILvl)
			if !ok {
				problems = append(problems, fmt.Errorf("num %d: invalid override level %q", id, o.ILvl))
				continue
			}
			override := numbering.LevelOverride{Level: level}
			if o.StartOverride != nil {
				if start, ok := parseInt(o.StartOverride.Val); ok {
					override.Start = &start
				}
			}
			if o.Lvl != nil {
				lvl := *o.Lvl
				lvl.ILvl = o.ILvl // the override's ilvl is authoritative
				def, err := convertLevel(lvl)
				if err != nil {
					problems = append(problems, fmt.Errorf("num %d override %d: %w", id, level, err))
				} else {
					override.Definition = &def
				}
			}
			inst.Overrides = append(inst.Overrides, override)
		}
		defs.Instances = append(defs.Instances, inst)
	}

	return defs, problems
}

// convertLevel converts a w:lvl element. Absent children take Word's
// defaults: start 0, decimal format, left justification, tab suffix.
func convertLevel(l lvlXML) (numbering.LevelDefinition, error) {
	level, ok := parseInt(l.ILvl)
	if !ok {
		return numbering.LevelDefinition{}, fmt.Errorf("invalid ilvl %q", l.ILvl)
	}

	def := numbering.LevelDefinition{
		Level:          level,
		Format:         numbering.FormatDecimal,
		Justification:  numbering.JustifyLeft,
		Suffix:         numbering.SuffixTab,
		ParagraphStyle: optionalVal(l.PStyle),
		Paragraph:      convertParagraphProps(l.PPr),
		Legal:          onOff(l.IsLgl),
	}
	if l.Start != nil {
		if start, ok := parseInt(l.Start.Val); ok {
			def.Start = start
		}
	}
	if l.NumFmt != nil && l.NumFmt.Val != "" {
		def.Format = numbering.Format(l.NumFmt.Val)
	}
	if l.LvlText != nil {
		def.Text = l.LvlText.Val
	}
	if l.LvlJc != nil && l.LvlJc.Val != "" {
		def.Justification = numbering.Justification(l.LvlJc.Val)
	}
	if l.Suff != nil {
		switch numbering.Suffix(l.Suff.Val) {
		case numbering.SuffixSpace:
			def.Suffix = numbering.SuffixSpace
		case numbering.SuffixNothing:
			def.Suffix = numbering.SuffixNothing
		}
	}
	if l.LvlRestart != nil {
		if restart, ok := parseInt(l.LvlRestart.Val); ok {
			def.Restart = &restart
		}
	}
	return def, nil
}

// convertParagraphProps maps a level's w:pPr to engine paragraph properties.
func convertParagraphProps(p paragraphPropsXML) numbering.ParagraphProperties {
	var props numbering.ParagraphProperties
	if p.Justification != nil {
		props.Alignment = p.Justification.Val
	}
	if ind := p.Indent; ind != nil {
		indent := &numbering.Indent{
			Start:     parseTwips(firstNonEmpty(ind.Start, ind.Left)),
			End:       parseTwips(firstNonEmpty(ind.End, ind.Right)),
			FirstLine: parseTwips(ind.FirstLine),
			Hanging:   parseTwips(ind.Hanging),
		}
		if *indent != (numbering.Indent{}) {
			props.Indent = indent
		}
	}
	if sp := p.Spacing; sp != nil {
		spacing := &numbering.Spacing{
			Before: parseTwips(sp.Before),
			After:  parseTwips(sp.After),
			Line:   parseTwips(sp.Line),
		}
		if *spacing != (numbering.Spacing{}) {
			props.Spacing = spacing
		}
	}
	return props
}

// styleLookup resolves numbering styles through their w:numPr/w:numId. It
// backs style links whose target abstract carries no w:styleLink.
type styleLookup struct {
	styles    *StyleResolver
	instances map[int]int // numId -> abstractNumId
}

func newStyleLookup(styles *StyleResolver, defs numbering.Definitions) *styleLookup {
	instances := make(map[int]int, len(defs.Instances))
	for _, inst := range defs.Instances {
		instances[inst.ID] = inst.AbstractID
	}
	return &styleLookup{styles: styles, instances: instances}
}

// AbstractForStyle implements numbering.StyleLookup.
func (l *styleLookup) AbstractForStyle(styleID string) (int, bool) {
	if !l.styles.Has(styleID) {
		return 0, false
	}
	style := l.styles.Resolve(styleID)
	if style.NumID == nil {
		return 0, false
	}
	abstractID, ok := l.instances[*style.NumID]
	return abstractID, ok
}

func optionalVal(v *valXML) *string {
	if v == nil {
		return nil
	}
	s := v.Val
	return &s
}

// onOff reads an OOXML boolean toggle: present with no value means true.
func onOff(v *valXML) bool {
	if v == nil {
		return false
	}
	switch strings.ToLower(v.Val) {
	case "0", "false", "off":
		return false
	}
	return true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
