package numjson

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/tsawler/docnum/numbering"
)

// Definitions converts the payload into engine definitions.
func (n *Numberings) Definitions() (numbering.Definitions, error) {
	defs := numbering.Definitions{
		Abstracts: make([]numbering.AbstractNumbering, 0, len(n.AbstractNums)),
		Instances: make([]numbering.NumberingInstance, 0, len(n.Numberings)),
	}

	for _, a := range n.AbstractNums {
		abs := numbering.AbstractNumbering{
			ID:           a.ID,
			NumStyleLink: a.NumStyleLink,
			StyleLink:    a.StyleLink,
			Levels:       make([]numbering.LevelDefinition, 0, len(a.Levels)),
		}
		for _, l := range a.Levels {
			def, err := l.definition()
			if err != nil {
				return numbering.Definitions{}, fmt.Errorf("abstractNum %d level %d: %w", a.ID, l.Level, err)
			}
			abs.Levels = append(abs.Levels, def)
		}
		defs.Abstracts = append(defs.Abstracts, abs)
	}

	for _, num := range n.Numberings {
		inst := numbering.NumberingInstance{
			ID:         num.ID,
			AbstractID: num.AbstractNumID,
		}
		for _, o := range num.LevelOverrides {
			override := numbering.LevelOverride{Level: o.Level, Start: o.OverrideStart}
			if o.OverrideLevel != nil {
				def, err := o.OverrideLevel.definition()
				if err != nil {
					return numbering.Definitions{}, fmt.Errorf("num %d override %d: %w", num.ID, o.Level, err)
				}
				override.Definition = &def
			}
			inst.Overrides = append(inst.Overrides, override)
		}
		defs.Instances = append(defs.Instances, inst)
	}

	return defs, nil
}

func (l Level) definition() (numbering.LevelDefinition, error) {
	props, err := decodeParagraphProperty(l.ParagraphProperty)
	if err != nil {
		return numbering.LevelDefinition{}, err
	}
	return numbering.LevelDefinition{
		Level:          l.Level,
		Start:          l.Start,
		Format:         numbering.Format(l.Format),
		Text:           l.Text,
		Justification:  numbering.Justification(l.Jc),
		ParagraphStyle: l.PStyle,
		Suffix:         parseSuffix(l.Suffix),
		Paragraph:      props,
	}, nil
}

// parseSuffix maps the wire value to a suffix; "none" is accepted as an
// alias of "nothing".
func parseSuffix(s string) numbering.Suffix {
	switch s {
	case "none":
		return numbering.SuffixNothing
	case "":
		return numbering.SuffixTab
	default:
		return numbering.Suffix(s)
	}
}

func decodeParagraphProperty(raw json.RawMessage) (numbering.ParagraphProperties, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return numbering.ParagraphProperties{}, nil
	}

	var pp paragraphProperty
	if err := json.Unmarshal(trimmed, &pp); err != nil {
		return numbering.ParagraphProperties{}, fmt.Errorf("paragraphProperty: %w", err)
	}

	props := numbering.ParagraphProperties{Raw: append([]byte(nil), trimmed...)}
	if pp.Alignment != nil {
		props.Alignment = *pp.Alignment
	}
	if pp.Indent != nil {
		ind := &numbering.Indent{Start: pp.Indent.Start, End: pp.Indent.End}
		if si := pp.Indent.SpecialIndent; si != nil {
			v := si.Val
			switch si.Type {
			case "hanging":
				ind.Hanging = &v
			case "firstLine":
				ind.FirstLine = &v
			}
		}
		props.Indent = ind
	}
	if pp.LineSpacing != nil {
		props.Spacing = &numbering.Spacing{
			Before: pp.LineSpacing.Before,
			After:  pp.LineSpacing.After,
			Line:   pp.LineSpacing.Line,
		}
	}
	return props, nil
}

// FromDefinitions projects engine definitions onto the wire shape.
// Definitions that carry Restart or Legal lose them; the payload has no
// field for either.
func FromDefinitions(defs numbering.Definitions) (*Numberings, error) {
	out := &Numberings{
		AbstractNums: make([]AbstractNumbering, 0, len(defs.Abstracts)),
		Numberings:   make([]Numbering, 0, len(defs.Instances)),
	}

	for _, a := range defs.Abstracts {
		abs := AbstractNumbering{
			ID:           a.ID,
			NumStyleLink: a.NumStyleLink,
			StyleLink:    a.StyleLink,
			Levels:       make([]Level, 0, len(a.Levels)),
		}
		for _, def := range a.Levels {
			l, err := levelFromDefinition(def)
			if err != nil {
				return nil, err
			}
			abs.Levels = append(abs.Levels, l)
		}
		out.AbstractNums = append(out.AbstractNums, abs)
	}

	for _, inst := range defs.Instances {
		num := Numbering{
			ID:             inst.ID,
			AbstractNumID:  inst.AbstractID,
			LevelOverrides: make([]LevelOverride, 0, len(inst.Overrides)),
		}
		for _, o := range inst.Overrides {
			lo := LevelOverride{Level: o.Level, OverrideStart: o.Start}
			if o.Definition != nil {
				l, err := levelFromDefinition(*o.Definition)
				if err != nil {
					return nil, err
				}
				lo.OverrideLevel = &l
			}
			num.LevelOverrides = append(num.LevelOverrides, lo)
		}
		out.Numberings = append(out.Numberings, num)
	}

	return out, nil
}

func levelFromDefinition(def numbering.LevelDefinition) (Level, error) {
	raw, err := encodeParagraphProperty(def.Paragraph)
	if err != nil {
		return Level{}, fmt.Errorf("level %d: %w", def.Level, err)
	}
	suffix := def.Suffix
	if suffix == "" {
		suffix = numbering.SuffixTab
	}
	return Level{
		Level:             def.Level,
		Start:             def.Start,
		Format:            string(def.Format),
		Text:              def.Text,
		Jc:                string(def.Justification),
		PStyle:            def.ParagraphStyle,
		Suffix:            string(suffix),
		ParagraphProperty: raw,
	}, nil
}

func encodeParagraphProperty(p numbering.ParagraphProperties) (json.RawMessage, error) {
	if len(p.Raw) > 0 {
		return json.RawMessage(p.Raw), nil
	}
	if p.IsZero() {
		return emptyObject, nil
	}

	var pp paragraphProperty
	if p.Alignment != "" {
		pp.Alignment = &p.Alignment
	}
	if p.Indent != nil {
		pp.Indent = &indent{Start: p.Indent.Start, End: p.Indent.End}
		switch {
		case p.Indent.Hanging != nil:
			pp.Indent.SpecialIndent = &specialIndent{Type: "hanging", Val: *p.Indent.Hanging}
		case p.Indent.FirstLine != nil:
			pp.Indent.SpecialIndent = &specialIndent{Type: "firstLine", Val: *p.Indent.FirstLine}
		}
	}
	if p.Spacing != nil {
		pp.LineSpacing = &lineSpacing{Before: p.Spacing.Before, After: p.Spacing.After, Line: p.Spacing.Line}
	}

	data, err := json.Marshal(pp)
	if err != nil {
		return nil, fmt.Errorf("paragraphProperty: %w", err)
	}
	return data, nil
}
