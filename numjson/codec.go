package numjson

import (
	"bytes"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

var emptyObject = json.RawMessage(`{}`)

// Decode reads a NumberingsJSON payload from r.
func Decode(r io.Reader) (*Numberings, error) {
	var n Numberings
	if err := json.NewDecoder(r).Decode(&n); err != nil {
		return nil, fmt.Errorf("decoding numberings: %w", err)
	}
	return &n, nil
}

// Unmarshal parses a NumberingsJSON payload.
func Unmarshal(data []byte) (*Numberings, error) {
	return Decode(bytes.NewReader(data))
}

// Marshal encodes the payload. Absent collections encode as empty arrays
// and missing paragraph properties as an empty object, never as null.
func (n *Numberings) Marshal() ([]byte, error) {
	data, err := json.Marshal(n.normalized())
	if err != nil {
		return nil, fmt.Errorf("encoding numberings: %w", err)
	}
	return data, nil
}

// Encode writes the payload to w, indented when indent is non-empty.
func (n *Numberings) Encode(w io.Writer, indent string) error {
	enc := json.NewEncoder(w)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(n.normalized()); err != nil {
		return fmt.Errorf("encoding numberings: %w", err)
	}
	return nil
}

// normalized returns a copy safe to encode with the wire conventions.
func (n *Numberings) normalized() *Numberings {
	out := &Numberings{
		AbstractNums: make([]AbstractNumbering, len(n.AbstractNums)),
		Numberings:   make([]Numbering, len(n.Numberings)),
	}

	for i, a := range n.AbstractNums {
		levels := make([]Level, len(a.Levels))
		for j, l := range a.Levels {
			levels[j] = normalizeLevel(l)
		}
		a.Levels = levels
		out.AbstractNums[i] = a
	}

	for i, num := range n.Numberings {
		overrides := make([]LevelOverride, len(num.LevelOverrides))
		for j, o := range num.LevelOverrides {
			if o.OverrideLevel != nil {
				l := normalizeLevel(*o.OverrideLevel)
				o.OverrideLevel = &l
			}
			overrides[j] = o
		}
		num.LevelOverrides = overrides
		out.Numberings[i] = num
	}

	return out
}

func normalizeLevel(l Level) Level {
	if len(l.ParagraphProperty) == 0 || bytes.Equal(bytes.TrimSpace(l.ParagraphProperty), []byte("null")) {
		l.ParagraphProperty = emptyObject
	}
	return l
}
