package model

import "strings"

// ElementType represents the type of document element
type ElementType int

const (
	ElementTypeUnknown ElementType = iota
	ElementTypeParagraph
	ElementTypeList
)

func (et ElementType) String() string {
	switch et {
	case ElementTypeParagraph:
		return "Paragraph"
	case ElementTypeList:
		return "List"
	default:
		return "Unknown"
	}
}

// Element is the interface for all document elements
type Element interface {
	Type() ElementType
	GetText() string
}

// Paragraph represents a paragraph of text
type Paragraph struct {
	Text    string
	Style   string // paragraph style id
	Label   string // rendered numbering label, empty if unnumbered
	Suffix  string // separator between label and text
	NumID   int    // numbering instance, 0 if unnumbered
	Level   int
	Heading int // outline level 1-9, 0 for body text
}

func (p *Paragraph) Type() ElementType { return ElementTypeParagraph }

// GetText returns the labeled text followed by a newline.
func (p *Paragraph) GetText() string {
	if p.Label == "" {
		return p.Text + "\n"
	}
	return p.Label + p.Suffix + p.Text + "\n"
}

// List represents consecutive paragraphs of one numbering instance
type List struct {
	NumID   int
	Items   []ListItem
	Ordered bool
}

func (l *List) Type() ElementType { return ElementTypeList }

// GetText returns the items indented by level, two spaces per level.
func (l *List) GetText() string {
	var sb strings.Builder
	for _, item := range l.Items {
		sb.WriteString(strings.Repeat("  ", item.Level))
		if item.Label != "" {
			sb.WriteString(item.Label)
			sb.WriteString(item.Suffix)
		}
		sb.WriteString(item.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// ListItem represents a single list item
type ListItem struct {
	Text   string
	Label  string
	Suffix string
	Level  int
}
