package odt

import (
	"strings"

	"github.com/tsawler/docnum/model"
)

// ListType represents the type of list.
type ListType int

const (
	ListTypeUnordered ListType = iota // Bullet list
	ListTypeOrdered                   // Numbered list
)

// ParsedList is a run of consecutive list paragraphs sharing an instance.
type ParsedList struct {
	Items []ParsedListItem
	Type  ListType
	NumID int
	First int // index of the first paragraph
}

// ParsedListItem represents a single list item.
type ParsedListItem struct {
	Text   string
	Level  int // 0-based
	Label  string
	Suffix string
}

// ListParser groups labeled paragraphs into lists.
type ListParser struct{}

// NewListParser creates a new list parser.
func NewListParser() *ListParser {
	return &ListParser{}
}

// ExtractLists groups consecutive numbered paragraphs with the same
// instance. Outline-numbered headings end a list and never start one.
func (lp *ListParser) ExtractLists(paragraphs []Paragraph) []ParsedList {
	var lists []ParsedList
	var current *ParsedList

	flush := func() {
		if current != nil && len(current.Items) > 0 {
			lists = append(lists, *current)
		}
		current = nil
	}

	for _, para := range paragraphs {
		if !para.Numbered || para.outline {
			flush()
			continue
		}

		if current == nil || para.NumID != current.NumID {
			flush()
			current = &ParsedList{
				Type:  ListTypeUnordered,
				NumID: para.NumID,
				First: para.Index,
			}
		}

		if para.Label.Format.IsNumeric() {
			current.Type = ListTypeOrdered
		}
		current.Items = append(current.Items, ParsedListItem{
			Text:   para.Text,
			Level:  para.Level,
			Label:  para.Label.Text,
			Suffix: suffixText(para.Label),
		})
	}
	flush()

	return lists
}

// ToModelList converts a ParsedList to a model.List.
func (pl *ParsedList) ToModelList() *model.List {
	list := &model.List{
		NumID:   pl.NumID,
		Ordered: pl.Type == ListTypeOrdered,
		Items:   make([]model.ListItem, len(pl.Items)),
	}
	for i, item := range pl.Items {
		list.Items[i] = model.ListItem{
			Text:   item.Text,
			Label:  item.Label,
			Suffix: item.Suffix,
			Level:  item.Level,
		}
	}
	return list
}

// ToText renders the list with two spaces of indentation per level.
func (pl *ParsedList) ToText() string {
	lines := make([]string, len(pl.Items))
	for i, item := range pl.Items {
		line := strings.Repeat("  ", item.Level)
		if item.Label != "" {
			line += item.Label + " "
		}
		lines[i] = line + item.Text
	}
	return strings.Join(lines, "\n")
}
