package docx

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

// ParsedList represents a run of consecutive paragraphs that share a
// numbering instance.
type ParsedList struct {
	Items []ParsedListItem
	Type  ListType
	NumID int
	First int // index of the first paragraph
}

// ParsedListItem represents a single list item.
type ParsedListItem struct {
	Text   string
	Level  int    // Indentation level (0-based)
	Label  string // Rendered label, e.g. "1.a." or "•"
	Suffix string // Separator after the label
}

// ListParser handles grouping of labeled paragraphs into lists.
type ListParser struct{}

// NewListParser creates a new list parser.
func NewListParser() *ListParser {
	return &ListParser{}
}

// ExtractLists groups consecutive numbered paragraphs with the same numId.
// A list is ordered when any of its items has a numeric format.
func (lp *ListParser) ExtractLists(paragraphs []Paragraph) []ParsedList {
	var lists []ParsedList
	var currentList *ParsedList

	flush := func() {
		if currentList != nil && len(currentList.Items) > 0 {
			lists = append(lists, *currentList)
		}
		currentList = nil
	}

	for _, para := range paragraphs {
		if !para.Numbered {
			flush()
			continue
		}

		if currentList == nil || para.NumID != currentList.NumID {
			flush()
			currentList = &ParsedList{
				Type:  ListTypeUnordered,
				NumID: para.NumID,
				First: para.Index,
			}
		}

		if para.Label.Format.IsNumeric() {
			currentList.Type = ListTypeOrdered
		}
		currentList.Items = append(currentList.Items, ParsedListItem{
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

// ToText returns a plain text representation of the list, indenting two
// spaces per level. Labels are followed by a single space.
func (pl *ParsedList) ToText() string {
	var sb strings.Builder

	for i, item := range pl.Items {
		if i > 0 {
			sb.WriteString("\n")
		}

		for j := 0; j < item.Level; j++ {
			sb.WriteString("  ")
		}

		if item.Label != "" {
			sb.WriteString(item.Label + " ")
		}

		sb.WriteString(item.Text)
	}

	return sb.String()
}
