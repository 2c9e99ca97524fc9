package model

import "strings"

// Document represents a labeled document in reading order.
type Document struct {
	Metadata Metadata
	Elements []Element
}

// Metadata contains document-level information
type Metadata struct {
	Title    string
	Author   string
	Subject  string
	Keywords []string
	// Custom metadata
	Custom map[string]string
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		Metadata: Metadata{
			Custom: make(map[string]string),
		},
		Elements: make([]Element, 0),
	}
}

// AddElement appends an element to the document
func (d *Document) AddElement(elem Element) {
	d.Elements = append(d.Elements, elem)
}

// ExtractText returns all text content with labels, one paragraph per line
func (d *Document) ExtractText() string {
	var sb strings.Builder
	for _, elem := range d.Elements {
		sb.WriteString(elem.GetText())
	}
	return sb.String()
}

// Lists returns all list elements
func (d *Document) Lists() []*List {
	var lists []*List
	for _, elem := range d.Elements {
		if l, ok := elem.(*List); ok {
			lists = append(lists, l)
		}
	}
	return lists
}

// Paragraphs returns the standalone paragraphs (those outside lists)
func (d *Document) Paragraphs() []*Paragraph {
	var paragraphs []*Paragraph
	for _, elem := range d.Elements {
		if p, ok := elem.(*Paragraph); ok {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}
