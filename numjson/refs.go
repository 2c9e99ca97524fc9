package numjson

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// ParagraphRef is the numbering reference of one paragraph. A nil entry in
// a reference list is a paragraph without numbering.
type ParagraphRef struct {
	NumID int    `json:"numId"`
	Level int    `json:"level"`
	Text  string `json:"text,omitempty"`
}

// Document bundles numbering definitions with paragraph references in
// document order. It is the input of "docnum render" for JSON sources.
type Document struct {
	Numberings Numberings      `json:"numberings"`
	Paragraphs []*ParagraphRef `json:"paragraphs"`
}

// DecodeDocument reads a Document from r.
func DecodeDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return &doc, nil
}
