// Package docnum provides a fluent API for resolving list labels in numbered
// documents.
//
// Basic usage:
//
//	text, warnings, err := docnum.Open("contract.docx").Text()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", docnum.FormatWarnings(warnings))
//	}
//
// With options:
//
//	paras, _, err := docnum.Open("contract.docx").
//	    SkipUnnumbered().
//	    WithoutSuffix().
//	    Paragraphs()
//
// Inputs may be DOCX or ODT files, NumberingsJSON payloads, or JSON documents that
// pair a payload with paragraph references. For lower-level control, use the
// numbering, numjson, docx and odt packages directly.
package docnum

import (
	"github.com/tsawler/docnum/docx"
	"github.com/tsawler/docnum/format"
)

// Open opens a document and returns an Extractor for fluent configuration.
// The format is taken from the extension and, for JSON, from the content.
// Terminal operations such as Text() close the underlying file.
//
// Example:
//
//	text, warnings, err := docnum.Open("contract.docx").Text()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader creates an Extractor from an already-opened docx.Reader.
// The caller is responsible for closing the reader.
//
// Example:
//
//	r, err := docx.Open("contract.docx")
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//	text, warnings, err := docnum.FromReader(r).Text()
func FromReader(r *docx.Reader) *Extractor {
	return &Extractor{
		format:       format.DOCX,
		docxReader:   r,
		ownsReader:   false,
		readerOpened: true,
		options:      defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText is a helper that wraps a call to a terminal operation and panics
// if the error is non-nil. It discards warnings and returns just the value.
//
// Example:
//
//	text := docnum.MustText(docnum.Open("contract.docx").Text())
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
