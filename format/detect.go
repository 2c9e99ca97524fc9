// Package format provides input format detection for docnum.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOCX indicates a Microsoft Word (.docx) document.
	DOCX
	// ODT indicates an OpenDocument Text (.odt) document.
	ODT
	// Numberings indicates a NumberingsJSON payload.
	Numberings
	// Document indicates a JSON document: numberings plus paragraph references.
	Document
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOCX:
		return "DOCX"
	case ODT:
		return "ODT"
	case Numberings:
		return "NumberingsJSON"
	case Document:
		return "DocumentJSON"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case DOCX:
		return ".docx"
	case ODT:
		return ".odt"
	case Numberings, Document:
		return ".json"
	default:
		return ""
	}
}

// Detect determines file format from filename extension. JSON files are
// reported as Numberings; use DetectFromReader to tell the two JSON shapes
// apart.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".docx", ".docm", ".dotx":
		return DOCX
	case ".odt", ".ott":
		return ODT
	case ".json":
		return Numberings
	default:
		return Unknown
	}
}

// DetectFromMagic checks leading bytes to determine format. ZIP archives
// return Unknown; the caller should use DetectFromReader for those.
func DetectFromMagic(data []byte) Format {
	if isZIP(data) {
		return Unknown
	}
	return detectJSON(data)
}

func isZIP(data []byte) bool {
	return len(data) >= 4 && data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04
}

// detectJSON reports the JSON shape from its top-level keys.
func detectJSON(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Unknown
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &keys); err != nil {
		return Unknown
	}

	switch {
	case keys["paragraphs"] != nil && keys["numberings"] != nil:
		return Document
	case keys["abstractNums"] != nil || keys["numberings"] != nil:
		return Numberings
	default:
		return Unknown
	}
}

// DetectFromReader inspects the content to determine format.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 4)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}

	if isZIP(magic[:n]) {
		return detectZIPFormat(r, size)
	}

	data, err := io.ReadAll(io.NewSectionReader(r, 0, size))
	if err != nil {
		return Unknown, err
	}
	return detectJSON(data), nil
}

// odtMimeTypes are the mimetype entries of text documents and templates.
var odtMimeTypes = map[string]bool{
	"application/vnd.oasis.opendocument.text":          true,
	"application/vnd.oasis.opendocument.text-template": true,
}

// detectZIPFormat checks whether a ZIP archive is a WordprocessingML or
// OpenDocument Text package.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	hasContent := false
	for _, f := range zr.File {
		switch f.Name {
		case "word/document.xml":
			return DOCX, nil
		case "content.xml":
			hasContent = true
		case "mimetype":
			rc, err := f.Open()
			if err != nil {
				continue
			}
			mime, _ := io.ReadAll(io.LimitReader(rc, 128))
			rc.Close()
			if odtMimeTypes[strings.TrimSpace(string(mime))] {
				return ODT, nil
			}
		}
	}

	if hasContent {
		return ODT, nil
	}
	return Unknown, nil
}
