// Package odt reads list styles and numbered paragraphs from ODT
// (OpenDocument Text) documents and renders each paragraph's list label
// with the same engine as DOCX.
//
// ODF list styles become abstract numberings and every text:list that does
// not continue an earlier one becomes a numbering instance, so counters
// restart exactly where LibreOffice restarts them.
package odt

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/docnum/model"
	"github.com/tsawler/docnum/numbering"
)

// Reader provides access to ODT document content.
type Reader struct {
	zipReader *zip.Reader
	closer    io.Closer
	content   *contentXML
	docStyles *stylesXML
	meta      *metaXML

	styleResolver *StyleResolver
	definitions   numbering.Definitions
	resolver      *numbering.Resolver
	paragraphs    []Paragraph
	warnings      []Warning
}

// Paragraph is a body paragraph or heading with its resolved numbering.
type Paragraph struct {
	Index        int // position in document order, 0-based
	Text         string
	StyleName    string
	HeadingLevel int // outline level 1-10 for text:h, 0 otherwise

	// Numbered reports whether the paragraph is a numbered list item or an
	// outline-numbered heading.
	Numbered bool
	NumID    int
	Level    int
	Label    numbering.Label

	outline bool // numbered by the outline style rather than a list
}

// Labeled returns the label, its suffix and the paragraph text.
func (p Paragraph) Labeled() string {
	return p.Label.WithSuffix() + p.Text
}

// Warning is a non-fatal problem found while reading the document.
type Warning struct {
	Paragraph int // paragraph index, -1 for document-level problems
	Err       error
}

func (w Warning) Error() string {
	if w.Paragraph < 0 {
		return w.Err.Error()
	}
	return fmt.Sprintf("paragraph %d: %v", w.Paragraph, w.Err)
}

func (w Warning) Unwrap() error { return w.Err }

// Open opens an ODT file for reading. Options are passed to the numbering
// registry built over the document's list styles.
func Open(filename string, opts ...numbering.RegistryOption) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r, err := newReader(&zr.Reader, opts)
	if err != nil {
		zr.Close()
		return nil, err
	}
	r.closer = zr
	return r, nil
}

// NewReader reads an ODT package from ra, which holds size bytes.
func NewReader(ra io.ReaderAt, size int64, opts ...numbering.RegistryOption) (*Reader, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return newReader(zr, opts)
}

func newReader(zr *zip.Reader, opts []numbering.RegistryOption) (*Reader, error) {
	r := &Reader{zipReader: zr}

	// Validate required files exist
	if err := r.validate(); err != nil {
		return nil, err
	}

	// styles.xml is optional
	if err := r.parseStyles(); err != nil {
		r.warn(-1, fmt.Errorf("parsing styles: %w", err))
	}

	if err := r.parseContent(); err != nil {
		return nil, fmt.Errorf("parsing content: %w", err)
	}

	r.parseMetadata()

	r.styleResolver = NewStyleResolver(r.content.AutoStyles, r.docStyles)
	table, problems := convertListStyles(r.styleResolver)
	for _, p := range problems {
		r.warn(-1, p)
	}

	w := newWalker(r, table)
	if r.content.Body != nil && r.content.Body.Text != nil {
		w.walkBlocks(r.content.Body.Text.Blocks, nil)
	}
	r.definitions = numbering.Definitions{
		Abstracts: table.abstracts,
		Instances: w.instances,
	}

	res, err := numbering.Load(r.definitions, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading numbering: %w", err)
	}
	r.resolver = res
	r.renderLabels()

	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil
		return err
	}
	return nil
}

// validate checks that required ODT files exist.
func (r *Reader) validate() error {
	if !r.hasFile("content.xml") {
		return fmt.Errorf("missing required file: content.xml")
	}
	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

func (r *Reader) hasFile(name string) bool {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Definitions returns the numbering definitions built from the list styles
// and the document's lists.
func (r *Reader) Definitions() numbering.Definitions {
	return r.definitions
}

// Resolver returns the resolver built over the document's numbering.
func (r *Reader) Resolver() *numbering.Resolver {
	return r.resolver
}

// Paragraphs returns all body paragraphs and headings in document order.
func (r *Reader) Paragraphs() []Paragraph {
	out := make([]Paragraph, len(r.paragraphs))
	copy(out, r.paragraphs)
	return out
}

// Warnings returns the non-fatal problems found while reading.
func (r *Reader) Warnings() []Warning {
	out := make([]Warning, len(r.warnings))
	copy(out, r.warnings)
	return out
}

// Lists returns consecutive numbered paragraphs grouped by instance.
func (r *Reader) Lists() []ParsedList {
	return NewListParser().ExtractLists(r.paragraphs)
}

// Text extracts the document text with list labels, one paragraph per line.
func (r *Reader) Text() string {
	var sb strings.Builder
	for _, p := range r.paragraphs {
		sb.WriteString(p.Labeled())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Document returns the document as a model.Document. Consecutive numbered
// paragraphs of one instance become a model.List, except outline-numbered
// headings, which stay paragraphs.
func (r *Reader) Document() *model.Document {
	doc := model.NewDocument()
	doc.Metadata = r.Metadata()

	lists := r.Lists()
	next := 0
	for i := 0; i < len(r.paragraphs); {
		if next < len(lists) && lists[next].First == i {
			doc.AddElement(lists[next].ToModelList())
			i += len(lists[next].Items)
			next++
			continue
		}
		p := r.paragraphs[i]
		doc.AddElement(&model.Paragraph{
			Text:    p.Text,
			Style:   p.StyleName,
			Label:   p.Label.Text,
			Suffix:  suffixText(p.Label),
			NumID:   p.NumID,
			Level:   p.Level,
			Heading: p.HeadingLevel,
		})
		i++
	}

	return doc
}

// Metadata returns document metadata from meta.xml.
func (r *Reader) Metadata() model.Metadata {
	meta := model.Metadata{
		Custom: make(map[string]string),
	}

	if r.meta != nil && r.meta.Meta != nil {
		m := r.meta.Meta
		meta.Title = m.Title
		meta.Subject = m.Subject
		meta.Author = m.Creator
		if meta.Author == "" {
			meta.Author = m.InitialCreator
		}
		for _, kw := range m.Keywords {
			if kw = strings.TrimSpace(kw); kw != "" {
				meta.Keywords = append(meta.Keywords, kw)
			}
		}
	}

	return meta
}

// parseStyles parses the styles.xml file.
func (r *Reader) parseStyles() error {
	if !r.hasFile("styles.xml") {
		return nil
	}
	data, err := r.getFileContent("styles.xml")
	if err != nil {
		return err
	}

	styles := &stylesXML{}
	if err := xml.Unmarshal(data, styles); err != nil {
		return err
	}
	r.docStyles = styles
	return nil
}

// parseContent parses the content.xml file.
func (r *Reader) parseContent() error {
	data, err := r.getFileContent("content.xml")
	if err != nil {
		return err
	}

	r.content = &contentXML{}
	return xml.Unmarshal(data, r.content)
}

// parseMetadata parses the meta.xml file.
func (r *Reader) parseMetadata() {
	data, err := r.getFileContent("meta.xml")
	if err != nil {
		return
	}

	r.meta = &metaXML{}
	if err := xml.Unmarshal(data, r.meta); err != nil {
		r.meta = nil
	}
}

// renderLabels renders every numbered paragraph's label in one pass.
func (r *Reader) renderLabels() {
	pass := r.resolver.Pass()
	for i := range r.paragraphs {
		para := &r.paragraphs[i]
		if !para.Numbered {
			continue
		}
		label, err := pass.RenderLabel(para.NumID, para.Level)
		if err != nil {
			r.warn(i, err)
			para.Numbered = false
			continue
		}
		para.Label = label
		for _, w := range label.Warnings {
			r.warn(i, w)
		}
	}
}

func (r *Reader) warn(paragraph int, err error) {
	r.warnings = append(r.warnings, Warning{Paragraph: paragraph, Err: err})
}

// suffixText returns the label's separator, or "" when there is no label.
func suffixText(l numbering.Label) string {
	if l.Text == "" {
		return ""
	}
	return l.Suffix.Separator()
}
