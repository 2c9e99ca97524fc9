// Package docx reads numbering definitions and numbered paragraphs from
// DOCX (Office Open XML) documents and renders each paragraph's list label.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/docnum/model"
	"github.com/tsawler/docnum/numbering"
)

// maxLevels is the number of levels an OOXML abstract numbering may define.
const maxLevels = 9

// Reader provides access to DOCX document content.
type Reader struct {
	zipReader *zip.Reader
	closer    io.Closer
	document  *documentXML
	styles    *stylesXML
	numbering *numberingXML
	coreProps *corePropertiesXML

	styleResolver *StyleResolver
	definitions   numbering.Definitions
	resolver      *numbering.Resolver
	paragraphs    []Paragraph
	warnings      []Warning
}

// Paragraph is a body paragraph with its resolved numbering.
type Paragraph struct {
	Index        int // position in document order, 0-based
	Text         string
	StyleID      string
	HeadingLevel int // 1-9, 0 for body text

	// Numbered reports whether the paragraph references a numbering
	// instance, directly or through its style. NumID and Level are only
	// meaningful when it is true.
	Numbered bool
	NumID    int
	Level    int
	Label    numbering.Label
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

// Open opens a DOCX file for reading. Options are passed to the numbering
// registry built over the document's definitions.
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

// NewReader reads a DOCX package from ra, which holds size bytes.
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

	if err := r.parseDocument(); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	// Styles and numbering are optional parts
	if err := r.parseStyles(); err != nil {
		r.warn(-1, fmt.Errorf("parsing styles: %w", err))
	}
	if err := r.parseNumbering(); err != nil {
		r.warn(-1, fmt.Errorf("parsing numbering: %w", err))
	}

	r.parseCoreProperties()

	r.styleResolver = NewStyleResolver(r.styles)
	if err := r.loadDefinitions(opts); err != nil {
		return nil, fmt.Errorf("loading numbering: %w", err)
	}
	r.processParagraphs()

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

// validate checks that required DOCX files exist.
func (r *Reader) validate() error {
	required := []string{
		"[Content_Types].xml",
		"word/document.xml",
	}

	fileMap := make(map[string]bool)
	for _, f := range r.zipReader.File {
		fileMap[f.Name] = true
	}

	for _, name := range required {
		if !fileMap[name] {
			return fmt.Errorf("missing required file: %s", name)
		}
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

// hasFile reports whether the archive contains name.
func (r *Reader) hasFile(name string) bool {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Definitions returns the numbering definitions converted from numbering.xml.
func (r *Reader) Definitions() numbering.Definitions {
	return r.definitions
}

// Resolver returns the resolver built over the document's numbering.
func (r *Reader) Resolver() *numbering.Resolver {
	return r.resolver
}

// Paragraphs returns all body paragraphs in document order.
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

// Document returns the document as a model.Document. Consecutive paragraphs
// of one numbering instance become a model.List; the rest stay paragraphs.
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
			Style:   p.StyleID,
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

// Metadata returns document metadata from docProps/core.xml.
func (r *Reader) Metadata() model.Metadata {
	meta := model.Metadata{
		Custom: make(map[string]string),
	}

	if r.coreProps != nil {
		meta.Title = r.coreProps.Title
		meta.Subject = r.coreProps.Subject
		meta.Author = r.coreProps.Creator
		if r.coreProps.Keywords != "" {
			for _, kw := range strings.Split(r.coreProps.Keywords, ",") {
				if kw = strings.TrimSpace(kw); kw != "" {
					meta.Keywords = append(meta.Keywords, kw)
				}
			}
		}
	}

	return meta
}

// parseDocument parses word/document.xml
func (r *Reader) parseDocument() error {
	data, err := r.getFileContent("word/document.xml")
	if err != nil {
		return err
	}

	r.document = &documentXML{}
	return xml.Unmarshal(data, r.document)
}

// parseStyles parses word/styles.xml
func (r *Reader) parseStyles() error {
	if !r.hasFile("word/styles.xml") {
		return nil
	}
	data, err := r.getFileContent("word/styles.xml")
	if err != nil {
		return err
	}

	styles := &stylesXML{}
	if err := xml.Unmarshal(data, styles); err != nil {
		return err
	}
	r.styles = styles
	return nil
}

// parseNumbering parses word/numbering.xml
func (r *Reader) parseNumbering() error {
	if !r.hasFile("word/numbering.xml") {
		return nil
	}
	data, err := r.getFileContent("word/numbering.xml")
	if err != nil {
		return err
	}

	nx := &numberingXML{}
	if err := xml.Unmarshal(data, nx); err != nil {
		return err
	}
	r.numbering = nx
	return nil
}

// parseCoreProperties parses docProps/core.xml
func (r *Reader) parseCoreProperties() {
	data, err := r.getFileContent("docProps/core.xml")
	if err != nil {
		return
	}

	r.coreProps = &corePropertiesXML{}
	if err := xml.Unmarshal(data, r.coreProps); err != nil {
		r.coreProps = nil
	}
}

// loadDefinitions converts numbering.xml and builds the resolver.
func (r *Reader) loadDefinitions(opts []numbering.RegistryOption) error {
	defs, problems := convertNumbering(r.numbering)
	for _, p := range problems {
		r.warn(-1, p)
	}
	r.definitions = defs

	opts = append([]numbering.RegistryOption{numbering.WithStyleLookup(newStyleLookup(r.styleResolver, defs))}, opts...)
	res, err := numbering.Load(defs, opts...)
	if err != nil {
		return err
	}
	r.resolver = res
	return nil
}

// processParagraphs renders every paragraph's label in one pass.
func (r *Reader) processParagraphs() {
	if r.document == nil || r.document.Body == nil {
		return
	}

	pass := r.resolver.Pass()
	r.paragraphs = make([]Paragraph, 0, len(r.document.Body.Paragraphs))
	for i, p := range r.document.Body.Paragraphs {
		para := r.processParagraph(i, p)
		if para.Numbered {
			label, err := pass.RenderLabel(para.NumID, para.Level)
			if err != nil {
				r.warn(i, err)
				para.Numbered = false
			} else {
				para.Label = label
				for _, w := range label.Warnings {
					r.warn(i, w)
				}
			}
		}
		r.paragraphs = append(r.paragraphs, para)
	}
}

// processParagraph resolves the text, style and numbering reference of p.
func (r *Reader) processParagraph(index int, p paragraphXML) Paragraph {
	para := Paragraph{
		Index: index,
		Text:  p.Text(),
	}

	var style *ResolvedStyle
	if p.Properties.Style != nil {
		para.StyleID = p.Properties.Style.Val
		style = r.styleResolver.Resolve(para.StyleID)
		if style.IsHeading {
			para.HeadingLevel = style.HeadingLevel
		}
	}
	if p.Properties.OutlineLvl != nil {
		if lvl, ok := parseInt(p.Properties.OutlineLvl.Val); ok && lvl >= 0 && lvl < maxLevels {
			para.HeadingLevel = lvl + 1
		}
	}

	numID, level, ok := r.numberingRef(p.Properties.NumPr, style)
	if ok && numID != 0 {
		para.Numbered = true
		para.NumID = numID
		para.Level = level
	}
	return para
}

// numberingRef returns the paragraph's numbering instance and level. Direct
// w:numPr wins over the style chain; numId 0 removes inherited numbering.
func (r *Reader) numberingRef(direct *numberingPropsXML, style *ResolvedStyle) (numID, level int, ok bool) {
	if direct != nil && direct.NumID != nil {
		numID, ok = parseInt(direct.NumID.Val)
		if !ok {
			return 0, 0, false
		}
		if direct.ILvl != nil {
			level, _ = parseInt(direct.ILvl.Val)
		} else if style != nil && style.Level != nil {
			level = *style.Level
		}
		return numID, level, true
	}

	if style == nil || style.NumID == nil {
		return 0, 0, false
	}
	numID = *style.NumID
	switch {
	case direct != nil && direct.ILvl != nil:
		level, _ = parseInt(direct.ILvl.Val)
	case style.Level != nil:
		level = *style.Level
	default:
		level = r.levelForStyle(numID, style.ID)
	}
	return numID, level, true
}

// levelForStyle finds the level of numID whose w:pStyle names styleID.
func (r *Reader) levelForStyle(numID int, styleID string) int {
	for level := 0; level < maxLevels; level++ {
		eff, err := r.resolver.ResolveLevel(numID, level)
		if err != nil {
			continue
		}
		if eff.ParagraphStyle != nil && *eff.ParagraphStyle == styleID {
			return level
		}
	}
	return 0
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
