package docnum

import (
	"fmt"
	"os"
	"strings"

	"github.com/tsawler/docnum/docx"
	"github.com/tsawler/docnum/format"
	"github.com/tsawler/docnum/model"
	"github.com/tsawler/docnum/numbering"
	"github.com/tsawler/docnum/numjson"
	"github.com/tsawler/docnum/odt"
)

// Paragraph is a paragraph with its resolved label.
type Paragraph struct {
	Index    int // position in document order, 0-based
	Text     string
	Numbered bool
	NumID    int
	Level    int
	Label    string // rendered label, empty when unnumbered
	Suffix   string // separator after the label, empty when WithoutSuffix was set
	Value    int    // counter value of the paragraph's own level
	Format   numbering.Format
}

// Extractor provides a fluent interface for resolving labels from DOCX, ODT
// and JSON inputs. Each configuration method returns a new Extractor instance,
// allowing method chaining.
type Extractor struct {
	// Source
	filename string
	format   format.Format

	// Inputs (only one will be used based on format)
	docxReader *docx.Reader
	odtReader  *odt.Reader
	numberings *numjson.Numberings
	document   *numjson.Document

	// Lifecycle
	ownsReader   bool // true if we opened the reader and should close it
	readerOpened bool // true if the input has been loaded

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:     e.filename,
		format:       e.format,
		docxReader:   e.docxReader,
		odtReader:    e.odtReader,
		numberings:   e.numberings,
		document:     e.document,
		ownsReader:   e.ownsReader,
		readerOpened: e.readerOpened,
		options:      e.options.clone(),
		err:          e.err,
	}
}

// ensureReader loads the input if not already loaded.
func (e *Extractor) ensureReader() error {
	if e.readerOpened {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	f, err := detectFormat(e.filename)
	if err != nil {
		return err
	}
	e.format = f

	switch e.format {
	case format.DOCX:
		dr, err := docx.Open(e.filename, e.registryOptions()...)
		if err != nil {
			return fmt.Errorf("failed to open DOCX: %w", err)
		}
		e.docxReader = dr
		e.ownsReader = true

	case format.ODT:
		odtr, err := odt.Open(e.filename, e.registryOptions()...)
		if err != nil {
			return fmt.Errorf("failed to open ODT: %w", err)
		}
		e.odtReader = odtr
		e.ownsReader = true

	case format.Numberings:
		data, err := os.ReadFile(e.filename)
		if err != nil {
			return err
		}
		n, err := numjson.Unmarshal(data)
		if err != nil {
			return err
		}
		e.numberings = n

	case format.Document:
		file, err := os.Open(e.filename)
		if err != nil {
			return err
		}
		defer file.Close()
		doc, err := numjson.DecodeDocument(file)
		if err != nil {
			return err
		}
		e.document = doc

	default:
		return fmt.Errorf("unsupported file format: %s", e.filename)
	}

	e.readerOpened = true
	return nil
}

// detectFormat uses the extension for office documents and sniffs
// everything else.
func detectFormat(filename string) (format.Format, error) {
	if f := format.Detect(filename); f == format.DOCX || f == format.ODT {
		return f, nil
	}

	file, err := os.Open(filename)
	if err != nil {
		return format.Unknown, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return format.Unknown, err
	}
	return format.DetectFromReader(file, info.Size())
}

func (e *Extractor) registryOptions() []numbering.RegistryOption {
	if e.options.maxLinkDepth > 0 {
		return []numbering.RegistryOption{numbering.WithMaxLinkDepth(e.options.maxLinkDepth)}
	}
	return nil
}

// Close releases resources associated with the Extractor.
// It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if !e.ownsReader {
		return nil
	}

	var err error
	switch {
	case e.docxReader != nil:
		err = e.docxReader.Close()
		e.docxReader = nil
	case e.odtReader != nil:
		err = e.odtReader.Close()
		e.odtReader = nil
	}
	e.ownsReader = false
	e.readerOpened = false
	return err
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// SkipUnnumbered drops paragraphs without a label from the output.
//
// Example:
//
//	paras, _, err := docnum.Open("contract.docx").SkipUnnumbered().Paragraphs()
func (e *Extractor) SkipUnnumbered() *Extractor {
	newExt := e.clone()
	newExt.options.skipUnnumbered = true
	return newExt
}

// WithoutSuffix reports labels without their tab or space suffix.
// Text() then separates labels from text with a single space.
func (e *Extractor) WithoutSuffix() *Extractor {
	newExt := e.clone()
	newExt.options.withoutSuffix = true
	return newExt
}

// MaxLinkDepth bounds how many numStyleLink indirections are followed when
// resolving a level. Values below 1 keep the default.
func (e *Extractor) MaxLinkDepth(depth int) *Extractor {
	newExt := e.clone()
	newExt.options.maxLinkDepth = depth
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Paragraphs returns the paragraphs in document order with their labels.
// NumberingsJSON inputs carry no paragraphs and return an error.
func (e *Extractor) Paragraphs() ([]Paragraph, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	if err := e.ensureReader(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	var paras []Paragraph
	var warnings []Warning

	switch e.format {
	case format.DOCX:
		for _, p := range e.docxReader.Paragraphs() {
			paras = append(paras, e.fromLabel(p.Index, p.Text, p.Numbered, p.NumID, p.Level, p.Label))
		}
		warnings = fromDOCXWarnings(e.docxReader.Warnings())

	case format.ODT:
		for _, p := range e.odtReader.Paragraphs() {
			paras = append(paras, e.fromLabel(p.Index, p.Text, p.Numbered, p.NumID, p.Level, p.Label))
		}
		warnings = fromODTWarnings(e.odtReader.Warnings())

	case format.Document:
		var err error
		paras, warnings, err = e.renderDocument(e.document)
		if err != nil {
			return nil, nil, err
		}

	default:
		return nil, nil, fmt.Errorf("%s input has no paragraphs", e.format)
	}

	if e.options.skipUnnumbered {
		kept := paras[:0]
		for _, p := range paras {
			if p.Label != "" {
				kept = append(kept, p)
			}
		}
		paras = kept
	}

	return paras, warnings, nil
}

// renderDocument renders the paragraph references of a JSON document in one
// pass. A null reference is an unnumbered paragraph.
func (e *Extractor) renderDocument(doc *numjson.Document) ([]Paragraph, []Warning, error) {
	defs, err := doc.Numberings.Definitions()
	if err != nil {
		return nil, nil, err
	}
	res, err := numbering.Load(defs, e.registryOptions()...)
	if err != nil {
		return nil, nil, fmt.Errorf("loading numbering: %w", err)
	}

	pass := res.Pass()
	paras := make([]Paragraph, 0, len(doc.Paragraphs))
	var warnings []Warning
	for i, ref := range doc.Paragraphs {
		if ref == nil {
			paras = append(paras, Paragraph{Index: i})
			continue
		}
		label, err := pass.RenderLabel(ref.NumID, ref.Level)
		if err != nil {
			warnings = append(warnings, newWarning(i, err))
			paras = append(paras, Paragraph{Index: i, Text: ref.Text, NumID: ref.NumID, Level: ref.Level})
			continue
		}
		for _, w := range label.Warnings {
			warnings = append(warnings, newWarning(i, w))
		}
		paras = append(paras, e.fromLabel(i, ref.Text, true, ref.NumID, ref.Level, label))
	}
	return paras, warnings, nil
}

func (e *Extractor) fromLabel(index int, text string, numbered bool, numID, level int, label numbering.Label) Paragraph {
	p := Paragraph{
		Index:    index,
		Text:     text,
		Numbered: numbered,
		NumID:    numID,
		Level:    level,
	}
	if !numbered {
		return p
	}
	p.Value = label.Value
	p.Format = label.Format
	p.Label = label.Text
	if !e.options.withoutSuffix && label.Text != "" {
		p.Suffix = label.Suffix.Separator()
	}
	return p
}

// Text returns the labeled text, one paragraph per line.
//
// Example:
//
//	text, warnings, err := docnum.Open("contract.docx").Text()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", docnum.FormatWarnings(warnings))
//	}
func (e *Extractor) Text() (string, []Warning, error) {
	paras, warnings, err := e.Paragraphs()
	if err != nil {
		return "", warnings, err
	}

	var sb strings.Builder
	for _, p := range paras {
		sb.WriteString(p.Label)
		sb.WriteString(p.Suffix)
		if e.options.withoutSuffix && p.Label != "" {
			sb.WriteString(" ")
		}
		sb.WriteString(p.Text)
		sb.WriteString("\n")
	}
	return sb.String(), warnings, nil
}

// Numberings returns the input's numbering definitions as a NumberingsJSON
// payload.
//
// Example:
//
//	n, _, err := docnum.Open("contract.docx").Numberings()
//	if err == nil {
//	    n.Encode(os.Stdout, "  ")
//	}
func (e *Extractor) Numberings() (*numjson.Numberings, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	if err := e.ensureReader(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	switch e.format {
	case format.DOCX:
		n, err := numjson.FromDefinitions(e.docxReader.Definitions())
		if err != nil {
			return nil, nil, err
		}
		var warnings []Warning
		for _, w := range e.docxReader.Warnings() {
			if w.Paragraph < 0 {
				warnings = append(warnings, newWarning(w.Paragraph, w.Err))
			}
		}
		return n, warnings, nil
	case format.ODT:
		n, err := numjson.FromDefinitions(e.odtReader.Definitions())
		if err != nil {
			return nil, nil, err
		}
		var warnings []Warning
		for _, w := range e.odtReader.Warnings() {
			if w.Paragraph < 0 {
				warnings = append(warnings, newWarning(w.Paragraph, w.Err))
			}
		}
		return n, warnings, nil
	case format.Numberings:
		return e.numberings, nil, nil
	case format.Document:
		return &e.document.Numberings, nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported file format: %s", e.format)
	}
}

// Document returns the labeled document as a model.Document. DOCX and ODT
// inputs group consecutive list paragraphs into model.List elements; JSON inputs
// yield one model.Paragraph per reference.
func (e *Extractor) Document() (*model.Document, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	if err := e.ensureReader(); err != nil {
		return nil, nil, err
	}

	var doc *model.Document
	var warnings []Warning
	switch e.format {
	case format.DOCX:
		defer e.Close()
		doc = e.docxReader.Document()
		warnings = fromDOCXWarnings(e.docxReader.Warnings())
	case format.ODT:
		defer e.Close()
		doc = e.odtReader.Document()
		warnings = fromODTWarnings(e.odtReader.Warnings())
	default:
		paras, warnings, err := e.Paragraphs()
		if err != nil {
			return nil, nil, err
		}
		doc := model.NewDocument()
		for _, p := range paras {
			doc.AddElement(&model.Paragraph{
				Text:   p.Text,
				Label:  p.Label,
				Suffix: p.Suffix,
				NumID:  p.NumID,
				Level:  p.Level,
			})
		}
		return doc, warnings, nil
	}

	if e.options.skipUnnumbered {
		doc.Elements = filterLabeled(doc.Elements)
	}
	if e.options.withoutSuffix {
		stripSuffixes(doc)
	}
	return doc, warnings, nil
}

func filterLabeled(elements []model.Element) []model.Element {
	kept := make([]model.Element, 0, len(elements))
	for _, elem := range elements {
		if p, ok := elem.(*model.Paragraph); ok && p.Label == "" {
			continue
		}
		kept = append(kept, elem)
	}
	return kept
}

func stripSuffixes(doc *model.Document) {
	for _, elem := range doc.Elements {
		switch el := elem.(type) {
		case *model.Paragraph:
			el.Suffix = ""
		case *model.List:
			for i := range el.Items {
				el.Items[i].Suffix = ""
			}
		}
	}
}
