package docx

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

// buildTestDOCX returns a DOCX package with the given body, styles and
// numbering. Empty styles or numbering omit the part; extra adds raw parts.
func buildTestDOCX(t testing.TB, body, styles, numbering string, extra map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	add := func(name, content string) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	// [Content_Types].xml
	add("[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`)

	// _rels/.rels
	add("_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`)

	// word/document.xml
	add("word/document.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document `+wordNS+`>
  <w:body>`+body+`</w:body>
</w:document>`)

	if styles != "" {
		add("word/styles.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles `+wordNS+`>`+styles+`</w:styles>`)
	}
	if numbering != "" {
		add("word/numbering.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:numbering `+wordNS+`>`+numbering+`</w:numbering>`)
	}
	for name, content := range extra {
		add(name, content)
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return buf.Bytes()
}

// createTestDOCXFull writes a DOCX with optional styles and numbering parts.
func createTestDOCXFull(t *testing.T, body, styles, numbering string) string {
	t.Helper()

	docxPath := filepath.Join(t.TempDir(), "test.docx")
	if err := os.WriteFile(docxPath, buildTestDOCX(t, body, styles, numbering, nil), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return docxPath
}

// createTestDOCX creates a minimal DOCX file for testing.
func createTestDOCX(t *testing.T, content string) string {
	t.Helper()
	return createTestDOCXFull(t, content, "", "")
}

// createTestDOCXWithStyles creates a DOCX with styles.xml.
func createTestDOCXWithStyles(t *testing.T, content, styles string) string {
	t.Helper()
	return createTestDOCXFull(t, content, styles, "")
}

// openTestDOCX opens a DOCX built from the given parts.
func openTestDOCX(t *testing.T, body, styles, numbering string) *Reader {
	t.Helper()

	r, err := Open(createTestDOCXFull(t, body, styles, numbering))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

// para returns a paragraph with text and optional raw pPr content.
func para(text, pPr string) string {
	var sb strings.Builder
	sb.WriteString("<w:p>")
	if pPr != "" {
		sb.WriteString("<w:pPr>" + pPr + "</w:pPr>")
	}
	sb.WriteString(`<w:r><w:t xml:space="preserve">` + text + `</w:t></w:r></w:p>`)
	return sb.String()
}

func TestOpen(t *testing.T) {
	content := `<w:p><w:r><w:t>Hello World</w:t></w:r></w:p>`
	docxPath := createTestDOCX(t, content)

	r, err := Open(docxPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	if r.document == nil {
		t.Error("document should not be nil")
	}
	if len(r.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %v", r.Warnings())
	}
}

func TestOpen_NotFound(t *testing.T) {
	_, err := Open("/nonexistent/file.docx")
	if err == nil {
		t.Error("Open() should return error for nonexistent file")
	}
}

func TestOpen_InvalidZip(t *testing.T) {
	invalidPath := filepath.Join(t.TempDir(), "invalid.docx")
	os.WriteFile(invalidPath, []byte("not a zip file"), 0644)

	_, err := Open(invalidPath)
	if err == nil {
		t.Error("Open() should return error for invalid ZIP")
	}
}

func TestOpen_MissingDocumentXML(t *testing.T) {
	docxPath := filepath.Join(t.TempDir(), "missing.docx")

	f, _ := os.Create(docxPath)
	zw := zip.NewWriter(f)

	// Only add content types
	w, _ := zw.Create("[Content_Types].xml")
	w.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
</Types>`))

	zw.Close()
	f.Close()

	_, err := Open(docxPath)
	if err == nil {
		t.Fatal("Open() should return error when document.xml is missing")
	}
	if !strings.Contains(err.Error(), "word/document.xml") {
		t.Errorf("error should name the missing part, got %v", err)
	}
}

func TestNewReader(t *testing.T) {
	data := buildTestDOCX(t, para("In memory", ""), "", "", nil)

	r, err := NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	defer r.Close()

	if got := r.Text(); got != "In memory\n" {
		t.Errorf("Text() = %q, want %q", got, "In memory\n")
	}
}

func TestReader_Text(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "single paragraph",
			content:  `<w:p><w:r><w:t>Hello World</w:t></w:r></w:p>`,
			expected: "Hello World\n",
		},
		{
			name:     "multiple runs",
			content:  `<w:p><w:r><w:t>Hello </w:t></w:r><w:r><w:t>World</w:t></w:r></w:p>`,
			expected: "Hello World\n",
		},
		{
			name:     "tab and break",
			content:  `<w:p><w:r><w:t>A</w:t><w:tab/><w:t>B</w:t><w:br/><w:t>C</w:t></w:r></w:p>`,
			expected: "A\tB\nC\n",
		},
		{
			name:     "empty paragraph",
			content:  `<w:p/><w:p><w:r><w:t>After</w:t></w:r></w:p>`,
			expected: "\nAfter\n",
		},
		{
			name:     "hyperlink runs",
			content:  `<w:p><w:r><w:t>See </w:t></w:r><w:hyperlink><w:r><w:t>here</w:t></w:r></w:hyperlink></w:p>`,
			expected: "See here\n",
		},
		{
			name:     "deleted runs dropped",
			content:  `<w:p><w:r><w:t>Kept</w:t></w:r><w:del><w:r><w:delText>Gone</w:delText></w:r></w:del><w:ins><w:r><w:t> new</w:t></w:r></w:ins></w:p>`,
			expected: "Kept new\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := openTestDOCX(t, tt.content, "", "")
			if got := r.Text(); got != tt.expected {
				t.Errorf("Text() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestReader_DocumentOrder(t *testing.T) {
	body := para("Before", "") +
		`<w:tbl><w:tblPr/><w:tr><w:tc><w:tcPr/>` + para("Cell", "") + `</w:tc></w:tr></w:tbl>` +
		`<w:sdt><w:sdtPr/><w:sdtContent>` + para("Control", "") + `</w:sdtContent></w:sdt>` +
		para("After", "") +
		`<w:sectPr/>`

	r := openTestDOCX(t, body, "", "")

	paragraphs := r.Paragraphs()
	want := []string{"Before", "Cell", "Control", "After"}
	if len(paragraphs) != len(want) {
		t.Fatalf("got %d paragraphs, want %d", len(paragraphs), len(want))
	}
	for i, p := range paragraphs {
		if p.Text != want[i] {
			t.Errorf("paragraph %d = %q, want %q", i, p.Text, want[i])
		}
		if p.Index != i {
			t.Errorf("paragraph %d Index = %d", i, p.Index)
		}
	}
}

func TestReader_HeadingDetection(t *testing.T) {
	styles := `
<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/></w:style>
<w:style w:type="paragraph" w:styleId="Chapter"><w:name w:val="Chapter"/><w:pPr><w:outlineLvl w:val="1"/></w:pPr></w:style>`

	body := para("Title", `<w:pStyle w:val="Heading1"/>`) +
		para("Part", `<w:pStyle w:val="Chapter"/>`) +
		para("Body", "") +
		para("Direct", `<w:outlineLvl w:val="2"/>`)

	r, err := Open(createTestDOCXWithStyles(t, body, styles))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	want := []int{1, 2, 0, 3}
	for i, p := range r.Paragraphs() {
		if p.HeadingLevel != want[i] {
			t.Errorf("%s: HeadingLevel = %d, want %d", p.Text, p.HeadingLevel, want[i])
		}
	}
}

func TestReader_Metadata(t *testing.T) {
	core := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <dc:title>Master Agreement</dc:title>
  <dc:subject>Terms</dc:subject>
  <dc:creator>Legal</dc:creator>
  <cp:keywords>contract, draft</cp:keywords>
</cp:coreProperties>`

	data := buildTestDOCX(t, para("x", ""), "", "", map[string]string{"docProps/core.xml": core})
	r, err := NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}

	meta := r.Metadata()
	if meta.Title != "Master Agreement" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Author != "Legal" {
		t.Errorf("Author = %q", meta.Author)
	}
	if len(meta.Keywords) != 2 || meta.Keywords[1] != "draft" {
		t.Errorf("Keywords = %v", meta.Keywords)
	}
	if r.Document().Metadata.Subject != "Terms" {
		t.Error("Document() should carry metadata")
	}
}

func TestReader_Close(t *testing.T) {
	r, err := Open(createTestDOCX(t, para("x", "")))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if err := r.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	// Second close should be safe
	if err := r.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestReader_TextWithSpecialCharacters(t *testing.T) {
	content := `<w:p><w:r><w:t>&lt;tag&gt; &amp; "quotes" – ünïcödé</w:t></w:r></w:p>`
	r := openTestDOCX(t, content, "", "")

	want := "<tag> & \"quotes\" – ünïcödé\n"
	if got := r.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func BenchmarkOpen(b *testing.B) {
	var body strings.Builder
	for i := 0; i < 200; i++ {
		body.WriteString(para("Item", `<w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr>`))
	}
	data := buildTestDOCX(b, body.String(), "", decimalNumbering, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := NewReader(bytes.NewReader(data), int64(len(data))); err != nil {
			b.Fatal(err)
		}
	}
}
