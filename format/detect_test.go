package format

import (
	"archive/zip"
	"bytes"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{DOCX, "DOCX"},
		{ODT, "ODT"},
		{Numberings, "NumberingsJSON"},
		{Document, "DocumentJSON"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{DOCX, ".docx"},
		{ODT, ".odt"},
		{Numberings, ".json"},
		{Document, ".json"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"document.docx", DOCX},
		{"document.DOCX", DOCX},
		{"document.Docx", DOCX},
		{"template.dotx", DOCX},
		{"document.odt", ODT},
		{"template.OTT", ODT},
		{"numbering.json", Numberings},
		{"numbering.JSON", Numberings},
		{"document.txt", Unknown},
		{"document.pdf", Unknown},
		{"document", Unknown},
		{"", Unknown},
		{"/path/to/file.docx", DOCX},
		{"/path/to/file.json", Numberings},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{
			name: "ZIP magic bytes",
			data: []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x00, 0x00, 0x00},
			want: Unknown, // ZIP needs further inspection
		},
		{
			name: "numberings payload",
			data: []byte(`{"abstractNums": [], "numberings": []}`),
			want: Numberings,
		},
		{
			name: "numberings with whitespace",
			data: []byte("\n  {\"numberings\": []}"),
			want: Numberings,
		},
		{
			name: "document payload",
			data: []byte(`{"numberings": {"abstractNums": [], "numberings": []}, "paragraphs": []}`),
			want: Document,
		},
		{
			name: "unrelated object",
			data: []byte(`{"name": "x"}`),
			want: Unknown,
		},
		{
			name: "json array",
			data: []byte(`[1, 2]`),
			want: Unknown,
		},
		{
			name: "truncated json",
			data: []byte(`{"abstractNums": [`),
			want: Unknown,
		},
		{
			name: "empty data",
			data: []byte{},
			want: Unknown,
		},
		{
			name: "text file",
			data: []byte("Hello, World!"),
			want: Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func createZIP(t *testing.T, names ...string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
		w.Write([]byte("<x/>"))
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return buf.Bytes()
}

func TestDetectFromReader_DOCX(t *testing.T) {
	data := createZIP(t, "[Content_Types].xml", "word/document.xml")

	format, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != DOCX {
		t.Errorf("DetectFromReader() = %v, want DOCX", format)
	}
}

func TestDetectFromReader_ODT(t *testing.T) {
	data := createZIP(t, "mimetype", "content.xml", "styles.xml")

	format, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != ODT {
		t.Errorf("DetectFromReader() = %v, want ODT", format)
	}
}

func TestDetectFromReader_ODTMimeType(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		t.Fatalf("failed to create mimetype: %v", err)
	}
	w.Write([]byte("application/vnd.oasis.opendocument.text"))
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	data := buf.Bytes()

	format, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != ODT {
		t.Errorf("DetectFromReader() = %v, want ODT", format)
	}
}

func TestDetectFromReader_OtherZIP(t *testing.T) {
	data := createZIP(t, "[Content_Types].xml", "xl/workbook.xml")

	format, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != Unknown {
		t.Errorf("DetectFromReader() = %v, want Unknown", format)
	}
}

func TestDetectFromReader_JSON(t *testing.T) {
	data := []byte(`{"numberings": {"abstractNums": [], "numberings": []}, "paragraphs": [null]}`)

	format, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != Document {
		t.Errorf("DetectFromReader() = %v, want Document", format)
	}
}

func TestDetectFromReader_Unknown(t *testing.T) {
	data := []byte("Hello, World! This is plain text.")

	format, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != Unknown {
		t.Errorf("DetectFromReader() = %v, want Unknown", format)
	}
}

func TestDetectFromReader_Short(t *testing.T) {
	data := []byte("{}")

	format, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != Unknown {
		t.Errorf("DetectFromReader() = %v, want Unknown", format)
	}
}
