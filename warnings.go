package docnum

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tsawler/docnum/docx"
	"github.com/tsawler/docnum/numbering"
	"github.com/tsawler/docnum/odt"
)

// Warning is a non-fatal issue met while resolving labels. The paragraph it
// concerns is left unlabeled or labeled with a fallback rendering.
type Warning struct {
	Message   string
	Paragraph int // paragraph index, -1 for document-level issues
	Err       error
}

func (w Warning) Error() string { return w.Message }

func (w Warning) Unwrap() error { return w.Err }

// FormatWarnings renders warnings one per line.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.Message
	}
	return strings.Join(lines, "\n")
}

func newWarning(paragraph int, err error) Warning {
	msg := err.Error()
	if paragraph >= 0 {
		msg = fmt.Sprintf("paragraph %d: %v", paragraph, err)
	}
	return Warning{Message: msg, Paragraph: paragraph, Err: err}
}

func fromDOCXWarnings(in []docx.Warning) []Warning {
	out := make([]Warning, 0, len(in))
	for _, w := range in {
		out = append(out, newWarning(w.Paragraph, w.Err))
	}
	return out
}

func fromODTWarnings(in []odt.Warning) []Warning {
	out := make([]Warning, 0, len(in))
	for _, w := range in {
		out = append(out, newWarning(w.Paragraph, w.Err))
	}
	return out
}

// HasFallback reports whether any warning is a format fallback.
func HasFallback(warnings []Warning) bool {
	for _, w := range warnings {
		if errors.Is(w.Err, numbering.ErrFormatFallback) {
			return true
		}
	}
	return false
}
