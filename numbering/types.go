package numbering

// Format is an OOXML number format (w:numFmt). Unrecognized values are kept
// as-is so they survive re-encoding; they render as decimal.
type Format string

// Number formats understood by the resolver.
const (
	FormatDecimal          Format = "decimal"
	FormatDecimalZero      Format = "decimalZero"
	FormatDecimalFullWidth Format = "decimalFullWidth"
	FormatUpperRoman       Format = "upperRoman"
	FormatLowerRoman       Format = "lowerRoman"
	FormatUpperLetter      Format = "upperLetter"
	FormatLowerLetter      Format = "lowerLetter"
	FormatOrdinal          Format = "ordinal"
	FormatCardinalText     Format = "cardinalText"
	FormatOrdinalText      Format = "ordinalText"
	FormatBullet           Format = "bullet"
	FormatNone             Format = "none"
)

// IsNumeric reports whether the format produces a counter-dependent label.
func (f Format) IsNumeric() bool {
	return f != FormatBullet && f != FormatNone
}

// Justification is the alignment of the label within its tab stop (w:lvlJc).
type Justification string

const (
	JustifyLeft   Justification = "left"
	JustifyCenter Justification = "center"
	JustifyRight  Justification = "right"
	JustifyBoth   Justification = "both"
	JustifyStart  Justification = "start" // strict OOXML spelling of left
	JustifyEnd    Justification = "end"   // strict OOXML spelling of right
)

// Suffix is the separator between the label and the paragraph text (w:suff).
type Suffix string

const (
	SuffixTab     Suffix = "tab"
	SuffixSpace   Suffix = "space"
	SuffixNothing Suffix = "nothing"
)

// Separator returns the plain-text character for the suffix.
func (s Suffix) Separator() string {
	switch s {
	case SuffixSpace:
		return " "
	case SuffixNothing:
		return ""
	default:
		return "\t"
	}
}

// Indent holds indentation values in twips. Nil means "not specified".
type Indent struct {
	Start     *int
	End       *int
	FirstLine *int
	Hanging   *int
}

// Spacing holds paragraph spacing in twips.
type Spacing struct {
	Before *int
	After  *int
	Line   *int
}

// ParagraphProperties are the paragraph defaults attached to a level.
type ParagraphProperties struct {
	Alignment string
	Indent    *Indent
	Spacing   *Spacing

	// Raw is the original encoded form, if the properties were decoded
	// from a serialized payload. Encoders emit it unchanged.
	Raw []byte
}

// IsZero reports whether no property is set.
func (p ParagraphProperties) IsZero() bool {
	return p.Alignment == "" && p.Indent == nil && p.Spacing == nil && len(p.Raw) == 0
}

// LevelDefinition is the formatting rule for one level of an abstract numbering.
type LevelDefinition struct {
	Level          int
	Start          int
	Format         Format
	Text           string // text pattern, e.g. "%1.%2."
	Justification  Justification
	ParagraphStyle *string // linked paragraph style id
	Suffix         Suffix
	Paragraph      ParagraphProperties

	// Restart is w:lvlRestart. Nil restarts after any shallower level,
	// 0 never restarts, N restarts only when a level below index N is used.
	Restart *int

	// Legal is w:isLgl: all placeholders render as decimal.
	Legal bool
}

// AbstractNumbering is a reusable numbering scheme.
type AbstractNumbering struct {
	ID           int
	Levels       []LevelDefinition
	NumStyleLink *string // formatting is inherited from this numbering style
	StyleLink    *string // this abstract defines the named numbering style
}

// Source returns where the abstract's level formatting comes from.
func (a *AbstractNumbering) Source() LevelSource {
	if a.NumStyleLink != nil && *a.NumStyleLink != "" {
		return StyleLinked{StyleID: *a.NumStyleLink}
	}
	return LocalLevels{}
}

// LevelSource is either LocalLevels or StyleLinked.
type LevelSource interface {
	isLevelSource()
}

// LocalLevels means formatting comes from the abstract's own levels.
type LocalLevels struct{}

// StyleLinked means formatting is delegated to the numbering behind StyleID.
type StyleLinked struct {
	StyleID string
}

func (LocalLevels) isLevelSource() {}
func (StyleLinked) isLevelSource() {}

// LevelOverride customizes one level of a numbering instance.
// Both fields, either, or neither may be set.
type LevelOverride struct {
	Level      int
	Start      *int             // w:startOverride
	Definition *LevelDefinition // w:lvl inside w:lvlOverride
}

// NumberingInstance is a numbering referenced by paragraphs (w:num).
type NumberingInstance struct {
	ID         int
	AbstractID int
	Overrides  []LevelOverride
}

// Definitions is the full numbering part of a document.
type Definitions struct {
	Abstracts []AbstractNumbering
	Instances []NumberingInstance
}

// EffectiveLevel is a level after instance overrides were applied.
type EffectiveLevel struct {
	InstanceID     int
	AbstractID     int
	Level          int
	Start          int
	Format         Format
	Text           string
	Justification  Justification
	Suffix         Suffix
	ParagraphStyle *string
	Paragraph      ParagraphProperties
	Restart        *int
	Legal          bool

	// Overridden is true when an overrideLevel or overrideStart applied.
	Overridden bool
}
