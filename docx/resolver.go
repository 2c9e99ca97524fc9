package docx

import (
	"strconv"
	"strings"
)

// ResolvedStyle contains the properties of a style after basedOn
// inheritance was applied.
type ResolvedStyle struct {
	// Identity
	ID   string
	Name string
	Type string // paragraph, character, table, numbering

	// Heading info
	IsHeading    bool
	HeadingLevel int // 1-9, 0 if not a heading

	// Numbering inherited through the style chain. NumID is nil when no
	// style in the chain carries w:numPr/w:numId; Level is nil when none
	// carries w:ilvl.
	NumID *int
	Level *int
}

// StyleResolver resolves styles with inheritance support.
type StyleResolver struct {
	styles   map[string]*styleDefXML
	resolved map[string]*ResolvedStyle
}

// NewStyleResolver creates a new style resolver from parsed styles.
func NewStyleResolver(styles *stylesXML) *StyleResolver {
	sr := &StyleResolver{
		styles:   make(map[string]*styleDefXML),
		resolved: make(map[string]*ResolvedStyle),
	}

	if styles == nil {
		return sr
	}

	for i := range styles.Styles {
		style := &styles.Styles[i]
		if _, dup := sr.styles[style.StyleID]; !dup {
			sr.styles[style.StyleID] = style
		}
	}

	return sr
}

// Resolve returns the resolved style for the given style ID.
// If the style doesn't exist, only built-in heading detection applies.
func (sr *StyleResolver) Resolve(styleID string) *ResolvedStyle {
	if resolved, ok := sr.resolved[styleID]; ok {
		return resolved
	}

	resolved := &ResolvedStyle{ID: styleID}

	styleDef, ok := sr.styles[styleID]
	if !ok {
		resolved.IsHeading, resolved.HeadingLevel = detectBuiltInHeading(styleID)
		sr.resolved[styleID] = resolved
		return resolved
	}

	resolved.Name = styleDef.Name.Val
	resolved.Type = styleDef.Type

	// Apply properties from base to derived
	for _, sid := range sr.buildInheritanceChain(styleID) {
		if def, ok := sr.styles[sid]; ok {
			sr.applyStyleDef(resolved, def)
		}
	}

	resolved.IsHeading, resolved.HeadingLevel = sr.detectHeading(styleDef)

	sr.resolved[styleID] = resolved
	return resolved
}

// Has reports whether the style is defined in styles.xml.
func (sr *StyleResolver) Has(styleID string) bool {
	_, ok := sr.styles[styleID]
	return ok
}

// buildInheritanceChain returns style IDs from base to derived.
func (sr *StyleResolver) buildInheritanceChain(styleID string) []string {
	var chain []string
	visited := make(map[string]bool)

	current := styleID
	for current != "" && !visited[current] {
		visited[current] = true
		chain = append([]string{current}, chain...) // Prepend

		def, ok := sr.styles[current]
		if !ok || def.BasedOn == nil {
			break
		}
		current = def.BasedOn.Val
	}

	return chain
}

// applyStyleDef applies a style definition's numbering properties.
func (sr *StyleResolver) applyStyleDef(resolved *ResolvedStyle, def *styleDefXML) {
	numPr := def.PPr.NumPr
	if numPr == nil {
		return
	}
	if numPr.NumID != nil {
		if id, ok := parseInt(numPr.NumID.Val); ok {
			resolved.NumID = &id
		}
	}
	if numPr.ILvl != nil {
		if lvl, ok := parseInt(numPr.ILvl.Val); ok {
			resolved.Level = &lvl
		}
	}
}

// detectHeading determines if a style represents a heading.
func (sr *StyleResolver) detectHeading(def *styleDefXML) (bool, int) {
	// Check for built-in heading style ID
	if isHeading, level := detectBuiltInHeading(def.StyleID); isHeading {
		return true, level
	}

	// Check style name for heading patterns
	name := strings.ToLower(def.Name.Val)
	if strings.HasPrefix(name, "heading") {
		for i := 1; i <= 9; i++ {
			if strings.Contains(name, strconv.Itoa(i)) {
				return true, i
			}
		}
		return true, 1
	}

	// Check outline level
	if def.PPr.OutlineLvl != nil {
		if level, ok := parseInt(def.PPr.OutlineLvl.Val); ok && level >= 0 && level <= 8 {
			return true, level + 1 // OutlineLvl is 0-based
		}
	}

	return false, 0
}

// detectBuiltInHeading checks for Word's built-in heading style IDs.
func detectBuiltInHeading(styleID string) (bool, int) {
	id := strings.ToLower(styleID)

	headingMap := map[string]int{
		"heading1": 1, "heading2": 2, "heading3": 3,
		"heading4": 4, "heading5": 5, "heading6": 6,
		"heading7": 7, "heading8": 8, "heading9": 9,
		"title": 1, "subtitle": 2,
	}

	if level, ok := headingMap[id]; ok {
		return true, level
	}

	return false, 0
}

// parseInt parses a decimal attribute value.
func parseInt(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseTwips parses an optional twips attribute. Empty values yield nil.
func parseTwips(s string) *int {
	if s == "" {
		return nil
	}
	v, ok := parseInt(s)
	if !ok {
		return nil
	}
	return &v
}
