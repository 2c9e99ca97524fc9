package odt

import (
	"sort"
	"strconv"
	"strings"
)

// StyleResolver looks up paragraph and list styles. Automatic styles in
// content.xml take precedence over those in styles.xml.
type StyleResolver struct {
	styles       map[string]*styleDefXML
	listStyles   map[string]*listStyleXML
	outlineStyle *listStyleXML
}

// NewStyleResolver creates a new style resolver from parsed styles.
func NewStyleResolver(contentStyles *officeStylesXML, docStyles *stylesXML) *StyleResolver {
	sr := &StyleResolver{
		styles:     make(map[string]*styleDefXML),
		listStyles: make(map[string]*listStyleXML),
	}

	if docStyles != nil {
		sr.add(docStyles.Styles)
		sr.add(docStyles.AutoStyles)
	}
	sr.add(contentStyles)

	return sr
}

func (sr *StyleResolver) add(s *officeStylesXML) {
	if s == nil {
		return
	}
	for i := range s.Styles {
		style := &s.Styles[i]
		sr.styles[style.Name] = style
	}
	for i := range s.ListStyles {
		ls := &s.ListStyles[i]
		sr.listStyles[ls.Name] = ls
	}
	if s.OutlineStyle != nil {
		sr.outlineStyle = s.OutlineStyle
	}
}

// ListStyleNames returns the list style names in sorted order.
func (sr *StyleResolver) ListStyleNames() []string {
	names := make([]string, 0, len(sr.listStyles))
	for name := range sr.listStyles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListStyle returns the named list style.
func (sr *StyleResolver) ListStyle(name string) (*listStyleXML, bool) {
	ls, ok := sr.listStyles[name]
	return ls, ok
}

// OutlineStyle returns the document's outline numbering style, if any.
func (sr *StyleResolver) OutlineStyle() *listStyleXML {
	return sr.outlineStyle
}

// ParagraphListStyle returns the list style a paragraph style attaches,
// following parent styles. An empty style:list-style-name stops the search.
func (sr *StyleResolver) ParagraphListStyle(styleName string) string {
	for _, def := range sr.chain(styleName) {
		if def.ListStyleName != nil {
			return *def.ListStyleName
		}
	}
	return ""
}

// OutlineLevel returns the default outline level (1-10) of a paragraph
// style, following parent styles, or 0.
func (sr *StyleResolver) OutlineLevel(styleName string) int {
	for _, def := range sr.chain(styleName) {
		if def.DefaultOutlineLevel != "" {
			if level, err := strconv.Atoi(def.DefaultOutlineLevel); err == nil {
				return level
			}
		}
	}
	if ok, level := detectBuiltInHeading(sr.displayName(styleName)); ok {
		return level
	}
	return 0
}

func (sr *StyleResolver) displayName(styleName string) string {
	if def, ok := sr.styles[styleName]; ok && def.DisplayName != "" {
		return def.DisplayName
	}
	return styleName
}

// chain returns style definitions from derived to base.
func (sr *StyleResolver) chain(styleName string) []*styleDefXML {
	var chain []*styleDefXML
	visited := make(map[string]bool)

	current := styleName
	for current != "" && !visited[current] {
		visited[current] = true
		def, ok := sr.styles[current]
		if !ok {
			break
		}
		chain = append(chain, def)
		current = def.ParentStyleName
	}

	return chain
}

// detectBuiltInHeading checks for common heading style names.
func detectBuiltInHeading(styleName string) (bool, int) {
	name := strings.ToLower(strings.ReplaceAll(styleName, "_20_", " "))
	name = strings.ReplaceAll(name, "_", " ")

	if !strings.HasPrefix(name, "heading") {
		return false, 0
	}
	num := strings.TrimSpace(strings.TrimPrefix(name, "heading"))
	if level, err := strconv.Atoi(num); err == nil && level >= 1 && level <= 10 {
		return true, level
	}
	return false, 0
}

// parseLength parses an ODF length value to points.
// Supports: pt, in, cm, mm, pc, px
func parseLength(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	// Find where digits end and unit begins
	i := 0
	for ; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && c != '.' && c != '-' && c != '+' {
			break
		}
	}
	if i == 0 {
		return 0, false
	}

	value, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, false
	}

	// Convert to points
	switch strings.ToLower(strings.TrimSpace(s[i:])) {
	case "pt", "":
		return value, true
	case "in":
		return value * 72, true
	case "cm":
		return value * 72 / 2.54, true
	case "mm":
		return value * 72 / 25.4, true
	case "pc":
		return value * 12, true
	case "px":
		return value * 0.75, true // 96 DPI
	default:
		return 0, false
	}
}

// parseTwips parses an ODF length into twips (1/20 pt).
func parseTwips(s string) (int, bool) {
	pt, ok := parseLength(s)
	if !ok {
		return 0, false
	}
	if pt < 0 {
		return int(pt*20 - 0.5), true
	}
	return int(pt*20 + 0.5), true
}
