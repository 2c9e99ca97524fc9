package odt

import "encoding/xml"

// stylesXML represents the structure of styles.xml
type stylesXML struct {
	XMLName    xml.Name         `xml:"document-styles"`
	Styles     *officeStylesXML `xml:"styles"`
	AutoStyles *officeStylesXML `xml:"automatic-styles"`
}

// officeStylesXML is office:styles or office:automatic-styles.
type officeStylesXML struct {
	Styles       []styleDefXML  `xml:"style"`
	ListStyles   []listStyleXML `xml:"list-style"`
	OutlineStyle *listStyleXML  `xml:"outline-style"`
}

// styleDefXML represents a style definition (<style:style>).
type styleDefXML struct {
	Name                string  `xml:"name,attr"`
	Family              string  `xml:"family,attr"` // paragraph, text, table, etc.
	ParentStyleName     string  `xml:"parent-style-name,attr"`
	DisplayName         string  `xml:"display-name,attr"`
	DefaultOutlineLevel string  `xml:"default-outline-level,attr"`
	ListStyleName       *string `xml:"list-style-name,attr"` // "" removes an inherited list style
}

// listStyleXML represents <text:list-style> or <text:outline-style>.
type listStyleXML struct {
	Name   string         `xml:"name,attr"`
	Levels []listLevelXML `xml:",any"`
}

// listLevelXML is one level of a list style: list-level-style-number,
// list-level-style-bullet, list-level-style-image or outline-level-style.
type listLevelXML struct {
	XMLName       xml.Name
	Level         string             `xml:"level,attr"`          // 1-based
	NumFormat     string             `xml:"num-format,attr"`     // "1", "a", "A", "i", "I" or ""
	NumPrefix     string             `xml:"num-prefix,attr"`
	NumSuffix     string             `xml:"num-suffix,attr"`
	StartValue    string             `xml:"start-value,attr"`
	DisplayLevels string             `xml:"display-levels,attr"` // levels shown, counting up from this one
	BulletChar    string             `xml:"bullet-char,attr"`
	Properties    *listLevelPropsXML `xml:"list-level-properties"`
}

// listLevelPropsXML represents <style:list-level-properties>.
type listLevelPropsXML struct {
	TextAlign      string             `xml:"text-align,attr"`
	LabelAlignment *labelAlignmentXML `xml:"list-level-label-alignment"`
}

// labelAlignmentXML represents <style:list-level-label-alignment>.
type labelAlignmentXML struct {
	LabelFollowedBy string `xml:"label-followed-by,attr"` // listtab, space or nothing
	MarginLeft      string `xml:"margin-left,attr"`
	TextIndent      string `xml:"text-indent,attr"`
}

// metaXML represents document metadata from meta.xml.
type metaXML struct {
	XMLName xml.Name     `xml:"document-meta"`
	Meta    *metaInfoXML `xml:"meta"`
}

// metaInfoXML represents the office:meta element.
type metaInfoXML struct {
	Title          string   `xml:"title"`
	Subject        string   `xml:"subject"`
	Keywords       []string `xml:"keyword"`
	InitialCreator string   `xml:"initial-creator"`
	Creator        string   `xml:"creator"`
}
