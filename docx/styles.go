package docx

import "encoding/xml"

// stylesXML represents the structure of word/styles.xml
type stylesXML struct {
	XMLName xml.Name      `xml:"styles"`
	Styles  []styleDefXML `xml:"style"`
}

// styleDefXML represents a style definition.
type styleDefXML struct {
	Type    string            `xml:"type,attr"` // paragraph, character, table, numbering
	StyleID string            `xml:"styleId,attr"`
	Name    valXML            `xml:"name"`
	BasedOn *valXML           `xml:"basedOn"`
	PPr     paragraphPropsXML `xml:"pPr"`
}

// numberingXML represents word/numbering.xml
type numberingXML struct {
	XMLName      xml.Name         `xml:"numbering"`
	AbstractNums []abstractNumXML `xml:"abstractNum"`
	Nums         []numXML         `xml:"num"`
}

// abstractNumXML represents an abstract numbering definition.
type abstractNumXML struct {
	AbstractNumID string   `xml:"abstractNumId,attr"`
	Levels        []lvlXML `xml:"lvl"`
	NumStyleLink  *valXML  `xml:"numStyleLink"`
	StyleLink     *valXML  `xml:"styleLink"`
}

// lvlXML represents a numbering level.
type lvlXML struct {
	ILvl       string            `xml:"ilvl,attr"`
	Start      *valXML           `xml:"start"`
	NumFmt     *valXML           `xml:"numFmt"` // decimal, bullet, lowerLetter, ...
	LvlRestart *valXML           `xml:"lvlRestart"`
	PStyle     *valXML           `xml:"pStyle"`
	IsLgl      *valXML           `xml:"isLgl"`
	Suff       *valXML           `xml:"suff"`    // tab, space, nothing
	LvlText    *valXML           `xml:"lvlText"` // e.g., "%1.", "%1.%2"
	LvlJc      *valXML           `xml:"lvlJc"`
	PPr        paragraphPropsXML `xml:"pPr"`
}

// numXML represents a numbering instance.
type numXML struct {
	NumID         string           `xml:"numId,attr"`
	AbstractNumID valXML           `xml:"abstractNumId"`
	LvlOverrides  []lvlOverrideXML `xml:"lvlOverride"`
}

// lvlOverrideXML represents a per-instance level override.
type lvlOverrideXML struct {
	ILvl          string  `xml:"ilvl,attr"`
	StartOverride *valXML `xml:"startOverride"`
	Lvl           *lvlXML `xml:"lvl"`
}

// corePropertiesXML represents docProps/core.xml (Dublin Core metadata)
type corePropertiesXML struct {
	XMLName  xml.Name `xml:"coreProperties"`
	Title    string   `xml:"title"`
	Subject  string   `xml:"subject"`
	Creator  string   `xml:"creator"`
	Keywords string   `xml:"keywords"`
}
