package docx

import (
	"encoding/xml"
	"strings"
)

// documentXML represents the structure of word/document.xml
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    *bodyXML `xml:"body"`
}

// bodyXML holds the body paragraphs in document order, including
// paragraphs nested in tables and content controls.
type bodyXML struct {
	Paragraphs []paragraphXML
}

// containers are block-level elements whose paragraphs are part of the
// document flow.
var containers = map[string]bool{
	"tbl":        true,
	"tr":         true,
	"tc":         true,
	"sdt":        true,
	"sdtContent": true,
	"customXml":  true,
}

// UnmarshalXML collects paragraphs in order. encoding/xml would otherwise
// group <w:p> and <w:tbl> children separately and lose their interleaving.
func (b *bodyXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return collectParagraphs(d, &b.Paragraphs)
}

func collectParagraphs(d *xml.Decoder, out *[]paragraphXML) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch {
			case el.Name.Local == "p":
				var p paragraphXML
				if err := d.DecodeElement(&p, &el); err != nil {
					return err
				}
				*out = append(*out, p)
			case containers[el.Name.Local]:
				if err := collectParagraphs(d, out); err != nil {
					return err
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// paragraphXML represents a paragraph element (<w:p>).
type paragraphXML struct {
	Properties paragraphPropsXML
	Runs       []runXML
}

// inlineContainers hold runs that belong to the paragraph text.
var inlineContainers = map[string]bool{
	"hyperlink":  true,
	"ins":        true,
	"smartTag":   true,
	"fldSimple":  true,
	"sdt":        true,
	"sdtContent": true,
}

// UnmarshalXML keeps runs in order, including runs inside hyperlinks and
// insertions. Deleted runs (<w:del>) are dropped.
func (p *paragraphXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return p.collect(d)
}

func (p *paragraphXML) collect(d *xml.Decoder) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch {
			case el.Name.Local == "pPr":
				if err := d.DecodeElement(&p.Properties, &el); err != nil {
					return err
				}
			case el.Name.Local == "r":
				var r runXML
				if err := d.DecodeElement(&r, &el); err != nil {
					return err
				}
				p.Runs = append(p.Runs, r)
			case inlineContainers[el.Name.Local]:
				if err := p.collect(d); err != nil {
					return err
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// Text returns the concatenated text of the paragraph's runs.
func (p *paragraphXML) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.text())
	}
	return sb.String()
}

// paragraphPropsXML represents paragraph properties (<w:pPr>).
type paragraphPropsXML struct {
	Style         *valXML            `xml:"pStyle"`
	NumPr         *numberingPropsXML `xml:"numPr"`
	Justification *valXML            `xml:"jc"`
	Spacing       *spacingXML        `xml:"spacing"`
	Indent        *indentXML         `xml:"ind"`
	OutlineLvl    *valXML            `xml:"outlineLvl"`
}

// valXML is the common <w:x w:val="..."/> shape.
type valXML struct {
	Val string `xml:"val,attr"`
}

// numberingPropsXML represents numbering properties for lists.
type numberingPropsXML struct {
	ILvl  *valXML `xml:"ilvl"`
	NumID *valXML `xml:"numId"`
}

// spacingXML represents paragraph spacing.
type spacingXML struct {
	Before string `xml:"before,attr"` // twips
	After  string `xml:"after,attr"`  // twips
	Line   string `xml:"line,attr"`
}

// indentXML represents paragraph indentation. Transitional documents use
// left/right, strict ones start/end.
type indentXML struct {
	Left      string `xml:"left,attr"`
	Start     string `xml:"start,attr"`
	Right     string `xml:"right,attr"`
	End       string `xml:"end,attr"`
	FirstLine string `xml:"firstLine,attr"`
	Hanging   string `xml:"hanging,attr"`
}

// runXML represents a text run (<w:r>).
type runXML struct {
	Items []runItemXML `xml:",any"`
}

// runItemXML is one child of a run: text, tab, break or anything else.
type runItemXML struct {
	XMLName xml.Name
	Type    string `xml:"type,attr"` // for <w:br>
	Value   string `xml:",chardata"`
}

// text renders the run's content in order.
func (r runXML) text() string {
	var sb strings.Builder
	for _, item := range r.Items {
		switch item.XMLName.Local {
		case "t":
			sb.WriteString(item.Value)
		case "tab":
			sb.WriteString("\t")
		case "br", "cr":
			if item.Type == "page" {
				sb.WriteString("\n\n")
			} else {
				sb.WriteString("\n")
			}
		case "noBreakHyphen":
			sb.WriteString("-")
		}
	}
	return sb.String()
}
