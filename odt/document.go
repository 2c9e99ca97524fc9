package odt

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// contentXML represents the structure of content.xml
type contentXML struct {
	XMLName    xml.Name         `xml:"document-content"`
	AutoStyles *officeStylesXML `xml:"automatic-styles"`
	Body       *bodyXML         `xml:"body"`
}

// bodyXML represents the document body.
type bodyXML struct {
	Text *textBodyXML `xml:"text"`
}

// textBodyXML holds the office:text blocks in document order.
type textBodyXML struct {
	Blocks []blockXML
}

// blockXML is a paragraph, heading or list. Exactly one field is set.
type blockXML struct {
	Paragraph *paragraphXML
	List      *listXML
}

// containers are elements whose paragraphs are part of the document flow.
var containers = map[string]bool{
	"section":           true,
	"table":             true,
	"table-header-rows": true,
	"table-rows":        true,
	"table-row":         true,
	"table-cell":        true,
}

func (b *textBodyXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return collectBlocks(d, &b.Blocks)
}

func collectBlocks(d *xml.Decoder, out *[]blockXML) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch {
			case el.Name.Local == "p" || el.Name.Local == "h":
				var p paragraphXML
				if err := d.DecodeElement(&p, &el); err != nil {
					return err
				}
				*out = append(*out, blockXML{Paragraph: &p})
			case el.Name.Local == "list":
				var l listXML
				if err := d.DecodeElement(&l, &el); err != nil {
					return err
				}
				*out = append(*out, blockXML{List: &l})
			case containers[el.Name.Local]:
				if err := collectBlocks(d, out); err != nil {
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

// paragraphXML represents <text:p> or <text:h>.
type paragraphXML struct {
	Heading      bool
	StyleName    string
	OutlineLevel int  // text:outline-level, 0 if absent
	ListHeader   bool // text:is-list-header
	Text         string
}

func (p *paragraphXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	p.Heading = start.Name.Local == "h"
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "style-name":
			p.StyleName = attr.Value
		case "outline-level":
			p.OutlineLevel, _ = strconv.Atoi(attr.Value)
		case "is-list-header":
			p.ListHeader = attr.Value == "true"
		}
	}

	var sb strings.Builder
	if err := collectText(d, &sb); err != nil {
		return err
	}
	p.Text = sb.String()
	return nil
}

// skippedInline are inline elements whose content is not paragraph text.
var skippedInline = map[string]bool{
	"note":             true, // footnotes and endnotes
	"annotation":       true,
	"tracked-changes":  true,
	"deletion":         true,
	"soft-page-break":  true,
	"sequence-decls":   true,
	"variable-decls":   true,
	"user-field-decls": true,
}

// collectText appends the character content of an element, collapsing
// white space and expanding text:s, text:tab and text:line-break.
func collectText(d *xml.Decoder, sb *strings.Builder) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.CharData:
			sb.WriteString(collapseSpace(string(el)))
		case xml.StartElement:
			switch {
			case el.Name.Local == "s":
				n := 1
				for _, attr := range el.Attr {
					if attr.Name.Local == "c" {
						if c, err := strconv.Atoi(attr.Value); err == nil && c > 0 {
							n = c
						}
					}
				}
				sb.WriteString(strings.Repeat(" ", n))
				if err := d.Skip(); err != nil {
					return err
				}
			case el.Name.Local == "tab":
				sb.WriteString("\t")
				if err := d.Skip(); err != nil {
					return err
				}
			case el.Name.Local == "line-break":
				sb.WriteString("\n")
				if err := d.Skip(); err != nil {
					return err
				}
			case skippedInline[el.Name.Local]:
				if err := d.Skip(); err != nil {
					return err
				}
			default:
				// span, a, bookmark and other inline wrappers
				if err := collectText(d, sb); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// collapseSpace replaces runs of XML white space with a single space.
func collapseSpace(s string) string {
	if !strings.ContainsAny(s, " \t\n\r") {
		return s
	}
	var sb strings.Builder
	space := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !space {
				sb.WriteByte(' ')
			}
			space = true
			continue
		}
		space = false
		sb.WriteRune(r)
	}
	return sb.String()
}

// listXML represents <text:list>.
type listXML struct {
	ID                string // xml:id
	StyleName         string
	ContinueNumbering bool
	ContinueList      string // xml:id of the list this one continues
	Items             []listItemXML
}

// listItemXML represents <text:list-item> or <text:list-header>.
type listItemXML struct {
	Header     bool
	StartValue *int
	Blocks     []blockXML
}

func (l *listXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "id":
			l.ID = attr.Value
		case "style-name":
			l.StyleName = attr.Value
		case "continue-numbering":
			l.ContinueNumbering = attr.Value == "true"
		case "continue-list":
			l.ContinueList = attr.Value
		}
	}

	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local != "list-item" && el.Name.Local != "list-header" {
				if err := d.Skip(); err != nil {
					return err
				}
				continue
			}
			item := listItemXML{Header: el.Name.Local == "list-header"}
			for _, attr := range el.Attr {
				if attr.Name.Local == "start-value" {
					if v, err := strconv.Atoi(attr.Value); err == nil {
						item.StartValue = &v
					}
				}
			}
			if err := collectBlocks(d, &item.Blocks); err != nil {
				return err
			}
			l.Items = append(l.Items, item)
		case xml.EndElement:
			return nil
		}
	}
}
