// Package model provides the intermediate representation (IR) for documents
// whose paragraphs carry resolved numbering labels.
//
// A [Document] holds metadata and an ordered list of [Element] values. The
// concrete element types are:
//
//   - [Paragraph] - a paragraph with its rendered label, if any
//   - [List] - consecutive paragraphs sharing one numbering instance
//
// # Basic Usage
//
//	doc := model.NewDocument()
//	doc.Metadata.Title = "Contract"
//	doc.AddElement(&model.Paragraph{Text: "Scope", Label: "1.", Suffix: "\t"})
//	fmt.Print(doc.ExtractText())
package model
