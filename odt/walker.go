package odt

import (
	"fmt"

	"github.com/tsawler/docnum/numbering"
)

// walker assigns numbering instances to lists while collecting paragraphs
// in document order.
type walker struct {
	r         *Reader
	table     *listStyleTable
	instances []numbering.NumberingInstance

	lastByStyle map[string]int // list style -> most recent instance
	byXMLID     map[string]int // xml:id of a list -> its instance
	outlineID   int            // instance shared by outline headings, 0 until used
}

// listContext is the list a block belongs to.
type listContext struct {
	id    string // xml:id of the outermost list
	style string
	numID int // 0 when the list has no usable style
	level int
}

func newWalker(r *Reader, table *listStyleTable) *walker {
	return &walker{
		r:           r,
		table:       table,
		lastByStyle: make(map[string]int),
		byXMLID:     make(map[string]int),
	}
}

func (w *walker) newInstance(abstractID int, overrides ...numbering.LevelOverride) int {
	id := len(w.instances) + 1
	w.instances = append(w.instances, numbering.NumberingInstance{
		ID:         id,
		AbstractID: abstractID,
		Overrides:  overrides,
	})
	return id
}

func (w *walker) walkBlocks(blocks []blockXML, ctx *listContext) {
	for _, b := range blocks {
		switch {
		case b.Paragraph != nil:
			w.add(*b.Paragraph, 0, 0, ctx != nil)
		case b.List != nil:
			w.list(*b.List, ctx)
		}
	}
}

// list walks a text:list. Nested lists number one level deeper with the
// outermost list's instance; their own style names are ignored.
func (w *walker) list(l listXML, parent *listContext) {
	var ctx listContext
	if parent != nil {
		ctx = *parent
		ctx.level = parent.level + 1
	} else {
		ctx = w.outermost(l)
	}

	for _, item := range l.Items {
		if item.StartValue != nil {
			w.restart(&ctx, *item.StartValue)
		}

		// Only the first paragraph of an item carries the label.
		numbered := !item.Header
		for _, b := range item.Blocks {
			switch {
			case b.Paragraph != nil:
				if numbered && ctx.numID != 0 && !b.Paragraph.ListHeader {
					w.add(*b.Paragraph, ctx.numID, ctx.level, true)
				} else {
					w.add(*b.Paragraph, 0, 0, true)
				}
			case b.List != nil:
				w.list(*b.List, &ctx)
			}
			numbered = false
		}
	}
}

// outermost picks the style and instance of a top-level list. A list
// continues an earlier one through text:continue-list or, for the same
// style, text:continue-numbering; otherwise it starts a new instance.
func (w *walker) outermost(l listXML) listContext {
	ctx := listContext{id: l.ID, style: l.StyleName}
	if ctx.style == "" {
		ctx.style = w.r.styleResolver.ParagraphListStyle(firstParagraphStyle(l))
	}
	if ctx.style == "" {
		return ctx
	}

	abstractID, ok := w.table.abstractID(ctx.style)
	if !ok {
		w.r.warn(len(w.r.paragraphs), fmt.Errorf("list style %q: %w", ctx.style, numbering.ErrUnknownAbstractNumbering))
		return ctx
	}

	if l.ContinueList != "" {
		ctx.numID = w.byXMLID[l.ContinueList]
	}
	if ctx.numID == 0 && l.ContinueNumbering {
		ctx.numID = w.lastByStyle[ctx.style]
	}
	if ctx.numID == 0 {
		ctx.numID = w.newInstance(abstractID)
	}
	w.remember(ctx)
	return ctx
}

// restart handles text:start-value on a list item by starting a new
// instance whose first level begins at value. Nested restarts would need
// per-level overrides mid-instance and are reported instead.
func (w *walker) restart(ctx *listContext, value int) {
	if ctx.numID == 0 {
		return
	}
	if ctx.level != 0 {
		w.r.warn(len(w.r.paragraphs), fmt.Errorf("start-value %d on a level %d item is ignored", value, ctx.level+1))
		return
	}

	abstractID := w.instances[ctx.numID-1].AbstractID
	start := value
	ctx.numID = w.newInstance(abstractID, numbering.LevelOverride{Level: 0, Start: &start})
	w.remember(*ctx)
}

func (w *walker) remember(ctx listContext) {
	w.lastByStyle[ctx.style] = ctx.numID
	if ctx.id != "" {
		w.byXMLID[ctx.id] = ctx.numID
	}
}

// add appends a paragraph. Headings outside lists take their label from
// the outline style.
func (w *walker) add(p paragraphXML, numID, level int, inList bool) {
	para := Paragraph{
		Index:     len(w.r.paragraphs),
		Text:      p.Text,
		StyleName: p.StyleName,
	}

	if p.Heading {
		para.HeadingLevel = p.OutlineLevel
		if para.HeadingLevel == 0 {
			para.HeadingLevel = w.r.styleResolver.OutlineLevel(p.StyleName)
		}
		if para.HeadingLevel == 0 {
			para.HeadingLevel = 1
		}
	}

	switch {
	case numID != 0:
		para.Numbered = true
		para.NumID = numID
		para.Level = level
	case p.Heading && !inList && !p.ListHeader && w.table.hasOutline && para.HeadingLevel <= maxLevels:
		if w.outlineID == 0 {
			w.outlineID = w.newInstance(w.table.outlineID)
		}
		para.Numbered = true
		para.NumID = w.outlineID
		para.Level = para.HeadingLevel - 1
		para.outline = true
	}

	w.r.paragraphs = append(w.r.paragraphs, para)
}

// firstParagraphStyle returns the style of the first paragraph in l.
func firstParagraphStyle(l listXML) string {
	for _, item := range l.Items {
		for _, b := range item.Blocks {
			switch {
			case b.Paragraph != nil:
				return b.Paragraph.StyleName
			case b.List != nil:
				if s := firstParagraphStyle(*b.List); s != "" {
					return s
				}
			}
		}
	}
	return ""
}
