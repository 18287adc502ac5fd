// Package docmodel reads and writes the WordprocessingML (.docx) container.
//
// A .docx file is a ZIP archive whose main part, word/document.xml, holds the
// body as a sequence of paragraphs and tables. This package exposes that body
// through a small builder API (AddParagraph, AddHeading, AddTable) plus named
// style definitions persisted to word/styles.xml. It covers the subset the
// conversion engine needs: paragraph styles, alignment, run-level formatting
// flags, hyperlink association, and plain-text table grids. Embedded objects,
// numbering definitions, headers/footers, and tracked changes are ignored on
// read and never produced on write.
package docmodel

import (
	"fmt"
	"os"
	"strings"
)

// Alignment is a paragraph justification value.
type Alignment string

const (
	AlignDefault Alignment = ""
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "justify"
)

// Run is a contiguous span of text with uniform formatting.
type Run struct {
	Text        string
	Bold        bool
	Italic      bool
	Underline   bool
	Strike      bool
	Superscript bool
	Subscript   bool
	Font        string  // empty inherits the paragraph style
	Size        float64 // points; 0 inherits
	Color       string  // RRGGBB hex without '#'; empty inherits
	Hyperlink   string  // non-empty marks the run as hyperlink content
}

// Paragraph is one block-level text element.
type Paragraph struct {
	Style     string // style name, e.g. "Normal", "Heading 1", "List Bullet"
	Alignment Alignment
	Runs      []Run

	// Direct formatting, applied on top of the named style.
	SpacingBefore   float64 // points
	SpacingAfter    float64 // points
	LineSpacing     float64 // multiple of single spacing; 0 inherits
	LeftIndent      float64 // inches
	RightIndent     float64 // inches
	FirstLineIndent float64 // inches
	BorderTop       bool
	BorderBottom    bool
	KeepWithNext    bool
}

// Text returns the concatenated text of all runs.
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// AddRun appends a run and returns a pointer for further formatting.
func (p *Paragraph) AddRun(text string) *Run {
	p.Runs = append(p.Runs, Run{Text: text})
	return &p.Runs[len(p.Runs)-1]
}

// Cell is a single table cell. The engine only round-trips plain text plus a
// bold flag for header rows.
type Cell struct {
	Text string
	Bold bool
}

// Row is one table row.
type Row struct {
	Cells []Cell
}

// Table is a rectangular grid of cells.
type Table struct {
	Style   string
	AutoFit bool
	Rows    []Row
}

// Cell returns the cell at (row, col), or nil if out of bounds.
func (t *Table) Cell(row, col int) *Cell {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	r := &t.Rows[row]
	if col < 0 || col >= len(r.Cells) {
		return nil
	}
	return &r.Cells[col]
}

// Style is a named paragraph style definition written to word/styles.xml.
type Style struct {
	Name            string // display name, e.g. "Heading 1"
	Font            string
	Size            float64 // points
	Bold            bool
	Color           string  // RRGGBB
	SpacingBefore   float64 // points
	SpacingAfter    float64 // points
	LineSpacing     float64 // multiple; 0 omits
	FirstLineIndent float64 // inches
	LeftIndent      float64 // inches
	KeepWithNext    bool
}

// Document is an in-memory .docx body plus its style catalogue. Body order is
// preserved: paragraphs and tables appear in the sequence they were added.
type Document struct {
	body           []any // *Paragraph or *Table
	styles         []Style
	templateStyles []byte // verbatim styles.xml taken from a template document
}

// New returns an empty document with no styles defined.
func New() *Document {
	return &Document{}
}

// NewFromTemplate returns an empty document that reuses the style definitions
// of an existing .docx file. The template body is discarded.
func NewFromTemplate(path string) (*Document, error) {
	raw, err := readArchivePart(path, "word/styles.xml")
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", path, err)
	}
	return &Document{templateStyles: raw}, nil
}

// Paragraphs returns the body paragraphs in document order. Paragraphs inside
// table cells are not included.
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, el := range d.body {
		if p, ok := el.(*Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

// Tables returns the body tables in document order.
func (d *Document) Tables() []*Table {
	var out []*Table
	for _, el := range d.body {
		if t, ok := el.(*Table); ok {
			out = append(out, t)
		}
	}
	return out
}

// Body returns the ordered body sequence; elements are *Paragraph or *Table.
func (d *Document) Body() []any {
	return d.body
}

// AddParagraph appends a paragraph with the given text and style name. An
// empty style means the default ("Normal") style. An empty text adds a
// paragraph with no runs, used as a spacing placeholder.
func (d *Document) AddParagraph(text, style string) *Paragraph {
	p := &Paragraph{Style: style}
	if text != "" {
		p.AddRun(text)
	}
	d.body = append(d.body, p)
	return p
}

// AddHeading appends a heading paragraph. Levels 1 through 9 map to the
// "Heading N" styles; level 0 maps to "Title".
func (d *Document) AddHeading(text string, level int) *Paragraph {
	style := "Title"
	if level > 0 {
		style = fmt.Sprintf("Heading %d", level)
	}
	return d.AddParagraph(text, style)
}

// AddTable appends an empty rows×cols table.
func (d *Document) AddTable(rows, cols int) *Table {
	t := &Table{Rows: make([]Row, rows)}
	for i := range t.Rows {
		t.Rows[i].Cells = make([]Cell, cols)
	}
	d.body = append(d.body, t)
	return t
}

// DefineStyle registers or replaces a named style definition. Definitions are
// ignored when the document was created from a template, since the template's
// styles.xml is written through unchanged.
func (d *Document) DefineStyle(s Style) {
	for i := range d.styles {
		if d.styles[i].Name == s.Name {
			d.styles[i] = s
			return
		}
	}
	d.styles = append(d.styles, s)
}

// Save writes the document to path as a .docx archive.
func (d *Document) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := d.write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
