// Package document defines a small, format-neutral model of a formatted
// document: paragraphs of styled runs, hyperlinks and simple tables.
package document

import "strings"

// Alignment is the horizontal alignment of a paragraph
type Alignment string

// Paragraph alignments
const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "both"
)

// TabAlign is the alignment of a tab stop
type TabAlign string

// Tab stop alignments
const (
	TabLeft  TabAlign = "left"
	TabRight TabAlign = "right"
)

// Twips per inch and per point
const (
	TwipsPerInch  = 1440
	TwipsPerPoint = 20
)

// Inches converts inches to twips
func Inches(in float64) int {
	return int(in * TwipsPerInch)
}

// Block is a top-level element of a document body
type Block interface {
	isBlock()
}

// Document is an ordered list of blocks plus page-wide settings.
type Document struct {
	Blocks         []Block
	FontFamily     string
	BaseFontSizePt float64
	PageBorder     bool
	MarginTwips    int
	Title          string
	Author         string
}

// New creates an empty document using the given base font
func New(fontFamily string, sizePt float64) *Document {
	return &Document{
		FontFamily:     fontFamily,
		BaseFontSizePt: sizePt,
		MarginTwips:    Inches(0.5),
	}
}

// AddParagraph appends an empty paragraph and returns it for filling
func (d *Document) AddParagraph() *Paragraph {
	p := &Paragraph{}
	d.Blocks = append(d.Blocks, p)
	return p
}

// AddTable appends a table
func (d *Document) AddTable(t *Table) {
	d.Blocks = append(d.Blocks, t)
}

// Paragraphs returns every paragraph in body order, including the ones
// inside table cells.
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, b := range d.Blocks {
		switch v := b.(type) {
		case *Paragraph:
			out = append(out, v)
		case *Table:
			for _, row := range v.Rows {
				for _, cell := range row {
					out = append(out, cell.Paragraphs...)
				}
			}
		}
	}
	return out
}

// Text returns the document text with one line per paragraph.
func (d *Document) Text() string {
	paragraphs := d.Paragraphs()
	lines := make([]string, len(paragraphs))
	for i, p := range paragraphs {
		lines[i] = p.Text()
	}
	return strings.Join(lines, "\n")
}

// Run is a span of text sharing one set of character properties. A run with
// a Link is emitted as a hyperlink. Keyword marks a highlighted keyword
// occurrence as opposed to bold labels and headings.
type Run struct {
	Text      string
	Bold      bool
	Keyword   bool
	Italic    bool
	Underline bool
	SizePt    float64
	Color     string
	Link      string
}

// TabStop positions text after a tab character
type TabStop struct {
	PositionTwips int
	Align         TabAlign
}

// Spacing is the vertical space around a paragraph in points
type Spacing struct {
	BeforePt float64
	AfterPt  float64
}

// Paragraph is a single block of runs.
type Paragraph struct {
	Runs         []Run
	Align        Alignment
	Bullet       bool
	BorderBottom bool
	Shading      string
	TabStops     []TabStop
	Spacing      *Spacing
	KeepNext     bool
}

func (*Paragraph) isBlock() {}

// Add appends runs and returns the paragraph
func (p *Paragraph) Add(runs ...Run) *Paragraph {
	p.Runs = append(p.Runs, runs...)
	return p
}

// Text returns the concatenated run text
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// BoldText returns the text of every bold run, in order
func (p *Paragraph) BoldText() []string {
	var out []string
	for _, r := range p.Runs {
		if r.Bold && r.Text != "" {
			out = append(out, r.Text)
		}
	}
	return out
}

// KeywordText returns the text of every highlighted keyword run, in order
func (p *Paragraph) KeywordText() []string {
	var out []string
	for _, r := range p.Runs {
		if r.Keyword && r.Text != "" {
			out = append(out, r.Text)
		}
	}
	return out
}

// Table is a grid of cells. Every row is expected to have len(ColumnWidths)
// cells.
type Table struct {
	Rows         [][]Cell
	ColumnWidths []int
	Borders      bool
}

func (*Table) isBlock() {}

// Cell holds the paragraphs of one table cell
type Cell struct {
	Paragraphs []*Paragraph
}

// TextCell builds a cell holding one paragraph with the given runs
func TextCell(runs ...Run) Cell {
	return Cell{Paragraphs: []*Paragraph{{Runs: runs}}}
}
