// Package document exposes a resume as an ordered, mutable sequence of
// paragraphs with run-level bold flags and basic paragraph formatting.
package document

import "math"

// Run is a span of paragraph text sharing one character style.
type Run struct {
	Text string
	Bold bool
	Size float64 // Points; 0 means inherited.
}

// Alignment is a paragraph's horizontal alignment.
type Alignment string

const (
	AlignInherit Alignment = ""
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "both"
)

// Length is a distance in twips (1/20 pt, 1/1440 inch).
type Length int

func Pt(v float64) Length     { return Length(math.Round(v * 20)) }
func Inches(v float64) Length { return Length(math.Round(v * 1440)) }

// Points returns the length in points.
func (l Length) Points() float64 { return float64(l) / 20 }

// Format is the paragraph-level formatting the editor reads and writes.
// A negative FirstLineIndent is a hanging indent.
type Format struct {
	Alignment       Alignment
	LeftIndent      Length
	FirstLineIndent Length
	SpaceBefore     Length
	SpaceAfter      Length
}

// Paragraph is one block-level unit of text.
type Paragraph interface {
	Text() string
	Runs() []Run
	AddRun(r Run)
	Format() Format
	SetFormat(f Format)
}

// Sequence is an ordered paragraph list. Inserting or removing shifts the
// position of every later paragraph.
type Sequence interface {
	Len() int
	At(i int) Paragraph
	// InsertBefore inserts an empty paragraph at position i; i == Len()
	// appends after the last paragraph.
	InsertBefore(i int) Paragraph
	Remove(i int)
}
