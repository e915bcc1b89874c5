package document

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"
)

// File is a .docx document viewed as a paragraph Sequence. Body items that
// are not paragraphs (tables, section properties) keep their place.
type File struct {
	raw *docx.Docx
	// Paragraph spacing set through SetFormat, written on save.
	spacing map[*docx.Paragraph]spacing
}

type spacing struct {
	before, after Length
}

// New returns an empty document using the library's default theme.
func New() *File {
	return newFile(docx.New().WithDefaultTheme())
}

func newFile(raw *docx.Docx) *File {
	return &File{raw: raw, spacing: make(map[*docx.Paragraph]spacing)}
}

// Load parses .docx bytes from r.
func Load(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}
	data, err = rewritePart(data, documentPart, stripExplicitOff)
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}
	// The parsed document keeps reading untouched parts from this reader
	// when saved, so it must stay in memory.
	raw, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}
	return newFile(raw), nil
}

// Save writes the document as .docx.
func (f *File) Save(w io.Writer) error {
	data, err := f.Bytes()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Bytes returns the serialized document.
func (f *File) Bytes() ([]byte, error) {
	tokens := make(map[string]string, len(f.spacing))
	saved := make(map[*docx.Paragraph]*docx.Spacing, len(f.spacing))
	for p, sp := range f.spacing {
		tok := spacingToken(len(tokens))
		tokens[`w:lineRule="`+tok+`"`] = spacingAttrs(sp)
		saved[p] = p.Properties.Spacing
		p.Properties.Spacing = &docx.Spacing{LineRule: tok}
	}
	defer func() {
		for p, s := range saved {
			p.Properties.Spacing = s
		}
	}()

	var buf bytes.Buffer
	if _, err := f.raw.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	if len(tokens) == 0 {
		return buf.Bytes(), nil
	}
	data, err := rewritePart(buf.Bytes(), documentPart, func(xml []byte) []byte {
		for tok, attrs := range tokens {
			xml = bytes.ReplaceAll(xml, []byte(tok), []byte(attrs))
		}
		return xml
	})
	if err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	return data, nil
}

// Len returns the number of paragraphs.
func (f *File) Len() int {
	n := 0
	for _, item := range f.raw.Document.Body.Items {
		if _, ok := item.(*docx.Paragraph); ok {
			n++
		}
	}
	return n
}

// At returns paragraph i. It panics when i is out of range.
func (f *File) At(i int) Paragraph {
	idx := f.itemIndex(i)
	if idx < 0 {
		panic(fmt.Sprintf("document: paragraph index %d out of range [0,%d)", i, f.Len()))
	}
	return &paragraph{p: f.raw.Document.Body.Items[idx].(*docx.Paragraph), file: f}
}

// InsertBefore inserts an empty paragraph at paragraph position i.
func (f *File) InsertBefore(i int) Paragraph {
	var at int
	switch {
	case i < 0 || i > f.Len():
		panic(fmt.Sprintf("document: insert index %d out of range [0,%d]", i, f.Len()))
	case i == f.Len():
		at = f.appendIndex()
	default:
		at = f.itemIndex(i)
	}

	// AddParagraph wires the paragraph to the file and appends it; move it
	// from the tail to its target slot.
	p := f.raw.AddParagraph()
	items := f.raw.Document.Body.Items
	items = items[:len(items)-1]
	items = append(items, nil)
	copy(items[at+1:], items[at:])
	items[at] = p
	f.raw.Document.Body.Items = items

	return &paragraph{p: p, file: f}
}

// Remove deletes paragraph i.
func (f *File) Remove(i int) {
	idx := f.itemIndex(i)
	if idx < 0 {
		panic(fmt.Sprintf("document: paragraph index %d out of range [0,%d)", i, f.Len()))
	}
	items := f.raw.Document.Body.Items
	delete(f.spacing, items[idx].(*docx.Paragraph))
	f.raw.Document.Body.Items = append(items[:idx], items[idx+1:]...)
}

// itemIndex maps paragraph position i to its body item index, or -1.
func (f *File) itemIndex(i int) int {
	if i < 0 {
		return -1
	}
	n := 0
	for idx, item := range f.raw.Document.Body.Items {
		if _, ok := item.(*docx.Paragraph); !ok {
			continue
		}
		if n == i {
			return idx
		}
		n++
	}
	return -1
}

// appendIndex is the body slot right after the last paragraph. Without
// paragraphs it is before a trailing section properties element.
func (f *File) appendIndex() int {
	items := f.raw.Document.Body.Items
	for idx := len(items) - 1; idx >= 0; idx-- {
		if _, ok := items[idx].(*docx.Paragraph); ok {
			return idx + 1
		}
	}
	if n := len(items); n > 0 {
		if _, ok := items[n-1].(*docx.SectPr); ok {
			return n - 1
		}
	}
	return len(items)
}

type paragraph struct {
	p    *docx.Paragraph
	file *File
}

func (p *paragraph) Text() string {
	var sb strings.Builder
	for _, child := range p.p.Children {
		switch c := child.(type) {
		case *docx.Run:
			writeRunText(&sb, c)
		case *docx.Hyperlink:
			writeRunText(&sb, &c.Run)
		}
	}
	return sb.String()
}

func writeRunText(sb *strings.Builder, r *docx.Run) {
	for _, rc := range r.Children {
		switch t := rc.(type) {
		case *docx.Text:
			sb.WriteString(t.Text)
		case *docx.Tab:
			sb.WriteByte('\t')
		case *docx.BarterRabbet:
			sb.WriteByte('\n')
		}
	}
}

func (p *paragraph) Runs() []Run {
	var runs []Run
	for _, child := range p.p.Children {
		switch c := child.(type) {
		case *docx.Run:
			runs = append(runs, toRun(c))
		case *docx.Hyperlink:
			runs = append(runs, toRun(&c.Run))
		}
	}
	return runs
}

func toRun(r *docx.Run) Run {
	var sb strings.Builder
	writeRunText(&sb, r)
	out := Run{Text: sb.String()}
	if props := r.RunProperties; props != nil {
		out.Bold = props.Bold != nil
		if props.Size != nil {
			if half, err := strconv.ParseFloat(props.Size.Val, 64); err == nil {
				out.Size = half / 2
			}
		}
	}
	return out
}

func (p *paragraph) AddRun(r Run) {
	run := p.p.AddText(r.Text)
	if r.Bold {
		run.Bold()
	}
	if r.Size > 0 {
		// w:sz is in half-points.
		run.Size(strconv.FormatFloat(r.Size*2, 'f', -1, 64))
	}
}

func (p *paragraph) Format() Format {
	var f Format
	props := p.p.Properties
	if props == nil {
		return f
	}
	if props.Justification != nil {
		f.Alignment = Alignment(props.Justification.Val)
	}
	if props.Ind != nil {
		f.LeftIndent = Length(props.Ind.Left)
		switch {
		case props.Ind.Hanging != 0:
			f.FirstLineIndent = -Length(props.Ind.Hanging)
		default:
			f.FirstLineIndent = Length(props.Ind.FirstLine)
		}
	}
	if sp, ok := p.file.spacing[p.p]; ok {
		f.SpaceBefore, f.SpaceAfter = sp.before, sp.after
	} else if props.Spacing != nil {
		f.SpaceBefore = Length(props.Spacing.Before)
	}
	return f
}

func (p *paragraph) SetFormat(f Format) {
	if f.Alignment != AlignInherit {
		p.p.Justification(string(f.Alignment))
	}
	if p.p.Properties == nil {
		p.p.Properties = &docx.ParagraphProperties{}
	}
	if f.LeftIndent != 0 || f.FirstLineIndent != 0 {
		ind := &docx.Ind{Left: int(f.LeftIndent)}
		if f.FirstLineIndent < 0 {
			ind.Hanging = int(-f.FirstLineIndent)
		} else {
			ind.FirstLine = int(f.FirstLineIndent)
		}
		p.p.Properties.Ind = ind
	}
	p.p.Properties.Spacing = &docx.Spacing{Before: int(f.SpaceBefore)}
	p.file.spacing[p.p] = spacing{before: f.SpaceBefore, after: f.SpaceAfter}
}
