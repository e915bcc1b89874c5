package editor

import (
	"fmt"
	"strings"

	"github.com/dgallion1/resumeforge/internal/document"
)

// BulletGlyph prefixes every inserted bullet paragraph.
const BulletGlyph = "• "

const (
	titleSize  = 12
	bulletSize = 10.5
)

var (
	titleFormat = document.Format{
		Alignment:   document.AlignLeft,
		SpaceBefore: 0,
		SpaceAfter:  0,
	}
	bulletFormat = document.Format{
		Alignment:       document.AlignLeft,
		LeftIndent:      document.Inches(0.25),
		FirstLineIndent: -document.Inches(0.15),
		SpaceBefore:     0,
		SpaceAfter:      0,
	}
)

type options struct {
	marker string
}

// Option configures ReplaceFirstProject.
type Option func(*options)

// WithMarker sets the section heading to search for. Blank keeps
// DefaultMarker.
func WithMarker(marker string) Option {
	return func(o *options) {
		if strings.TrimSpace(marker) != "" {
			o.marker = marker
		}
	}
}

// ReplaceFirstProject deletes the first project entry (and any summary lines
// before it) under the section heading and inserts title followed by one
// paragraph per non-blank bullet at the same position. seq is untouched
// when an error is returned.
func ReplaceFirstProject(seq document.Sequence, title string, bullets []string, opts ...Option) (Block, error) {
	o := options{marker: DefaultMarker}
	for _, opt := range opts {
		opt(&o)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return Block{}, ErrEmptyTitle
	}
	block, err := Locate(seq, o.marker)
	if err != nil {
		return Block{}, fmt.Errorf("replace first project: %w", err)
	}

	for i := block.End - 1; i >= block.Start; i-- {
		seq.Remove(i)
	}

	items := normalizeBullets(bullets)
	for i := len(items) - 1; i >= 0; i-- {
		p := seq.InsertBefore(block.Start)
		p.AddRun(document.Run{Text: BulletGlyph + items[i], Size: bulletSize})
		p.SetFormat(bulletFormat)
	}

	p := seq.InsertBefore(block.Start)
	p.AddRun(document.Run{Text: title, Bold: true, Size: titleSize})
	p.SetFormat(titleFormat)

	return block, nil
}

func normalizeBullets(bullets []string) []string {
	out := make([]string, 0, len(bullets))
	for _, b := range bullets {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
