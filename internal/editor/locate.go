package editor

import (
	"fmt"
	"strings"

	"github.com/dgallion1/resumeforge/internal/document"
)

// DefaultMarker is the section heading searched for when none is given.
const DefaultMarker = "PROJECT EXPERIENCE"

// Block is the half-open paragraph range [Start, End) of the first project
// entry. Title is the entry's title paragraph; it differs from Start when
// summary lines under the heading precede the first title.
type Block struct {
	Header int `json:"header"`
	Start  int `json:"start"`
	Title  int `json:"title"`
	End    int `json:"end"`
}

// Len returns the number of paragraphs in the block.
func (b Block) Len() int { return b.End - b.Start }

// LocateHeader returns the index of the first paragraph whose text contains
// marker, compared case-insensitively.
func LocateHeader(seq document.Sequence, marker string) (int, error) {
	if strings.TrimSpace(marker) == "" {
		marker = DefaultMarker
	}
	want := strings.ToUpper(marker)
	for i := 0; i < seq.Len(); i++ {
		if strings.Contains(strings.ToUpper(seq.At(i).Text()), want) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("locate %q: %w", marker, ErrSectionNotFound)
}

// Locate finds the first project entry under the marker heading without
// modifying seq.
func Locate(seq document.Sequence, marker string) (Block, error) {
	header, err := LocateHeader(seq, marker)
	if err != nil {
		return Block{}, err
	}
	start, title, err := locateStart(seq, header)
	if err != nil {
		return Block{}, err
	}
	return Block{
		Header: header,
		Start:  start,
		Title:  title,
		End:    locateEnd(seq, title),
	}, nil
}

// locateStart returns the deletion start and the title index of the first
// entry after header. Lines before the first title (summary bullets or plain
// text) belong to the deleted range.
func locateStart(seq document.Sequence, header int) (start, title int, err error) {
	n := seq.Len()
	start = header + 1
	for start < n && isBlank(seq.At(start)) {
		start++
	}
	if start >= n {
		return -1, -1, fmt.Errorf("nothing after header at paragraph %d: %w", header, ErrFirstEntryNotFound)
	}

	first := seq.At(start)
	if !IsBulletLine(first.Text()) && IsTitleLike(first) {
		return start, start, nil
	}

	for i := start + 1; i < n; i++ {
		p := seq.At(i)
		if IsBulletLine(p.Text()) {
			continue
		}
		if IsTitleLike(p) {
			return start, i, nil
		}
	}
	return -1, -1, fmt.Errorf("no title after summary at paragraph %d: %w", start, ErrFirstEntryNotFound)
}

// locateEnd returns the exclusive end of the entry whose title is at title.
func locateEnd(seq document.Sequence, title int) int {
	seenBullet := false
	for i := title + 1; i < seq.Len(); i++ {
		p := seq.At(i)
		text := p.Text()
		switch {
		case strings.TrimSpace(text) == "":
			if seenBullet {
				return i
			}
		case IsSectionHeader(text):
			return i
		case IsBulletLine(text):
			seenBullet = true
		case IsTitleLike(p):
			return i
		}
	}
	return seq.Len()
}
