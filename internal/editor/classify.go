// Package editor finds the first project entry under a resume's project
// section and replaces it with a new title and bullet list.
//
// Resumes carry no machine-readable structure, so entries are found with
// formatting and punctuation heuristics over the paragraph sequence.
package editor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/resumeforge/internal/document"
)

// minHeaderLen is the shortest text treated as a section header.
const minHeaderLen = 4

// IsSectionHeader reports whether text looks like an all-caps section
// heading such as "EDUCATION".
func IsSectionHeader(text string) bool {
	t := strings.TrimSpace(text)
	if utf8.RuneCountInString(t) < minHeaderLen {
		return false
	}
	if strings.ToUpper(t) != t {
		return false
	}
	return strings.IndexFunc(t, unicode.IsLetter) >= 0
}

// IsBulletLine reports whether text starts with a bullet glyph or a dash.
func IsBulletLine(text string) bool {
	t := strings.TrimSpace(text)
	return strings.HasPrefix(t, "•") || strings.HasPrefix(t, "-")
}

// IsTitleLike reports whether p reads as an entry title. Any bold run with
// visible text wins; otherwise a separator ("|", "–" or "-") in a line that
// is not a bullet qualifies.
func IsTitleLike(p document.Paragraph) bool {
	for _, r := range p.Runs() {
		if r.Bold && strings.TrimSpace(r.Text) != "" {
			return true
		}
	}
	t := strings.TrimSpace(p.Text())
	if IsBulletLine(t) {
		return false
	}
	return strings.ContainsAny(t, "|–-")
}

func isBlank(p document.Paragraph) bool {
	return strings.TrimSpace(p.Text()) == ""
}
