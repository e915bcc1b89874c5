package bullets

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// minBulletChars is the shortest text accepted as a bullet.
const minBulletChars = 3

var injectionPattern = regexp.MustCompile(
	`(?i)(ignore\s+(previous|all|above)|system\s*prompt|you\s+are\s+now|` +
		`forget\s+(everything|all)|new\s+instructions)`,
)

// Acceptable reports whether s can go on a resume: long enough and not an
// instruction aimed at a model.
func Acceptable(s string) bool {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) < minBulletChars {
		return false
	}
	return !injectionPattern.MatchString(s)
}

// filterAcceptable keeps the entries of lines that pass Acceptable.
func filterAcceptable(lines []string) []string {
	out := lines[:0:0]
	for _, l := range lines {
		if Acceptable(l) {
			out = append(out, l)
		}
	}
	return out
}
