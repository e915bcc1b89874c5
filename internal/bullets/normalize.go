package bullets

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalize keeps the first maxBullets entries, collapses whitespace, drops
// blanks and caps each bullet at maxChars runes with a trailing ellipsis.
func Normalize(bullets []string, maxChars, maxBullets int) []string {
	if maxBullets > 0 && len(bullets) > maxBullets {
		bullets = bullets[:maxBullets]
	}
	out := make([]string, 0, len(bullets))
	for _, b := range bullets {
		b = strings.Join(strings.Fields(b), " ")
		if b == "" {
			continue
		}
		if maxChars > 0 && utf8.RuneCountInString(b) > maxChars {
			r := []rune(b)[:maxChars-1]
			b = strings.TrimRightFunc(string(r), unicode.IsSpace) + "…"
		}
		out = append(out, b)
	}
	return out
}

// Clean splits free-form model text into bullet strings, removing bullet
// glyphs and "1. " or "1) " numbering.
func Clean(text string, maxBullets int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimLeft(line, "•")
		line = strings.TrimLeft(line, "-")
		line = strings.TrimSpace(line)
		line = stripNumbering(line)
		if line != "" {
			out = append(out, line)
		}
	}
	if maxBullets > 0 && len(out) > maxBullets {
		out = out[:maxBullets]
	}
	return out
}

func stripNumbering(s string) string {
	if len(s) >= 3 && s[0] >= '0' && s[0] <= '9' && (s[1:3] == ". " || s[1:3] == ") ") {
		return strings.TrimSpace(s[3:])
	}
	return s
}
