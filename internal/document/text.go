package document

import "strings"

// ExtractText joins the text of every non-blank paragraph with newlines.
func ExtractText(seq Sequence) string {
	var lines []string
	for i := 0; i < seq.Len(); i++ {
		t := seq.At(i).Text()
		if strings.TrimSpace(t) == "" {
			continue
		}
		lines = append(lines, t)
	}
	return strings.Join(lines, "\n")
}
