package parser

import (
	"bufio"
	"io"
)

// TextExtractor reads plain text files.
type TextExtractor struct{}

func (TextExtractor) Extract(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return joinLines(lines), nil
}
