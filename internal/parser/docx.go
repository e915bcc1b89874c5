package parser

import (
	"io"

	"github.com/dgallion1/resumeforge/internal/document"
)

// DOCXExtractor reads .docx paragraphs.
type DOCXExtractor struct{}

func (DOCXExtractor) Extract(r io.Reader) (string, error) {
	f, err := document.Load(r)
	if err != nil {
		return "", err
	}
	return document.ExtractText(f), nil
}
