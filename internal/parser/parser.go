// Package parser extracts plain resume text from uploaded files so it can
// be sent for review.
package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Extractor converts raw file bytes into newline-separated text with blank
// lines removed.
type Extractor interface {
	Extract(r io.Reader) (string, error)
}

// SupportedExtensions lists the file extensions that can be read.
var SupportedExtensions = map[string]bool{
	".docx":     true,
	".pdf":      true,
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
}

// Option adjusts extractor selection.
type Option func(*options)

type options struct {
	pdftotext bool
}

// WithPdftotext lets PDF extraction shell out to pdftotext when the
// built-in reader yields nothing.
func WithPdftotext(enabled bool) Option {
	return func(o *options) { o.pdftotext = enabled }
}

// ForFile returns the extractor for filename's extension.
func ForFile(filename string, opts ...Option) (Extractor, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".docx":
		return &DOCXExtractor{}, nil
	case ".pdf":
		return &PDFExtractor{FallbackPdftotext: o.pdftotext}, nil
	case ".txt":
		return &TextExtractor{}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %q", ext)
	}
}

// Extract reads r with the extractor for filename.
func Extract(r io.Reader, filename string, opts ...Option) (string, error) {
	x, err := ForFile(filename, opts...)
	if err != nil {
		return "", err
	}
	text, err := x.Extract(r)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", filepath.Base(filename), err)
	}
	return text, nil
}

// IsSupportedExtension reports whether filename can be read.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// joinLines trims each line and joins the non-blank ones with "\n".
func joinLines(lines []string) string {
	out := lines[:0]
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}
