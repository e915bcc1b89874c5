package document

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
)

const documentPart = "word/document.xml"

// go-docx keeps only the presence of w:b and w:i, so an explicit off
// (<w:b w:val="0"/>) would read and save as bold. Those elements are
// dropped before parsing; the run then inherits, which is what Word
// shows for an unstyled run.
var explicitOff = regexp.MustCompile(
	`<w:(?:b|bCs|i|iCs)\s+w:val\s*=\s*["'](?:0|false|off)["']\s*(?:/>|>\s*</w:(?:b|bCs|i|iCs)>)`)

func stripExplicitOff(xml []byte) []byte {
	return explicitOff.ReplaceAll(xml, nil)
}

// rewritePart returns the package pkg with part name passed through fn.
// Every other part is copied unchanged.
func rewritePart(pkg []byte, name string, fn func([]byte) []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(pkg), int64(len(pkg)))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range zr.File {
		if f.Name != name {
			if err := zw.Copy(f); err != nil {
				return nil, fmt.Errorf("copy %s: %w", f.Name, err)
			}
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: zip.Deflate, Modified: f.Modified})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(fn(data)); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// spacingToken marks a w:spacing element whose before/after values are
// filled in after marshalling; go-docx omits a zero w:before and has no
// w:after at all.
func spacingToken(i int) string { return "resumeforge-spacing-" + strconv.Itoa(i) }

func spacingAttrs(s spacing) string {
	return fmt.Sprintf(`w:before="%d" w:after="%d"`, int(s.before), int(s.after))
}
