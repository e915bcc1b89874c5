package document

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appendPara(f *File, text string, bold bool) {
	f.InsertBefore(f.Len()).AddRun(Run{Text: text, Bold: bold})
}

func texts(seq Sequence) []string {
	out := make([]string, 0, seq.Len())
	for i := 0; i < seq.Len(); i++ {
		out = append(out, seq.At(i).Text())
	}
	return out
}

func TestFile_InsertBeforeAndRemove(t *testing.T) {
	f := New()
	appendPara(f, "A", false)
	appendPara(f, "C", false)

	f.InsertBefore(1).AddRun(Run{Text: "B"})
	f.InsertBefore(0).AddRun(Run{Text: "start"})
	assert.Equal(t, []string{"start", "A", "B", "C"}, texts(f))

	f.Remove(2)
	assert.Equal(t, []string{"start", "A", "C"}, texts(f))

	f.Remove(2)
	f.InsertBefore(f.Len()).AddRun(Run{Text: "end"})
	assert.Equal(t, []string{"start", "A", "end"}, texts(f))
}

func TestFile_OutOfRangePanics(t *testing.T) {
	f := New()
	appendPara(f, "only", false)

	assert.Panics(t, func() { f.At(1) })
	assert.Panics(t, func() { f.Remove(-1) })
	assert.Panics(t, func() { f.InsertBefore(2) })
}

func TestParagraph_RunsAndText(t *testing.T) {
	f := New()
	p := f.InsertBefore(0)
	p.AddRun(Run{Text: "Title", Bold: true, Size: 12})
	p.AddRun(Run{Text: " | 2024"})

	assert.Equal(t, "Title | 2024", p.Text())
	runs := p.Runs()
	require.Len(t, runs, 2)
	assert.Equal(t, Run{Text: "Title", Bold: true, Size: 12}, runs[0])
	assert.Equal(t, Run{Text: " | 2024"}, runs[1])
}

func TestParagraph_TabsAndBreaks(t *testing.T) {
	f := New()
	p := f.InsertBefore(0)
	p.AddRun(Run{Text: "a\tb\nc"})

	assert.Equal(t, "a\tb\nc", p.Text())
}

func TestParagraph_Format(t *testing.T) {
	f := New()
	p := f.InsertBefore(0)
	want := Format{
		Alignment:       AlignLeft,
		LeftIndent:      Inches(0.25),
		FirstLineIndent: -Inches(0.15),
		SpaceBefore:     Pt(0),
	}
	p.SetFormat(want)
	assert.Equal(t, want, p.Format())

	q := f.InsertBefore(1)
	q.SetFormat(Format{FirstLineIndent: Pt(18), SpaceBefore: Pt(6)})
	got := q.Format()
	assert.Equal(t, AlignInherit, got.Alignment)
	assert.Equal(t, Pt(18), got.FirstLineIndent)
	assert.Equal(t, Length(120), got.SpaceBefore)
}

func TestParagraph_FormatWritesExactSpacing(t *testing.T) {
	f := New()
	title := f.InsertBefore(0)
	title.AddRun(Run{Text: "Title", Bold: true})
	title.SetFormat(Format{Alignment: AlignLeft})
	bullet := f.InsertBefore(1)
	bullet.AddRun(Run{Text: "• one"})
	bullet.SetFormat(Format{LeftIndent: Inches(0.25), SpaceBefore: Pt(3), SpaceAfter: Pt(1.5)})

	data, err := f.Bytes()
	require.NoError(t, err)

	xml := documentXML(t, data)
	assert.Contains(t, xml, `w:before="0" w:after="0"`)
	assert.Contains(t, xml, `w:before="60" w:after="30"`)
	assert.NotContains(t, xml, "<w:spacing></w:spacing>")
	assert.NotContains(t, xml, "resumeforge-spacing")

	// Saving leaves the in-memory paragraphs as they were.
	assert.Equal(t, Pt(1.5), bullet.Format().SpaceAfter)
	again, err := f.Bytes()
	require.NoError(t, err)
	assert.Equal(t, xml, documentXML(t, again))
}

func TestFile_RemoveDropsSpacing(t *testing.T) {
	f := New()
	f.InsertBefore(0).SetFormat(Format{SpaceAfter: Pt(2)})
	f.Remove(0)
	assert.Empty(t, f.spacing)
}

func TestLength(t *testing.T) {
	assert.Equal(t, Length(360), Inches(0.25))
	assert.Equal(t, Length(216), Inches(0.15))
	assert.Equal(t, Length(240), Pt(12))
	assert.InDelta(t, 10.5, Pt(10.5).Points(), 0.001)
}

func TestFile_SaveLoadRoundTrip(t *testing.T) {
	f := New()
	appendPara(f, "PROJECT EXPERIENCE", false)
	appendPara(f, "Legacy Title", true)
	appendPara(f, "• bullet one", false)

	data, err := f.Bytes()
	require.NoError(t, err)

	loaded, err := Load(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"PROJECT EXPERIENCE", "Legacy Title", "• bullet one"}, texts(loaded))
	assert.True(t, loaded.At(1).Runs()[0].Bold)
	assert.False(t, loaded.At(2).Runs()[0].Bold)

	// A loaded file must save again without losing untouched parts.
	loaded.Remove(0)
	again, err := loaded.Bytes()
	require.NoError(t, err)
	reloaded, err := Load(bytes.NewReader(again))
	require.NoError(t, err)
	assert.Equal(t, []string{"Legacy Title", "• bullet one"}, texts(reloaded))
}

func TestLoad_InvalidData(t *testing.T) {
	_, err := Load(bytes.NewReader([]byte("not a zip")))
	assert.Error(t, err)
}

func TestExtractText(t *testing.T) {
	f := New()
	appendPara(f, "Jane Doe", true)
	f.InsertBefore(f.Len())
	appendPara(f, "   ", false)
	appendPara(f, "• Shipped feature X", false)

	assert.Equal(t, "Jane Doe\n• Shipped feature X", ExtractText(f))
}

const offBody = `<w:p><w:r><w:rPr><w:b/></w:rPr><w:t>First</w:t></w:r></w:p>` +
	`<w:p><w:r><w:rPr><w:b w:val="0"/><w:i w:val="false"></w:i></w:rPr><w:t>Second</w:t></w:r></w:p>` +
	`<w:p><w:r><w:rPr><w:b w:val='off'/></w:rPr><w:t>Third</w:t></w:r></w:p>`

func TestLoad_ExplicitOffRunsAreNotBold(t *testing.T) {
	loaded, err := Load(bytes.NewReader(withBody(t, offBody)))
	require.NoError(t, err)

	require.Equal(t, 3, loaded.Len())
	assert.True(t, loaded.At(0).Runs()[0].Bold)
	assert.False(t, loaded.At(1).Runs()[0].Bold)
	assert.False(t, loaded.At(2).Runs()[0].Bold)

	data, err := loaded.Bytes()
	require.NoError(t, err)
	xml := documentXML(t, data)
	assert.Contains(t, xml, "First")
	assert.NotContains(t, xml, "<w:b></w:b><w:t>Second")
	assert.NotContains(t, xml, "<w:i></w:i>")
	assert.Equal(t, 1, strings.Count(xml, "<w:b></w:b>"))
}

func TestStripExplicitOff(t *testing.T) {
	in := `<w:b/><w:b w:val="1"/><w:b w:val="0"/><w:bCs w:val="false"/><w:i w:val="off"></w:i><w:iCs w:val='0' />`
	assert.Equal(t, `<w:b/><w:b w:val="1"/>`, string(stripExplicitOff([]byte(in))))
}

// withBody returns a package whose document body is body.
func withBody(t *testing.T, body string) []byte {
	t.Helper()
	base, err := New().Bytes()
	require.NoError(t, err)
	data, err := rewritePart(base, documentPart, func([]byte) []byte {
		return []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body + `</w:body></w:document>`)
	})
	require.NoError(t, err)
	return data
}

func documentXML(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != documentPart {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(b)
	}
	t.Fatalf("%s missing", documentPart)
	return ""
}
