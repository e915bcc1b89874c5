package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/resumeforge/internal/document"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd("test")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeResume(t *testing.T, paras ...string) string {
	t.Helper()
	f := document.New()
	for _, p := range paras {
		bold := len(p) > 0 && p[0] == '*'
		if bold {
			p = p[1:]
		}
		f.InsertBefore(f.Len()).AddRun(document.Run{Text: p, Bold: bold})
	}
	data, err := f.Bytes()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "cv.docx")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func sampleResume(t *testing.T) string {
	return writeResume(t,
		"Jane Doe",
		"PROJECT EXPERIENCE",
		"*Old Project | 2023",
		"• old bullet",
		"",
		"*Next Project",
		"• stays",
	)
}

func readParagraphs(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	f, err := document.Load(bytes.NewReader(data))
	require.NoError(t, err)
	var out []string
	for i := 0; i < f.Len(); i++ {
		out = append(out, f.At(i).Text())
	}
	return out
}

func TestReplace_ExplicitBullets(t *testing.T) {
	in := sampleResume(t)
	out, err := run(t, "replace", in, "--title", "Resume Forge", "-b", "Built A.", "-b", "Shipped B.")
	require.NoError(t, err)

	dest := filepath.Join(filepath.Dir(in), "cv_tailored.docx")
	assert.Contains(t, out, "Wrote "+dest)
	assert.Equal(t, []string{
		"Jane Doe",
		"PROJECT EXPERIENCE",
		"Resume Forge",
		"• Built A.",
		"• Shipped B.",
		"",
		"Next Project",
		"• stays",
	}, readParagraphs(t, dest))
}

func TestReplace_JSONAndOutPath(t *testing.T) {
	in := sampleResume(t)
	dest := filepath.Join(t.TempDir(), "out.docx")
	out, err := run(t, "replace", in, "--json", "-t", "New", "-b", "One.", "-o", dest)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, dest, got["output"])
	block := got["replaced_block"].(map[string]any)
	assert.EqualValues(t, 2, block["start"])
	assert.EqualValues(t, 4, block["end"])
	assert.FileExists(t, dest)
}

func TestReplace_TitleOnly(t *testing.T) {
	for name, args := range map[string][]string{
		"no bullets":    {"-t", "Solo"},
		"blank bullets": {"-t", "Solo", "-b", " ", "-b", ""},
	} {
		t.Run(name, func(t *testing.T) {
			in := sampleResume(t)
			out, err := run(t, append([]string{"replace", in}, args...)...)
			require.NoError(t, err)
			assert.NotContains(t, out, "•")
			assert.Equal(t, []string{
				"Jane Doe",
				"PROJECT EXPERIENCE",
				"Solo",
				"",
				"Next Project",
				"• stays",
			}, readParagraphs(t, filepath.Join(filepath.Dir(in), "cv_tailored.docx")))
		})
	}
}

func TestReplace_Errors(t *testing.T) {
	_, err := run(t, "replace", sampleResume(t), "-b", "One.")
	assert.Error(t, err)

	_, err = run(t, "replace", sampleResume(t), "-t", "New", "-b", "One.", "--generate")
	assert.Error(t, err)

	_, err = run(t, "replace", writeResume(t, "Jane", "EXPERIENCE"), "-t", "New", "-b", "One.")
	assert.ErrorContains(t, err, "PROJECT EXPERIENCE")

	_, err = run(t, "replace", filepath.Join(t.TempDir(), "missing.docx"), "-t", "New", "-b", "One.")
	assert.Error(t, err)
}

func TestReplace_CustomMarker(t *testing.T) {
	in := writeResume(t, "SIDE PROJECTS", "*Old | 2020", "• x")
	_, err := run(t, "replace", in, "--marker", "side projects", "-t", "New", "-b", "One.")
	require.NoError(t, err)
	assert.Equal(t, []string{"SIDE PROJECTS", "New", "• One."},
		readParagraphs(t, filepath.Join(filepath.Dir(in), "cv_tailored.docx")))
}

func TestReplace_Generate(t *testing.T) {
	reply, err := json.Marshal(map[string]any{
		"bullets":                []string{"Generated one.", "Generated two."},
		"assumptions":            []string{},
		"missing_info_questions": []string{"What scale?"},
	})
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]string{"role": "assistant", "content": string(reply)},
			}},
		})
	}))
	defer server.Close()

	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", server.URL+"/v1")

	in := sampleResume(t)
	out, err := run(t, "replace", in, "-t", "Resume Forge", "--generate", "--description", "docx editor")
	require.NoError(t, err)
	assert.Contains(t, out, "? What scale?")

	paras := readParagraphs(t, filepath.Join(filepath.Dir(in), "cv_tailored.docx"))
	assert.Equal(t, []string{"Resume Forge", "• Generated one.", "• Generated two."}, paras[2:5])
}

func TestInspect(t *testing.T) {
	out, err := run(t, "inspect", sampleResume(t))
	require.NoError(t, err)
	assert.Contains(t, out, "H PROJECT EXPERIENCE")
	assert.Contains(t, out, "T Old Project | 2023")
	assert.Contains(t, out, "• old bullet")
	assert.NotContains(t, out, "Next Project")
}

func TestText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.md")
	require.NoError(t, os.WriteFile(path, []byte("# Jane\n\n- Built X\n"), 0o644))

	out, err := run(t, "text", path)
	require.NoError(t, err)
	assert.Equal(t, "Jane\n• Built X\n", out)
}

func TestFeedbackAndModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/messages":
			_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"**Strong** projects."}]}`))
		case "/v1/models":
			_, _ = w.Write([]byte(`{"data":[{"id":"claude-a"},{"id":"claude-default"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	t.Setenv("ANTHROPIC_BASE_URL", server.URL)
	t.Setenv("ANTHROPIC_MODEL", "claude-default")

	out, err := run(t, "feedback", sampleResume(t))
	require.NoError(t, err)
	assert.Equal(t, "**Strong** projects.\n", out)

	out, err = run(t, "feedback", sampleResume(t), "--html")
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>Strong</strong>")

	out, err = run(t, "models")
	require.NoError(t, err)
	assert.Equal(t, "  claude-a\n* claude-default\n", out)
}

func TestFeedback_RequiresKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("RESUMEFORGE_ANTHROPIC_API_KEY", "")
	_, err := run(t, "feedback", sampleResume(t))
	assert.ErrorContains(t, err, "ANTHROPIC_API_KEY")
}
