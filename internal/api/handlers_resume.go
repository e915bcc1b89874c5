package api

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/dgallion1/resumeforge/internal/document"
	"github.com/dgallion1/resumeforge/internal/editor"
	"github.com/dgallion1/resumeforge/internal/parser"
)

// handleReplace replaces the first project of an uploaded resume with the
// posted title and bullet lines and returns the edited .docx.
func (s *Server) handleReplace(w http.ResponseWriter, r *http.Request) {
	up, ok := s.readUpload(w, r, true)
	if !ok {
		return
	}
	title := r.FormValue("title")
	lines := r.MultipartForm.Value["bullet"]

	doc, err := document.Load(bytes.NewReader(up.Data))
	if err != nil {
		jsonError(w, "invalid docx: "+err.Error(), http.StatusBadRequest)
		return
	}
	block, err := editor.ReplaceFirstProject(doc, title, lines, editor.WithMarker(s.cfg.SectionMarker))
	if err != nil {
		s.editError(w, err)
		return
	}
	out, err := doc.Bytes()
	if err != nil {
		s.log.Error("save docx failed", "filename", up.Filename, "error", err)
		jsonError(w, "failed to save document", http.StatusInternalServerError)
		return
	}

	s.log.Info("first project replaced", "filename", up.Filename, "start", block.Start, "end", block.End)
	s.writeDocx(w, tailoredName(up.Filename), out)
}

// handleInspect reports where the first project sits without editing.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	up, ok := s.readUpload(w, r, true)
	if !ok {
		return
	}
	doc, err := document.Load(bytes.NewReader(up.Data))
	if err != nil {
		jsonError(w, "invalid docx: "+err.Error(), http.StatusBadRequest)
		return
	}
	block, err := editor.Locate(doc, s.cfg.SectionMarker)
	if err != nil {
		s.editError(w, err)
		return
	}

	entry := make([]string, 0, block.Len())
	for i := block.Start; i < block.End; i++ {
		entry = append(entry, doc.At(i).Text())
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"filename": up.Filename,
		"block":    block,
		"header":   doc.At(block.Header).Text(),
		"title":    doc.At(block.Title).Text(),
		"entry":    entry,
	})
}

// handleText returns the plain text of any supported resume format.
func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	up, ok := s.readUpload(w, r, false)
	if !ok {
		return
	}
	text, err := parser.Extract(bytes.NewReader(up.Data), up.Filename, parser.WithPdftotext(s.cfg.PDFFallbackPdftotext))
	if err != nil {
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"filename": up.Filename,
		"text":     text,
	})
}

// editError maps editor failures to responses. Layout problems are 422
// with a message the resume owner can act on.
func (s *Server) editError(w http.ResponseWriter, err error) {
	switch {
	case editor.IsStructural(err):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":   err.Error(),
			"message": editor.UserMessage(err),
		})
	case errors.Is(err, editor.ErrEmptyTitle):
		jsonError(w, "title is required", http.StatusBadRequest)
	default:
		s.log.Error("edit failed", "error", err)
		jsonError(w, "failed to edit document", http.StatusInternalServerError)
	}
}
