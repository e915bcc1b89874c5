package api

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/dgallion1/resumeforge/internal/feedback"
	"github.com/dgallion1/resumeforge/internal/llm"
	"github.com/dgallion1/resumeforge/internal/parser"
)

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	if s.reviewer == nil {
		jsonError(w, "feedback is not configured", http.StatusServiceUnavailable)
		return
	}
	up, ok := s.readUpload(w, r, false)
	if !ok {
		return
	}
	text, err := parser.Extract(bytes.NewReader(up.Data), up.Filename, parser.WithPdftotext(s.cfg.PDFFallbackPdftotext))
	if err != nil {
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if strings.TrimSpace(text) == "" {
		jsonError(w, "no text found in file", http.StatusUnprocessableEntity)
		return
	}

	model := r.FormValue("model")
	if model == "" {
		model = s.reviewer.DefaultModel()
	}
	md, err := s.reviewer.Review(r.Context(), text, model)
	switch {
	case errors.Is(err, llm.ErrModelNotFound):
		jsonError(w, "model not available: "+model, http.StatusBadRequest)
		return
	case errors.Is(err, feedback.ErrTooLong):
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	case llm.IsRetryable(err):
		jsonError(w, "model provider is busy, try again", http.StatusServiceUnavailable)
		return
	case err != nil:
		s.log.Error("feedback failed", "model", model, "error", err)
		jsonError(w, "feedback failed", http.StatusBadGateway)
		return
	}

	html, err := feedback.RenderHTML(md)
	if err != nil {
		s.log.Warn("render feedback failed", "error", err)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"model":    model,
		"markdown": md,
		"html":     html,
	})
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	if s.reviewer == nil {
		jsonError(w, "feedback is not configured", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"models":  s.reviewer.ModelsOrDefault(r.Context()),
		"default": s.reviewer.DefaultModel(),
	})
}
