package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/resumeforge/internal/pipeline"
	"github.com/dgallion1/resumeforge/internal/storage"
)

// handleTailor queues a job that writes bullets for a new project, puts it
// in place of the first project and reviews the result.
func (s *Server) handleTailor(w http.ResponseWriter, r *http.Request) {
	if s.orchestrator == nil {
		jsonError(w, "tailoring is not configured", http.StatusServiceUnavailable)
		return
	}
	up, ok := s.readUpload(w, r, true)
	if !ok {
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		jsonError(w, "title is required", http.StatusBadRequest)
		return
	}

	job := pipeline.NewJob(pipeline.Request{
		Filename:    up.Filename,
		Title:       title,
		Description: r.FormValue("description"),
		GitHubURL:   r.FormValue("github_url"),
		Model:       r.FormValue("model"),
	}, up.Data)

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	s.log.Info("tailor job queued", "job_id", job.ID, "filename", up.Filename)
	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":   job.ID,
		"status":   pipeline.StatusQueued,
		"poll_url": fmt.Sprintf("/api/tailor/%s/status", job.ID),
	})
}

func (s *Server) lookupJob(w http.ResponseWriter, r *http.Request) *pipeline.Job {
	if s.orchestrator == nil {
		jsonError(w, "tailoring is not configured", http.StatusServiceUnavailable)
		return nil
	}
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
	}
	return job
}

func (s *Server) handleTailorStatus(w http.ResponseWriter, r *http.Request) {
	job := s.lookupJob(w, r)
	if job == nil {
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

// handleTailorResult returns the bullets, replaced block and feedback of a
// finished job. Unfinished jobs get 409.
func (s *Server) handleTailorResult(w http.ResponseWriter, r *http.Request) {
	job := s.lookupJob(w, r)
	if job == nil {
		return
	}
	snap := job.Snapshot()
	res := job.Result()

	switch {
	case !snap.Status.Done():
		writeJSON(w, http.StatusConflict, map[string]any{"error": "job not finished", "job": snap})
	case snap.Status == pipeline.StatusFailed || res == nil:
		writeJobFailure(w, snap)
	default:
		writeJSON(w, http.StatusOK, map[string]any{"job": snap, "result": res})
	}
}

// writeJobFailure reports a failed job: 422 with the user-facing message
// for resume structure problems, 500 otherwise.
func writeJobFailure(w http.ResponseWriter, snap pipeline.JobSnapshot) {
	if snap.Message != "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": "job failed", "message": snap.Message, "job": snap})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "job failed", "job": snap})
}

// handleTailorDocument streams the edited resume of a finished job.
func (s *Server) handleTailorDocument(w http.ResponseWriter, r *http.Request) {
	job := s.lookupJob(w, r)
	if job == nil {
		return
	}
	snap := job.Snapshot()
	res := job.Result()
	switch {
	case !snap.Status.Done():
		jsonError(w, "document not ready", http.StatusConflict)
		return
	case snap.Status == pipeline.StatusFailed || res == nil:
		writeJobFailure(w, snap)
		return
	}

	obj, err := s.orchestrator.Store().Get(r.Context(), res.DocumentKey)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		jsonError(w, "document expired", http.StatusGone)
		return
	case err != nil:
		s.log.Error("load document failed", "job_id", job.ID, "error", err)
		jsonError(w, "failed to load document", http.StatusInternalServerError)
		return
	}
	s.writeDocx(w, tailoredName(job.Filename), obj.Data)
}
