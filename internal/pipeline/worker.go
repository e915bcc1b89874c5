package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/resumeforge/internal/bullets"
	"github.com/dgallion1/resumeforge/internal/document"
	"github.com/dgallion1/resumeforge/internal/editor"
	"github.com/dgallion1/resumeforge/internal/storage"
	"github.com/dgallion1/resumeforge/internal/telemetry"
)

// BulletGenerator writes bullets for a project.
type BulletGenerator interface {
	Generate(ctx context.Context, req bullets.Request) (bullets.Result, error)
}

// Reviewer writes feedback on plain resume text.
type Reviewer interface {
	Review(ctx context.Context, resumeText, model string) (string, error)
}

const (
	docxContentType     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	markdownContentType = "text/markdown; charset=utf-8"
)

// DocumentKey is the storage key of a job's edited resume.
func DocumentKey(jobID string) string {
	return "results/" + jobID + "/resume.docx"
}

// FeedbackKey is the storage key of a job's feedback markdown.
func FeedbackKey(jobID string) string {
	return "results/" + jobID + "/feedback.md"
}

// Worker processes a single tailor job.
type Worker struct {
	gen      BulletGenerator
	reviewer Reviewer
	store    storage.Store
	log      *slog.Logger
	marker   string
	backoff  func(int) time.Duration
}

func NewWorker(gen BulletGenerator, reviewer Reviewer, store storage.Store, log *slog.Logger, marker string) *Worker {
	return &Worker{
		gen:      gen,
		reviewer: reviewer,
		store:    store,
		log:      log,
		marker:   marker,
		backoff:  Backoff,
	}
}

// Process runs the tailor pipeline for a job: generate bullets, replace the
// first project, review the edited text and store the results. A failed
// review still stores the document and leaves the job partial.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)
	ctx, span := telemetry.StartSpan(ctx, "tailor", map[string]string{"job_id": job.ID})
	var spanErr error
	defer func() { span.End(spanErr) }()

	fail := func(phase string, err error) {
		spanErr = err
		log.Error("job failed", "phase", phase, "error", err)
		job.AddError(fmt.Sprintf("%s: %s", phase, err))
		if msg := editor.UserMessage(err); msg != "" {
			job.SetMessage(msg)
		} else {
			telemetry.CaptureError(ctx, err)
		}
		job.SetStatus(StatusFailed, phase)
	}

	// Phase 1: Generate bullets
	job.SetStatus(StatusGenerating, "generating")
	gen, err := withRetry(ctx, log, "generate bullets", w.backoff, func(ctx context.Context) (bullets.Result, error) {
		return w.gen.Generate(ctx, bullets.Request{
			Subject:     job.Title,
			Description: job.Description,
			GitHubURL:   job.GitHubURL,
		})
	})
	if err != nil {
		fail("generating", err)
		return
	}
	log.Info("bullets generated", "count", len(gen.Bullets), "fallback", gen.Fallback)

	// Phase 2: Replace the first project
	job.SetStatus(StatusEditing, "editing")
	edited, block, err := w.edit(job.FileData(), job.Title, gen.Bullets)
	if err != nil {
		fail("editing", err)
		return
	}
	log.Info("first project replaced", "start", block.Start, "end", block.End)

	result := Result{
		Bullets:              gen.Bullets,
		Assumptions:          gen.Assumptions,
		MissingInfoQuestions: gen.MissingInfoQuestions,
		FallbackBullets:      gen.Fallback,
		Block:                block,
		DocumentKey:          DocumentKey(job.ID),
	}

	// Phase 3: Review the edited resume as saved
	job.SetStatus(StatusReviewing, "reviewing")
	feedback, reviewErr := w.review(ctx, log, edited, job.Model)
	if reviewErr != nil {
		log.Warn("review failed, storing document only", "error", reviewErr)
		job.AddError(fmt.Sprintf("reviewing: %s", reviewErr))
		telemetry.CaptureError(ctx, reviewErr)
	} else {
		result.Feedback = feedback
		result.FeedbackModel = job.Model
		result.FeedbackKey = FeedbackKey(job.ID)
	}

	// Phase 4: Store
	job.SetStatus(StatusStoring, "storing")
	if err := w.store.Put(ctx, result.DocumentKey, edited, docxContentType); err != nil {
		fail("storing", fmt.Errorf("store document: %w", err))
		return
	}
	if result.FeedbackKey != "" {
		if err := w.store.Put(ctx, result.FeedbackKey, []byte(feedback), markdownContentType); err != nil {
			fail("storing", fmt.Errorf("store feedback: %w", err))
			return
		}
	}
	job.SetResult(result)
	job.releaseFileData()

	if reviewErr != nil {
		job.SetStatus(StatusPartial, "done")
		log.Info("job partial")
		return
	}
	job.SetStatus(StatusCompleted, "done")
	log.Info("job completed", "feedback_chars", len(feedback))
}

// edit loads the upload, replaces its first project and returns the saved
// bytes.
func (w *Worker) edit(data []byte, title string, lines []string) ([]byte, editor.Block, error) {
	doc, err := document.Load(bytes.NewReader(data))
	if err != nil {
		return nil, editor.Block{}, err
	}
	block, err := editor.ReplaceFirstProject(doc, title, lines, editor.WithMarker(w.marker))
	if err != nil {
		return nil, editor.Block{}, err
	}
	out, err := doc.Bytes()
	if err != nil {
		return nil, editor.Block{}, err
	}
	return out, block, nil
}

// review re-reads the saved document so feedback covers exactly what the
// user downloads.
func (w *Worker) review(ctx context.Context, log *slog.Logger, edited []byte, model string) (string, error) {
	doc, err := document.Load(bytes.NewReader(edited))
	if err != nil {
		return "", fmt.Errorf("reload edited resume: %w", err)
	}
	text := document.ExtractText(doc)
	return withRetry(ctx, log, "review", w.backoff, func(ctx context.Context) (string, error) {
		return w.reviewer.Review(ctx, text, model)
	})
}
