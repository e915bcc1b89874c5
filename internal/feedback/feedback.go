// Package feedback asks Claude to review a resume and renders the review
// for web clients.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgallion1/resumeforge/internal/llm"
)

// SystemPrompt frames the reviewer persona.
const SystemPrompt = "You're a career coach reviewing resumes for clarity, impact, and relevance."

const promptTemplate = `Evaluate the following resume:

%s

Give me:
1. 3–5 specific improvement suggestions
2. Weak or vague bullet points, if any
3. Suggestions for tailoring to roles like: data analyst, product manager, ML engineer.
Return your response in a clear bullet list.
`

// BuildPrompt renders the review request for resumeText.
func BuildPrompt(resumeText string) string {
	return fmt.Sprintf(promptTemplate, resumeText)
}

// Messenger is the subset of the Claude client the reviewer needs.
type Messenger interface {
	Message(ctx context.Context, req llm.MessageRequest) (string, error)
	ListModels(ctx context.Context) ([]string, error)
	Model() string
}

// ErrTooLong means the resume text exceeds Options.MaxInputTokens.
var ErrTooLong = errors.New("resume text is too long to review")

// Options tunes the review call. MaxInputTokens of 0 means no limit.
type Options struct {
	Temperature    float64
	MaxTokens      int
	MaxInputTokens int
}

// Reviewer produces resume feedback.
type Reviewer struct {
	claude Messenger
	opts   Options
	log    *slog.Logger
}

func NewReviewer(claude Messenger, opts Options, log *slog.Logger) *Reviewer {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 1000
	}
	if log == nil {
		log = slog.Default()
	}
	return &Reviewer{claude: claude, opts: opts, log: log}
}

// Review returns markdown feedback for resumeText. An empty model uses the
// client's default. llm.ErrModelNotFound is returned when the key cannot
// use the model.
func (r *Reviewer) Review(ctx context.Context, resumeText, model string) (string, error) {
	if strings.TrimSpace(resumeText) == "" {
		return "", errors.New("resume text is empty")
	}
	if n := llm.EstimateTokens(resumeText); r.opts.MaxInputTokens > 0 && n > r.opts.MaxInputTokens {
		return "", fmt.Errorf("%w: about %d tokens, limit %d", ErrTooLong, n, r.opts.MaxInputTokens)
	}
	if model == "" {
		model = r.claude.Model()
	}
	text, err := r.claude.Message(ctx, llm.MessageRequest{
		Model:       model,
		System:      SystemPrompt,
		Prompt:      BuildPrompt(resumeText),
		MaxTokens:   r.opts.MaxTokens,
		Temperature: r.opts.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("review resume: %w", err)
	}
	r.log.Debug("feedback generated", "model", model, "chars", len(text))
	return text, nil
}

// Models lists the models available to the key. Callers fall back to
// DefaultModel when this fails.
func (r *Reviewer) Models(ctx context.Context) ([]string, error) {
	ids, err := r.claude.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, errors.New("no models available")
	}
	return ids, nil
}

// DefaultModel is the configured model.
func (r *Reviewer) DefaultModel() string {
	return r.claude.Model()
}

// ModelsOrDefault lists the available models, or only the configured
// default when listing fails.
func (r *Reviewer) ModelsOrDefault(ctx context.Context) []string {
	ids, err := r.Models(ctx)
	if err != nil {
		r.log.Warn("list models failed, using default", "error", err)
		return []string{r.DefaultModel()}
	}
	return ids
}
