package bullets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Completer sends a single prompt to a chat model.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Limits bounds the number and length of generated bullets.
type Limits struct {
	Min      int
	Max      int
	MaxChars int
}

// DefaultLimits are the bullet limits used when none are configured.
var DefaultLimits = Limits{Min: 2, Max: 3, MaxChars: 160}

func (l Limits) withDefaults() Limits {
	if l.Min <= 0 {
		l.Min = DefaultLimits.Min
	}
	if l.Max < l.Min {
		l.Max = max(DefaultLimits.Max, l.Min)
	}
	if l.MaxChars <= 1 {
		l.MaxChars = DefaultLimits.MaxChars
	}
	return l
}

// genericBullets are used when the model reply yields too few usable lines.
var genericBullets = []string{
	"Built an end-to-end resume editing workflow, emphasizing reliability, formatting accuracy, and measurable output quality.",
	"Implemented LLM-driven bullet generation with structured outputs and validation to reduce formatting errors and hallucinated claims.",
}

// Request describes the project to write bullets for.
type Request struct {
	Subject     string
	Description string
	GitHubURL   string
}

// Result holds generated bullets plus the model's caveats. Fallback is set
// when the reply did not match the JSON schema.
type Result struct {
	Bullets              []string `json:"bullets"`
	Assumptions          []string `json:"assumptions"`
	MissingInfoQuestions []string `json:"missing_info_questions"`
	Fallback             bool     `json:"fallback"`
}

// Generator produces resume bullets with a chat model.
type Generator struct {
	llm    Completer
	limits Limits
	log    *slog.Logger
}

func NewGenerator(llm Completer, limits Limits, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.Default()
	}
	return &Generator{llm: llm, limits: limits.withDefaults(), log: log}
}

// Limits returns the effective bullet limits.
func (g *Generator) Limits() Limits {
	return g.limits
}

// Generate asks the model for bullets. Transport errors are returned as is;
// malformed replies fall back to the reply's lines or to generic bullets.
func (g *Generator) Generate(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.Subject) == "" {
		return Result{}, errors.New("project title is required")
	}

	raw, err := g.llm.Complete(ctx, BuildPrompt(req.Subject, req.Description, req.GitHubURL))
	if err != nil {
		return Result{}, fmt.Errorf("generate bullets: %w", err)
	}

	res, err := g.parse(raw)
	if err == nil {
		return res, nil
	}
	if !errors.Is(err, ErrSchema) {
		return Result{}, err
	}

	g.log.Warn("bullet reply did not match schema, using fallback", "error", err)
	return g.fallback(raw), nil
}

func (g *Generator) parse(raw string) (Result, error) {
	decoded, err := Decode(raw)
	if err != nil {
		return Result{}, err
	}
	payload, err := ValidatePayload(decoded, g.limits.Min, g.limits.Max)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Bullets:              Normalize(payload.Bullets, g.limits.MaxChars, g.limits.Max),
		Assumptions:          payload.Assumptions,
		MissingInfoQuestions: payload.MissingInfoQuestions,
	}, nil
}

func (g *Generator) fallback(raw string) Result {
	bullets := Normalize(filterAcceptable(Clean(raw, 0)), g.limits.MaxChars, g.limits.Max)
	if len(bullets) < g.limits.Min {
		bullets = genericBullets
		if len(bullets) > g.limits.Max {
			bullets = bullets[:g.limits.Max]
		}
	}
	return Result{
		Bullets:              append([]string(nil), bullets...),
		Assumptions:          []string{},
		MissingInfoQuestions: []string{},
		Fallback:             true,
	}
}
