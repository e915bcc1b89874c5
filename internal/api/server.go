package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/resumeforge/internal/config"
	"github.com/dgallion1/resumeforge/internal/feedback"
	"github.com/dgallion1/resumeforge/internal/llm"
	"github.com/dgallion1/resumeforge/internal/pipeline"
)

// LLM describes a model client whose latency stats are exposed.
type LLM struct {
	Provider string
	Model    string
	Stats    *llm.LLMStats
}

// Deps are the optional collaborators of the server. A nil Orchestrator
// disables tailoring and a nil Reviewer disables feedback.
type Deps struct {
	Orchestrator *pipeline.Orchestrator
	Reviewer     *feedback.Reviewer
	LLMs         []LLM
}

// Server is the HTTP API server for resumeforge.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	reviewer     *feedback.Reviewer
	llms         []LLM
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(deps Deps, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: deps.Orchestrator,
		reviewer:     deps.Reviewer,
		llms:         deps.LLMs,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(SentryMiddleware)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/resume/replace", s.handleReplace)
		r.Post("/api/resume/inspect", s.handleInspect)
		r.Post("/api/resume/text", s.handleText)

		r.Post("/api/feedback", s.handleFeedback)
		r.Get("/api/models", s.handleModels)

		r.Post("/api/tailor", s.handleTailor)
		r.Get("/api/tailor/{jobID}/status", s.handleTailorStatus)
		r.Get("/api/tailor/{jobID}/result", s.handleTailorResult)
		r.Get("/api/tailor/{jobID}/document", s.handleTailorDocument)

		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
