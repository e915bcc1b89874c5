package api

import (
	"net/http"

	"github.com/dgallion1/resumeforge/internal/llm"
)

func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		Provider string            `json:"provider"`
		Model    string            `json:"model"`
		Stats    llm.StatsSnapshot `json:"stats"`
	}
	var out []entry
	for _, c := range s.llms {
		if c.Stats == nil {
			continue
		}
		out = append(out, entry{Provider: c.Provider, Model: c.Model, Stats: c.Stats.Snapshot()})
	}
	if len(out) == 0 {
		jsonError(w, "llm stats unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"llms": out})
}
