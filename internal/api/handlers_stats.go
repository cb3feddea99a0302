package api

import (
	"net/http"
)

func (s *Server) handleParseStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		jsonError(w, "parse stats unavailable", http.StatusServiceUnavailable)
		return
	}
	stored, err := s.store.Count(r.Context())
	if err != nil {
		jsonError(w, "failed to count briefs: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"stats":         s.stats.Snapshot(),
		"queue_depth":   s.orchestrator.QueueDepth(),
		"stored_briefs": stored,
	})
}
