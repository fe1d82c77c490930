package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleExtractStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"window": s.cfg.StatsWindow.String(),
		"stats":  s.runner.Stats.Snapshot(),
	})
}
