package gateway

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mcdev12/courtday/go/internal/models"
	"github.com/rs/zerolog/log"
)

// historyLimit caps the audit rows returned by /api/history.
const historyLimit = 100

// StatsProvider defines what the REST surface needs from the roster store.
type StatsProvider interface {
	History(ctx context.Context, limit int) ([]models.AuditEntry, error)
	Stats(ctx context.Context) (*models.StatsResponse, error)
}

// StateHandler serves the read-only REST endpoints.
type StateHandler struct {
	engine Engine
	stats  StatsProvider
}

// NewStateHandler creates a new state handler.
func NewStateHandler(engine Engine, stats StatsProvider) *StateHandler {
	return &StateHandler{
		engine: engine,
		stats:  stats,
	}
}

// HandleGetState handles GET /api/state.
func (h *StateHandler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, h.engine.Snapshot())
}

// HandleGetHistory handles GET /api/history.
func (h *StateHandler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	logs, err := h.stats.History(r.Context(), historyLimit)
	if err != nil {
		log.Error().Err(err).Msg("failed to load history")
		http.Error(w, "Failed to load history", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"logs": logs})
}

// HandleGetStats handles GET /api/stats.
func (h *StateHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stats, err := h.stats.Stats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load stats")
		http.Error(w, "Failed to load stats", http.StatusInternalServerError)
		return
	}

	writeJSON(w, stats)
}

// RegisterStateRoutes registers the REST routes.
func (h *StateHandler) RegisterStateRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/state", h.HandleGetState)
	mux.HandleFunc("/api/history", h.HandleGetHistory)
	mux.HandleFunc("/api/stats", h.HandleGetStats)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
