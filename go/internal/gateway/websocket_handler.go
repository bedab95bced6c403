package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/mcdev12/courtday/go/internal/models"
	"github.com/mcdev12/courtday/go/internal/session"
	"github.com/rs/zerolog/log"
)

// Engine defines what the gateway needs from the scheduling engine.
type Engine interface {
	Snapshot() *models.Session
	HandlePresenceToggle(ctx context.Context, playerID uuid.UUID) (*models.Session, error)
	HandleResultSubmission(ctx context.Context, ordinal int, winners []uuid.UUID) (*models.Session, error)
	Reset(ctx context.Context, reason string) (*models.Session, error)
}

// Client command types.
const (
	CommandToggleStatus = "toggle_status"
	CommandSubmitResult = "submit_game_result"
	CommandResetSession = "reset_session"
)

// Server message types.
const (
	MessageTypeStateUpdate = "state_update"
	MessageTypeError       = "error"
)

// ClientCommand is an inbound WebSocket frame.
type ClientCommand struct {
	Type     string   `json:"type"`
	PlayerID string   `json:"player_id,omitempty"`
	GameID   int      `json:"game_id,omitempty"`
	Winners  []string `json:"winners,omitempty"`
}

// ServerMessage is an outbound WebSocket frame.
type ServerMessage struct {
	Type    string          `json:"type"`
	Session *models.Session `json:"session,omitempty"`
	Message string          `json:"message,omitempty"`
}

// WebSocketHandler handles WebSocket upgrade requests and inbound commands.
type WebSocketHandler struct {
	hub    *Hub
	engine Engine
}

// NewWebSocketHandler creates a new WebSocket handler.
func NewWebSocketHandler(hub *Hub, engine Engine) *WebSocketHandler {
	return &WebSocketHandler{
		hub:    hub,
		engine: engine,
	}
}

// HandleSessionConnection upgrades a client and sends it the current state.
func (h *WebSocketHandler) HandleSessionConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := h.hub.UpgradeConnection(w, r, h.handleCommand)
	if err != nil {
		log.Error().Err(err).Msg("failed to upgrade WebSocket connection")
		http.Error(w, "failed to upgrade connection", http.StatusInternalServerError)
		return
	}

	h.hub.SendTo(conn, ServerMessage{
		Type:    MessageTypeStateUpdate,
		Session: h.engine.Snapshot(),
	})
}

// handleCommand dispatches one inbound client frame to the engine. Rejected
// events answer only the sender; accepted ones reach everybody through the
// engine's notifier.
func (h *WebSocketHandler) handleCommand(conn *Connection, data []byte) {
	var cmd ClientCommand
	if err := json.Unmarshal(data, &cmd); err != nil {
		h.sendError(conn, "malformed command")
		return
	}

	ctx := context.Background()
	var err error

	switch cmd.Type {
	case CommandToggleStatus:
		var playerID uuid.UUID
		playerID, err = uuid.Parse(cmd.PlayerID)
		if err != nil {
			h.sendError(conn, "invalid player id")
			return
		}
		_, err = h.engine.HandlePresenceToggle(ctx, playerID)

	case CommandSubmitResult:
		var winners []uuid.UUID
		winners, err = parseWinners(cmd.Winners)
		if err != nil {
			h.sendError(conn, "invalid winner ids")
			return
		}
		_, err = h.engine.HandleResultSubmission(ctx, cmd.GameID, winners)

	case CommandResetSession:
		_, err = h.engine.Reset(ctx, "Admin reset the session")

	default:
		h.sendError(conn, "unknown command: "+cmd.Type)
		return
	}

	if err != nil {
		if msg, rejected := rejectionMessage(err); rejected {
			h.sendError(conn, msg)
			return
		}
		// Mutation applied; only the durable write failed.
		log.Error().Err(err).Str("command", cmd.Type).Msg("persistence failure after applied event")
	}
}

func (h *WebSocketHandler) sendError(conn *Connection, msg string) {
	h.hub.SendTo(conn, ServerMessage{Type: MessageTypeError, Message: msg})
}

// HandleConnectionStats returns statistics about active connections.
func (h *WebSocketHandler) HandleConnectionStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"total_connections":` + strconv.Itoa(h.hub.ConnectionCount()) + `}`))
}

// RegisterRoutes registers WebSocket routes with an HTTP mux.
func (h *WebSocketHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws/session", h.HandleSessionConnection)
	mux.HandleFunc("/ws/stats", h.HandleConnectionStats)
}

// rejectionMessage maps engine rejections to user-facing text. Anything else
// is a persistence failure, not a rejection.
func rejectionMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, session.ErrUnknownPlayer):
		return "player is not on the roster", true
	case errors.Is(err, session.ErrUnknownSlot):
		return "no such game on the schedule", true
	case errors.Is(err, session.ErrSlotNotReady):
		return "game is not ready for a result", true
	case errors.Is(err, session.ErrAlreadyCompleted):
		return "result already recorded for this game", true
	case errors.Is(err, session.ErrInvalidWinners):
		return "winners must be two of the game's four players", true
	}
	return "", false
}

func parseWinners(raw []string) ([]uuid.UUID, error) {
	winners := make([]uuid.UUID, len(raw))
	for i, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("parse winner id %q: %w", s, err)
		}
		winners[i] = id
	}
	return winners, nil
}
