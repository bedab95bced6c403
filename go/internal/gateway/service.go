package gateway

import (
	"context"
	"net/http"

	"github.com/mcdev12/courtday/go/internal/models"
	"github.com/rs/zerolog/log"
)

// Service is the transport layer: one WebSocket hub pushing session
// snapshots plus the read-only REST endpoints.
type Service struct {
	hub          *Hub
	wsHandler    *WebSocketHandler
	stateHandler *StateHandler
}

// Config holds configuration for the gateway service.
type Config struct {
	ConnectionConfig ConnectionConfig
}

// DefaultConfig returns default configuration for the gateway.
func DefaultConfig() Config {
	return Config{
		ConnectionConfig: DefaultConnectionConfig(),
	}
}

// NewService creates a new gateway service.
func NewService(config Config, engine Engine, stats StatsProvider) *Service {
	hub := NewHub(config.ConnectionConfig)
	return &Service{
		hub:          hub,
		wsHandler:    NewWebSocketHandler(hub, engine),
		stateHandler: NewStateHandler(engine, stats),
	}
}

// Start runs the hub's broadcast loop until the context ends.
func (s *Service) Start(ctx context.Context) {
	s.hub.Start(ctx)
}

// NotifySession broadcasts a fresh session snapshot to every client. Wire
// this into the engine's notifier.
func (s *Service) NotifySession(sess *models.Session) {
	s.hub.Broadcast(ServerMessage{
		Type:    MessageTypeStateUpdate,
		Session: sess,
	})
}

// RegisterRoutes registers the WebSocket and REST routes.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	s.wsHandler.RegisterRoutes(mux)
	s.stateHandler.RegisterStateRoutes(mux)
	log.Info().Msg("gateway routes registered")
}
