package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/courtday/go/internal/gateway"
	"github.com/mcdev12/courtday/go/internal/roster"
	"github.com/mcdev12/courtday/go/internal/session"
)

type Services struct {
	Roster  *roster.App
	Engine  *session.App
	Gateway *gateway.Service
}

func setupServices(ctx context.Context, database *sql.DB, cfg *Config, publisher session.Publisher) (*Services, error) {
	rosterRepo := roster.NewRepository(database)
	if err := rosterRepo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	rosterApp := roster.NewApp(rosterRepo)

	engine, err := session.NewApp(cfg.Session, rosterApp, publisher, clockwork.NewRealClock())
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	gatewayService := gateway.NewService(gateway.DefaultConfig(), engine, rosterApp)

	// Every accepted mutation pushes a fresh snapshot to all clients.
	engine.SetNotifier(gatewayService.NotifySession)

	return &Services{
		Roster:  rosterApp,
		Engine:  engine,
		Gateway: gatewayService,
	}, nil
}
