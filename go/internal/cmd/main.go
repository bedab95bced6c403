package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mcdev12/courtday/go/internal/events"
	"github.com/mcdev12/courtday/go/internal/session"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	cfg, err := loadConfig(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	database, err := setupDatabase()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	publisher, closePublisher := setupPublisher()
	defer closePublisher()

	services, err := setupServices(ctx, database, cfg, publisher)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up services")
	}

	if err := bootstrap(ctx, services); err != nil {
		log.Fatal().Err(err).Msg("failed to bootstrap session")
	}

	go services.Gateway.Start(ctx)
	go services.Engine.RunRolloverLoop(ctx)

	server := setupServer(services)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}
}

// bootstrap makes sure the fixed roster exists, loads it into the engine, and
// records the session row for today's game log.
func bootstrap(ctx context.Context, services *Services) error {
	if err := services.Roster.SeedRoster(ctx); err != nil {
		return err
	}
	if err := services.Engine.Seed(ctx); err != nil {
		return err
	}
	snap := services.Engine.Snapshot()
	return services.Roster.RecordSession(ctx, snap.ID, snap.Date)
}

func setupPublisher() (session.Publisher, func()) {
	url := os.Getenv("NATS_URL")
	if url == "" {
		log.Info().Msg("NATS_URL not set, events will be logged only")
		return events.LogPublisher{}, func() {}
	}

	natsCfg := events.DefaultNATSConfig()
	natsCfg.URL = url
	publisher, err := events.NewNATSPublisher(natsCfg)
	if err != nil {
		log.Warn().Err(err).Msg("NATS unavailable, falling back to log publisher")
		return events.LogPublisher{}, func() {}
	}

	log.Info().Str("url", url).Msg("connected to NATS")
	return publisher, publisher.Close
}
