package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mismarcadores/scoreboard/internal/config"
	"github.com/mismarcadores/scoreboard/internal/events"
	"github.com/mismarcadores/scoreboard/internal/favorites"
	"github.com/mismarcadores/scoreboard/internal/matches"
	"github.com/mismarcadores/scoreboard/internal/sessions"
	"github.com/mismarcadores/scoreboard/internal/sports"
	"github.com/mismarcadores/scoreboard/internal/storage"
	"github.com/mismarcadores/scoreboard/internal/teams"
	"github.com/mismarcadores/scoreboard/internal/transport/httpapi"
	"github.com/mismarcadores/scoreboard/internal/users"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := storage.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := storage.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}
	log.Info().Str("database", cfg.Database.Database).Msg("connected to database")

	var publisher events.Publisher
	if cfg.NATS.URL != "" {
		nc, err := nats.Connect(cfg.NATS.URL)
		if err != nil {
			log.Fatal().Err(err).Str("url", cfg.NATS.URL).Msg("failed to connect to NATS")
		}
		defer nc.Close()
		publisher = events.NewNATSPublisher(nc)
		log.Info().Str("url", cfg.NATS.URL).Msg("connected to NATS")
	}

	server := setupServer(pool, publisher)

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.Handler(),
	}

	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// setupServer wires the dependency chain:
// pool → repositories → apps → HTTP adapter.
func setupServer(pool *pgxpool.Pool, publisher events.Publisher) *httpapi.Server {
	clock := clockwork.NewRealClock()

	sportsApp := sports.NewApp(sports.NewRepository(pool))
	teamsApp := teams.NewApp(teams.NewRepository(pool), sportsApp)
	usersApp := users.NewApp(users.NewRepository(pool))
	sessionsApp := sessions.NewApp(sessions.NewRepository(pool), usersApp, clock)
	matchesApp := matches.NewApp(matches.NewRepository(pool), sportsApp, teamsApp, clock, publisher)
	favoritesApp := favorites.NewApp(favorites.NewRepository(pool), teamsApp)

	return httpapi.NewServer(matchesApp, sessionsApp, favoritesApp, teamsApp, sportsApp, usersApp)
}
