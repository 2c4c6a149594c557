// Command autoprestige-stub is a local stand-in for the prediction backend.
package main

import (
	"context"
	"errors"
	"flag"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/autoprestige/autoprestige/internal/batch"
	"github.com/autoprestige/autoprestige/internal/config"
	"github.com/autoprestige/autoprestige/internal/database"
	"github.com/autoprestige/autoprestige/internal/database/repository"
	"github.com/autoprestige/autoprestige/internal/estimator"
	"github.com/autoprestige/autoprestige/internal/llm"
	"github.com/autoprestige/autoprestige/internal/logging"
	"github.com/autoprestige/autoprestige/internal/service"
	"github.com/autoprestige/autoprestige/internal/stub"
	"github.com/autoprestige/autoprestige/internal/testdata"
)

func main() {
	addr := flag.String("addr", "", "listen address (overrides stub.addr)")
	dbPath := flag.String("db", "", "sqlite path (overrides stub.db_path)")
	seed := flag.Bool("seed", false, "fill an empty history with sample valuations")
	reset := flag.Bool("reset", false, "wipe the valuation history and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	if *addr != "" {
		cfg.Stub.Addr = *addr
	}
	if *dbPath != "" {
		cfg.Stub.DBPath = *dbPath
	}

	// the stub owns no terminal UI, so it always logs to stderr
	logger := logging.New(logging.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty}, os.Stderr)
	logging.SetGlobalLogger(logger)

	db, err := database.Open(cfg.Stub.DBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("open db")
	}
	defer db.Close()
	if err := database.RunMigrations(db); err != nil {
		logger.Fatal().Err(err).Msg("migrate")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *reset {
		m := &service.MaintenanceService{History: repository.NewHistoryRepo(db)}
		if err := m.Reset(ctx); err != nil {
			logger.Fatal().Err(err).Msg("reset")
		}
		logger.Info().Str("db", cfg.Stub.DBPath).Msg("history wiped")
		return
	}

	est := estimator.New()
	if *seed {
		n, err := database.SeedDefaults(ctx, db, samples(est))
		if err != nil {
			logger.Fatal().Err(err).Msg("seed")
		}
		logger.Info().Int("rows", n).Msg("seeded history")
	}

	var responder llm.Responder = llm.NewHeuristic(est, cfg.UI.Language)
	if cfg.Stub.GeminiAPIKey != "" {
		g, err := llm.NewGemini(ctx, cfg.Stub.GeminiAPIKey, cfg.Stub.GeminiModel, cfg.UI.Language, responder, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("gemini")
		}
		defer g.Close()
		responder = g
		logger.Info().Str("model", cfg.Stub.GeminiModel).Msg("chat uses gemini")
	}

	var chatLimit *rate.Limiter
	if cfg.Stub.ChatRate > 0 {
		chatLimit = rate.NewLimiter(rate.Limit(cfg.Stub.ChatRate), max(cfg.Stub.ChatBurst, 1))
	}

	srv := stub.New(stub.Config{
		Addr:      cfg.Stub.Addr,
		Log:       logger,
		DB:        db,
		Pricer:    est,
		Responder: responder,
		ChatLimit: chatLimit,
		Lang:      cfg.UI.Language,
	})

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("serve")
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown")
		}
	}
}

// samples are the template vehicles plus a fixed random fleet, spaced an
// hour apart up to now.
func samples(est *estimator.Estimator) []repository.Valuation {
	now := time.Now()
	fleet := testdata.Vehicles(rand.New(rand.NewSource(42)), 18, now)
	return testdata.Valuations(est, append(batch.TemplateRows(), fleet...), now)
}
