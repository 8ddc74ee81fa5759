package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	router "github.com/dkeye/Party/internal/adapters/http"
	wssignal "github.com/dkeye/Party/internal/adapters/signal"
	"github.com/dkeye/Party/internal/app"
	"github.com/dkeye/Party/internal/app/orch"
	"github.com/dkeye/Party/internal/config"
	"github.com/dkeye/Party/internal/core"
	"github.com/dkeye/Party/internal/games/turns"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Err(err).Str("level", cfg.LogLevel).Msg("unknown log level, keeping info")
	}

	policy, err := app.PolicyByName(cfg.Backpressure)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	reg := app.NewRegistry()
	hub := app.NewHub(reg, policy)
	games := map[string]app.Factory{
		turns.Name: func(ctx context.Context, t core.Transport, exec func(func())) core.Room {
			return turns.New(ctx, t, exec, cfg.Tick)
		},
	}
	o := &orch.Orchestrator{
		Registry: reg,
		Rooms:    app.NewRoomManager(ctx, hub, cfg.MaxFailedChecks, games),
	}
	ctl := wssignal.NewSignalWSController(o, wssignal.NewRateLimiter(cfg.RateLimit, cfg.RateBurst), wssignal.Options{
		ReadLimit:   cfg.ReadLimit,
		PingPeriod:  cfg.PingPeriod,
		SendBuffer:  cfg.SendBuffer,
		DefaultGame: turns.Name,
	})

	r := router.SetupRouter(ctx, cfg, ctl, turns.Name)
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("Party server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return o.RunSweeper(gctx, cfg.CheckInterval)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("forced shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
	log.Info().Msg("Server exited gracefully")
}
