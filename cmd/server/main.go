package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"minitwit/internal/config"
	"minitwit/internal/db"
	"minitwit/internal/handlers"
	"minitwit/internal/router"
	"minitwit/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("load config")
	}

	logger := newLogger(cfg, os.Stdout)
	if cfg.GeneratedSecret() {
		logger.Warn().Msg("SESSION_SECRET not set, using a random per-process secret")
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	if err := run(cfg, logger, quit); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
	logger.Info().Msg("server stopped")
}

// run serves until quit fires or the listener fails. The store is closed
// before it returns in both cases.
func run(cfg *config.Config, logger zerolog.Logger, quit <-chan os.Signal) error {
	ctx := context.Background()
	store, err := db.Open(ctx, db.Options{
		URL:          cfg.DatabaseURL,
		MaxOpenConns: cfg.MaxOpenConns,
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("database init: %w", err)
	}
	defer store.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	engine, err := router.New(router.Options{
		Handler:       handlers.NewHandler(store, utils.GetCache(), cfg.PerPage, logger),
		Logger:        logger,
		SessionSecret: cfg.SessionSecret,
		SecureCookies: cfg.IsProduction(),
		Registry:      reg,
	})
	if err != nil {
		return fmt.Errorf("router init: %w", err)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("MiniTwit server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}

	logger.Info().Msg("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}
	return nil
}

func newLogger(cfg *config.Config, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true})
	} else {
		logger = zerolog.New(out)
	}
	return logger.Level(level).With().Timestamp().Logger()
}
