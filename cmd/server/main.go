package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/rafaelminatto1/dudufisio-sub005/internal/app"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/config"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// config failed before the logger level is known; use a bare
		// logger so the reason still reaches stdout
		bootLog := logger.New("info")
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize app")
	}

	go func() {
		if err := application.Run(); err != nil {
			logFatalUnlessClosed(log, err)
		}
	}()

	log.Info().Str("port", cfg.AppPort).Msg("auth service started")

	<-ctx.Done() // wait for Ctrl+C

	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		10*time.Second,
	)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("graceful shutdown failed")
	}

	log.Info().Msg("auth service stopped cleanly")
}

func logFatalUnlessClosed(log zerolog.Logger, err error) {
	if errors.Is(err, http.ErrServerClosed) {
		return
	}
	log.Fatal().Err(err).Msg("http server failed")
}
