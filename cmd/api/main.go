package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"dodo-storefront-demo/internal/client"
	"dodo-storefront-demo/internal/config"
	"dodo-storefront-demo/internal/server"
	"dodo-storefront-demo/internal/service"
	"dodo-storefront-demo/internal/store"
	"dodo-storefront-demo/internal/webhook"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log)

	// entitlements default to process memory; DATABASE_URL switches in the
	// sqlite-backed store
	var entitlements store.EntitlementStore
	if cfg.DatabaseURL != "" {
		db, err := client.InitSqliteClient(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("init entitlement database")
		}
		entitlements = store.NewGorm(db)
		logger.Info().Str("database", cfg.DatabaseURL).Msg("using sqlite entitlement store")
	} else {
		entitlements = store.NewMemory()
		logger.Info().Msg("using in-memory entitlement store, state is lost on restart")
	}

	dodoClient := client.NewDodoClient(&cfg.Dodo)
	storefrontService := service.NewStorefrontService(dodoClient, entitlements, &cfg.Dodo, logger)

	verifier, err := webhook.NewVerifier(cfg.Dodo.WebhookKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("init webhook verifier")
	}
	dispatcher := webhook.NewDispatcher(entitlements, logger)

	srv := server.NewServer(storefrontService, verifier, dispatcher, logger)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	logger.Info().Str("addr", serverAddr).Str("environment", cfg.Dodo.Environment).Msg("starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logger.Info().Msg("signal received, starting graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	}
}

func newLogger(logCfg config.Log) zerolog.Logger {
	level, err := zerolog.ParseLevel(logCfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if logCfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
