// Package main is the entry point for the FraudGuard scoring service.
// It wires the history store, scoring pipeline, alerting and assistant,
// then serves the API until interrupted.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fraudguard/fraudguard/internal/alert"
	"github.com/fraudguard/fraudguard/internal/assistant"
	"github.com/fraudguard/fraudguard/internal/config"
	"github.com/fraudguard/fraudguard/internal/database"
	"github.com/fraudguard/fraudguard/internal/history"
	"github.com/fraudguard/fraudguard/internal/scheduler"
	"github.com/fraudguard/fraudguard/internal/scoring"
	"github.com/fraudguard/fraudguard/internal/server"
	"github.com/fraudguard/fraudguard/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting FraudGuard")

	db, err := database.Open(filepath.Join(cfg.DataDir, "fraudguard.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open history database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	repo := history.NewRepository(db.Conn(), log)
	mailer := alert.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPSender, cfg.SMTPPass, cfg.AlertEmail, log)
	scoringSvc := scoring.NewService(repo, mailer, log)
	responder := assistant.NewResponder(repo, log)

	srv := server.New(server.Config{
		Log:       log,
		Port:      cfg.Port,
		DevMode:   cfg.DevMode,
		DataDir:   cfg.DataDir,
		Scoring:   scoringSvc,
		History:   repo,
		Assistant: responder,
	})

	// Nightly purge of entries past the retention window, when enabled.
	sched := scheduler.New(log)
	if cfg.RetentionDays > 0 {
		if err := sched.AddJob("0 3 * * *", scheduler.NewRetentionJob(repo, cfg.RetentionDays)); err != nil {
			log.Fatal().Err(err).Msg("Failed to register retention job")
		}
	}
	sched.Start()

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")
	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
