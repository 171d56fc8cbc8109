package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avelar/wordflash/internal/api"
	"github.com/avelar/wordflash/internal/config"
	"github.com/avelar/wordflash/internal/db"
	"github.com/avelar/wordflash/internal/logger"
	"github.com/avelar/wordflash/internal/repository/sqlite"
	"github.com/avelar/wordflash/internal/services"
	"github.com/avelar/wordflash/internal/srs"
	"github.com/avelar/wordflash/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("WordFlash Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("new_cards_per_session=%d", cfg.NewCardsPerSession)
	log.Debug("mature_threshold_days=%d", cfg.MatureThresholdDays)
	log.Debug("min_ease_factor=%.2f", cfg.MinEaseFactor)
	log.Debug("starting_ease_factor=%.2f", cfg.StartingEaseFactor)
	log.Debug("session_card_limit=%d", cfg.SessionCardLimit)
	log.Debug("progress_worker_count=%d", cfg.ProgressWorkerCount)
	log.Debug("progress_queue_size=%d", cfg.ProgressQueueSize)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	params := srs.Params{
		MinEaseFactor:       cfg.MinEaseFactor,
		StartingEaseFactor:  cfg.StartingEaseFactor,
		MatureThresholdDays: cfg.MatureThresholdDays,
		NewCardsPerSession:  cfg.NewCardsPerSession,
	}

	// Initialize repositories
	cardRepo := sqlite.NewCardRepository(database.DB)
	wordRepo := sqlite.NewWordRepository(database.DB)
	learnerRepo := sqlite.NewLearnerRepository(database.DB)
	progressRepo := sqlite.NewProgressRepository(database.DB)

	// Initialize worker pool for background progress aggregation
	progressPool := worker.NewPool(cfg.ProgressWorkerCount, cfg.ProgressQueueSize)

	// Initialize services
	learnerService := services.NewLearnerService(learnerRepo)
	cardService := services.NewCardService(cardRepo, wordRepo, params)
	reviewService := services.NewReviewService(cardRepo, params)
	progressService := services.NewProgressService(cardRepo, progressRepo)

	srv := api.NewServer()
	srv.LearnerService = learnerService
	srv.CardService = cardService
	srv.ReviewService = reviewService
	srv.ProgressService = progressService
	srv.ProgressPool = progressPool
	srv.QueueLimit = cfg.SessionCardLimit

	ctx, cancel := context.WithCancel(context.Background())
	progressPool.Start(ctx)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Cancel worker context
	log.Debug("stopping worker pool")
	cancel()

	// Shutdown HTTP server
	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Wait for workers to finish
	progressPool.Stop()

	log.Info("===========================================")
	log.Info("WordFlash Server Stopped")
	log.Info("===========================================")
}
