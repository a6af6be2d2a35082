package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Ayash-Bera/propsearch/internal/api"
	"github.com/Ayash-Bera/propsearch/internal/api/handlers"
	"github.com/Ayash-Bera/propsearch/internal/app"
	"github.com/Ayash-Bera/propsearch/internal/config"
	"github.com/Ayash-Bera/propsearch/internal/middleware"
	"github.com/Ayash-Bera/propsearch/pkg/utils"
)

const (
	sessionTTL      = 30 * time.Minute
	shutdownTimeout = 15 * time.Second
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := utils.InitLogger(cfg.Log.Level)
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := cfg.ValidateProvider(); err != nil {
		logger.WithError(err).Fatal("Provider configuration validation failed")
	}

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize services")
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rateLimiter := middleware.NewRateLimiter(cfg.Server.RateLimit)
	go rateLimiter.Cleanup(time.Minute, ctx.Done())

	sessions := handlers.NewSessionStore(sessionTTL, 0)
	go sweepSessions(ctx, sessions)

	go a.Health.PeriodicHealthCheck(ctx, time.Minute)

	router := api.NewRouter(api.Deps{
		Search:      handlers.NewSearchHandler(a.Assistant, a.Store, sessions, cfg.Server.RequestTimeout, logger),
		Health:      handlers.NewHealthHandler(a.Health),
		RateLimiter: rateLimiter,
		Logger:      logger,
	})
	server := api.NewServer(cfg.Server.Port, router, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.WithError(err).Error("HTTP server failed")
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		logger.WithError(err).Error("Graceful shutdown failed")
	}
	logger.Info("Server stopped")
}

func sweepSessions(ctx context.Context, sessions *handlers.SessionStore) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sessions.Sweep()
		}
	}
}
