package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/locauto/locauto-backend/internal/auth"
	"github.com/locauto/locauto-backend/internal/config"
	"github.com/locauto/locauto-backend/internal/database"
	"github.com/locauto/locauto-backend/internal/handlers"
	"github.com/locauto/locauto-backend/internal/logger"
	"github.com/locauto/locauto-backend/internal/notify"
	"github.com/locauto/locauto-backend/internal/router"
	"github.com/locauto/locauto-backend/internal/service"
	"github.com/locauto/locauto-backend/internal/storage"
	"github.com/locauto/locauto-backend/internal/websocket"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()
	repo := database.NewRepository(pool)

	registry, err := auth.LoadCompanyRegistry(cfg.CompanyRegistry)
	if err != nil {
		zlog.Fatal("Failed to load company registry", zap.Error(err))
	}

	store, err := storage.NewMinioStore(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	if err != nil {
		zlog.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	// Temporal backs the durable reservation expiry. The API still serves
	// without it; approvals then log a scheduling warning.
	var scheduler service.ExpiryScheduler
	temporalClient, err := client.Dial(client.Options{
		HostPort: cfg.TemporalHost,
		Logger:   logger.NewTemporalAdapter(zlog),
	})
	if err != nil {
		zlog.Warn("Temporal unavailable, reservation expiry disabled", zap.Error(err))
	} else {
		defer temporalClient.Close()
		scheduler = service.NewTemporalExpiryScheduler(temporalClient)
	}

	hub := websocket.NewHub(zlog)
	go hub.Run()

	notifier := notify.NewRelay(hub, repo, cfg.ExpoPushURL, zlog)

	rental := service.NewRentalService(repo, notifier, scheduler, zlog)
	accounts := service.NewAccountService(repo, registry, cfg.JWTSecret, time.Duration(cfg.TokenTTLHrs)*time.Hour)
	chat := service.NewChatService(repo, hub)

	h := handlers.NewHandler(rental, accounts, chat, notifier, store, hub, cfg.JWTSecret, zlog)
	r := router.SetupRouter(h, cfg.JWTSecret)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		zlog.Info("API server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zlog.Info("Server stopped")
}
