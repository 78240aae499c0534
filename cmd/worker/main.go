package main

import (
	"context"
	"log"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.uber.org/zap"

	"github.com/locauto/locauto-backend/internal/activities"
	"github.com/locauto/locauto-backend/internal/config"
	"github.com/locauto/locauto-backend/internal/database"
	"github.com/locauto/locauto-backend/internal/logger"
	"github.com/locauto/locauto-backend/internal/service"
	"github.com/locauto/locauto-backend/internal/workflows"
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

	zlog.Info("Connecting to Temporal", zap.String("host", cfg.TemporalHost))
	c, err := client.Dial(client.Options{
		HostPort: cfg.TemporalHost,
		Logger:   logger.NewTemporalAdapter(zlog),
	})
	if err != nil {
		zlog.Fatal("Failed to connect to Temporal", zap.Error(err))
	}
	defer c.Close()

	w := worker.New(c, service.TaskQueue, worker.Options{})

	w.RegisterWorkflow(workflows.ReservationExpiryWorkflow)

	acts := activities.NewActivities(repo)
	w.RegisterActivityWithOptions(acts.SettleExpiredReservation, activity.RegisterOptions{Name: "SettleExpiredReservation"})

	zlog.Info("Starting Temporal worker", zap.String("taskQueue", service.TaskQueue))
	if err := w.Run(worker.InterruptCh()); err != nil {
		zlog.Fatal("Worker failed", zap.Error(err))
	}
}
