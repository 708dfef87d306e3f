package main

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/adapters/event"
	"github.com/khoahotran/portfolio/adapters/persistence"
	"github.com/khoahotran/portfolio/internal/application/usecase/history"
	"github.com/khoahotran/portfolio/internal/config"
	domainEvent "github.com/khoahotran/portfolio/internal/domain/event"
	"github.com/khoahotran/portfolio/pkg/logger"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Starting portfolio history worker...")

	if len(cfg.Kafka.Brokers) == 0 {
		appLogger.Fatal("KAFKA_BROKERS is required for the worker", nil)
	}

	// Database
	if err := persistence.RunMigrations(cfg.DB.Migrations, cfg.DB.DSN, appLogger); err != nil {
		appLogger.Fatal("Cannot run migrations", err)
	}
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Postgres", err)
	}
	defer dbPool.Close()

	// Worker Use Case
	recordUC := history.NewRecordEventUseCase(persistence.NewPostgresEventRepo(dbPool, appLogger))

	// Kafka Consumer
	consumer := event.NewKafkaConsumer(cfg, appLogger.Named("consumer"))
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = consumer.Run(ctx, func(ctx context.Context, e domainEvent.ContentEvent) error {
		appLogger.Info("Recording content event",
			zap.String("event_id", e.ID.String()),
			zap.String("type", string(e.Type)),
		)
		return recordUC.Execute(ctx, e)
	})
	if err != nil {
		appLogger.Error("Worker stopped with error", err)
	}
	appLogger.Info("Worker stopped")
}
