package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/Ashmit12092000/ems/internal/config"
	"github.com/Ashmit12092000/ems/internal/messaging/kafka"
	"github.com/Ashmit12092000/ems/internal/messaging/kafka/producer"
	"github.com/Ashmit12092000/ems/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker publishes outbox events to Kafka until SIGINT or SIGTERM.
func RunWorker(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.worker")

	if !cfg.Kafka.Enabled() {
		return fmt.Errorf("kafka.brokers is required for the worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStorageMigrated(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer st.close()

	writer, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Brokers, cfg.Database.ConnectRetries, logger)
	if err != nil {
		return err
	}
	defer writer.Close()

	outboxRepo := kafka.NewOutboxRepository(st.db)

	producer.ProcessOutboxEvents(ctx, outboxRepo, writer, logger, cfg.Kafka.PollInterval, nil)

	log.Info("worker shutting down")
	return nil
}
