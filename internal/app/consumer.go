package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/Ashmit12092000/ems/internal/attendance"
	"github.com/Ashmit12092000/ems/internal/config"
	"github.com/Ashmit12092000/ems/internal/events"
	"github.com/Ashmit12092000/ems/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer turns approved leave events into attendance rows until
// SIGINT or SIGTERM.
func RunConsumer(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	if !cfg.Kafka.Enabled() {
		return fmt.Errorf("kafka.brokers is required for the consumer")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStorageMigrated(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer st.close()

	attendanceService := attendance.NewService(st.store, logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        cfg.Kafka.Brokers,
		Topic:          events.RequestStatusChangedTopic,
		GroupID:        cfg.Kafka.GroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	consumer.ConsumeRequestStatusChanged(ctx, reader, attendanceService, logger)

	log.Info("consumer shutting down")
	return nil
}
