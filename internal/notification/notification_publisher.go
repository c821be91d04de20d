package notification

import (
	"context"
	"encoding/json"

	"github.com/Ashmit12092000/ems/internal/events"

	"github.com/segmentio/kafka-go"
)

type EventPublisher interface {
	PublishNotificationCreated(ctx context.Context, event events.NotificationCreatedEvent) error
}

type noopEventPublisher struct{}

func (noopEventPublisher) PublishNotificationCreated(context.Context, events.NotificationCreatedEvent) error {
	return nil
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type kafkaEventPublisher struct {
	writer messageWriter
}

func NewKafkaEventPublisher(writer messageWriter) EventPublisher {
	if writer == nil {
		return noopEventPublisher{}
	}
	return &kafkaEventPublisher{writer: writer}
}

func (p *kafkaEventPublisher) PublishNotificationCreated(
	ctx context.Context,
	event events.NotificationCreatedEvent,
) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: events.NotificationCreatedTopic,
		Key:   []byte(event.UserID),
		Value: payload,
	})
}
