package events

import "time"

const NotificationCreatedTopic = "ems.notification.created.v1"

type NotificationCreatedEvent struct {
	EventType      string    `json:"event_type"`
	NotificationID string    `json:"notification_id"`
	UserID         string    `json:"user_id"`
	Message        string    `json:"message"`
	OccurredAt     time.Time `json:"occurred_at"`
}
