package events

import "time"

const (
	RequestStatusChangedTopic = "ems.request.status_changed.v1"
	RequestAggregate          = "request"
)

type RequestStatusChangedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id"`
	UserID      string    `json:"user_id"`
	RequestType string    `json:"request_type"`
	Date        string    `json:"date"`
	Status      string    `json:"status"`
	DecidedBy   string    `json:"decided_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
