package events

import "time"

const (
	SwapStatusChangedTopic = "ems.swap.status_changed.v1"
	SwapAggregate          = "shift_swap"
)

type SwapStatusChangedEvent struct {
	EventType   string    `json:"event_type"`
	SwapID      string    `json:"swap_id"`
	RequesterID string    `json:"requester_id"`
	TargetID    string    `json:"target_id"`
	Date        string    `json:"date"`
	FromStatus  string    `json:"from_status"`
	ToStatus    string    `json:"to_status"`
	ActorID     string    `json:"actor_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}
