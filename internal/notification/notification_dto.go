package notification

import (
	"time"

	"github.com/Ashmit12092000/ems/internal/domain"

	"github.com/google/uuid"
)

// Notice is a notification a workflow wants delivered once its
// transaction has committed.
type Notice struct {
	UserID  uuid.UUID
	Message string
}

type NotificationResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

func mapToResponse(n domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID.String(),
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
