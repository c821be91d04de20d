package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	RequestTypeLeave      = "leave"
	RequestTypePermission = "permission"
	RequestTypeShift      = "shift"
)

const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

func ValidRequestType(t string) bool {
	switch t {
	case RequestTypeLeave, RequestTypePermission, RequestTypeShift:
		return true
	}
	return false
}

func ValidRequestStatus(s string) bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected:
		return true
	}
	return false
}

// Request is a single-day leave, permission or shift-change request.
// StartTime/EndTime are set for permission, CurrentShift/RequestedShift
// for shift. Username is filled by list queries that join users.
type Request struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID         uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index:idx_requests_user_date"`
	Type           string     `gorm:"column:type;type:varchar(20);not null"`
	Date           time.Time  `gorm:"column:date;type:date;not null;index:idx_requests_user_date"`
	Reason         string     `gorm:"column:reason;type:text;not null"`
	Status         string     `gorm:"column:status;type:varchar(20);not null;default:pending"`
	StartTime      *string    `gorm:"column:start_time;type:varchar(5)"`
	EndTime        *string    `gorm:"column:end_time;type:varchar(5)"`
	CurrentShift   *string    `gorm:"column:current_shift;type:varchar(20)"`
	RequestedShift *string    `gorm:"column:requested_shift;type:varchar(20)"`
	DecidedBy      *uuid.UUID `gorm:"column:decided_by;type:uuid"`
	DecidedAt      *time.Time `gorm:"column:decided_at"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	Username string `gorm:"column:username;->;-:migration"`
}

func (Request) TableName() string {
	return "requests"
}
