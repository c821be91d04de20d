package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	SwapStatusPendingTarget    = "pending_target_approval"
	SwapStatusRejectedByTarget = "rejected_by_target"
	SwapStatusPendingHOD       = "pending_hod_approval"
	SwapStatusRejectedBySystem = "rejected_by_system"
	SwapStatusApproved         = "approved"
	SwapStatusRejectedByHOD    = "rejected_by_hod"
)

func ValidSwapStatus(s string) bool {
	switch s {
	case SwapStatusPendingTarget, SwapStatusRejectedByTarget, SwapStatusPendingHOD,
		SwapStatusRejectedBySystem, SwapStatusApproved, SwapStatusRejectedByHOD:
		return true
	}
	return false
}

type ShiftSwap struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	RequesterID    uuid.UUID `gorm:"column:requester_id;type:uuid;not null;index"`
	TargetID       uuid.UUID `gorm:"column:target_id;type:uuid;not null;index"`
	Date           time.Time `gorm:"column:date;type:date;not null"`
	RequesterShift string    `gorm:"column:requester_shift;type:varchar(20);not null"`
	TargetShift    string    `gorm:"column:target_shift;type:varchar(20);not null"`
	Reason         string    `gorm:"column:reason;type:text;not null;default:''"`
	Status         string    `gorm:"column:status;type:varchar(40);not null;default:pending_target_approval"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`

	RequesterName string `gorm:"column:requester_name;->;-:migration"`
	TargetName    string `gorm:"column:target_name;->;-:migration"`
}

func (ShiftSwap) TableName() string {
	return "shift_swaps"
}
