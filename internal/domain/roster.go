package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	ShiftMorning = "Morning"
	ShiftEvening = "Evening"
	ShiftNight   = "Night"
	ShiftOff     = "Off"
)

func ValidShift(s string) bool {
	switch s {
	case ShiftMorning, ShiftEvening, ShiftNight, ShiftOff:
		return true
	}
	return false
}

type RosterEntry struct {
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	Date      time.Time `gorm:"column:date;type:date;primaryKey"`
	ShiftType string    `gorm:"column:shift_type;type:varchar(20);not null"`

	Username string `gorm:"column:username;->;-:migration"`
}

func (RosterEntry) TableName() string {
	return "duty_roster"
}
