package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"
	AttendanceLeave   = "Leave"
)

func ValidAttendanceStatus(s string) bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLeave:
		return true
	}
	return false
}

type Attendance struct {
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	Date      time.Time `gorm:"column:date;type:date;primaryKey"`
	Status    string    `gorm:"column:status;type:varchar(20);not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Username string `gorm:"column:username;->;-:migration"`
}

func (Attendance) TableName() string {
	return "attendance"
}
