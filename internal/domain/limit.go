package domain

import "time"

const (
	MaxMonthlyLimit = 31
)

// MonthlyLimit is keyed by request type.
type MonthlyLimit struct {
	LimitType string    `gorm:"column:limit_type;type:varchar(20);primaryKey"`
	Value     int       `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (MonthlyLimit) TableName() string {
	return "monthly_limits"
}
