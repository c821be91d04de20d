package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleEmployee = "Employee"
	RoleHOD      = "HOD"
)

func ValidRole(role string) bool {
	return role == RoleEmployee || role == RoleHOD
}

type User struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"column:username;type:varchar(100);not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;type:text;not null"`
	Role         string    `gorm:"column:role;type:varchar(20);not null;default:Employee"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
