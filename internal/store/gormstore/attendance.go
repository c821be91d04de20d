package gormstore

import (
	"context"
	"time"

	"github.com/Ashmit12092000/ems/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) attendanceQuery(ctx context.Context) *gorm.DB {
	return s.conn(ctx).
		Model(&domain.Attendance{}).
		Select("attendance.*, users.username AS username").
		Joins("JOIN users ON users.id = attendance.user_id")
}

func (s *Store) UpsertAttendance(ctx context.Context, a *domain.Attendance) error {
	return s.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(a).Error
}

func (s *Store) ListAttendanceByDate(ctx context.Context, date time.Time) ([]domain.Attendance, error) {
	var out []domain.Attendance
	err := s.attendanceQuery(ctx).
		Where("attendance.date = ?", date).
		Order("users.username ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) ListAttendanceByUser(ctx context.Context, userID uuid.UUID) ([]domain.Attendance, error) {
	var out []domain.Attendance
	err := s.attendanceQuery(ctx).
		Where("attendance.user_id = ?", userID).
		Order("attendance.date DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
