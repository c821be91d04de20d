package gormstore

import (
	"context"

	"github.com/Ashmit12092000/ems/internal/domain"

	"gorm.io/gorm/clause"
)

func (s *Store) FindMonthlyLimit(ctx context.Context, limitType string) (*domain.MonthlyLimit, error) {
	var l domain.MonthlyLimit
	if err := s.conn(ctx).Where("limit_type = ?", limitType).Take(&l).Error; err != nil {
		return nil, notFound(err)
	}
	return &l, nil
}

func (s *Store) ListMonthlyLimits(ctx context.Context) ([]domain.MonthlyLimit, error) {
	var out []domain.MonthlyLimit
	if err := s.conn(ctx).Order("limit_type ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) UpsertMonthlyLimit(ctx context.Context, l *domain.MonthlyLimit) error {
	return s.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "limit_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(l).Error
}
