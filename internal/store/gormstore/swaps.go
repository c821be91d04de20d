package gormstore

import (
	"context"

	"github.com/Ashmit12092000/ems/internal/domain"
	"github.com/Ashmit12092000/ems/internal/store"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (s *Store) swapQuery(ctx context.Context) *gorm.DB {
	return s.conn(ctx).
		Model(&domain.ShiftSwap{}).
		Select("shift_swaps.*, ru.username AS requester_name, tu.username AS target_name").
		Joins("JOIN users ru ON ru.id = shift_swaps.requester_id").
		Joins("JOIN users tu ON tu.id = shift_swaps.target_id")
}

func (s *Store) CreateSwap(ctx context.Context, sw *domain.ShiftSwap) error {
	ensureID(&sw.ID)
	return store.Dup(s.conn(ctx).Create(sw).Error)
}

func (s *Store) FindSwapByID(ctx context.Context, id uuid.UUID) (*domain.ShiftSwap, error) {
	var sw domain.ShiftSwap
	if err := s.swapQuery(ctx).Where("shift_swaps.id = ?", id).Take(&sw).Error; err != nil {
		return nil, notFound(err)
	}
	return &sw, nil
}

func (s *Store) ListSwaps(ctx context.Context, f store.SwapFilter) ([]domain.ShiftSwap, error) {
	q := s.swapQuery(ctx).Order("shift_swaps.created_at DESC")
	if f.ParticipantID != nil {
		q = q.Where("(shift_swaps.requester_id = ? OR shift_swaps.target_id = ?)", *f.ParticipantID, *f.ParticipantID)
	}
	if f.RequesterID != nil {
		q = q.Where("shift_swaps.requester_id = ?", *f.RequesterID)
	}
	if f.TargetID != nil {
		q = q.Where("shift_swaps.target_id = ?", *f.TargetID)
	}
	if f.Status != "" {
		q = q.Where("shift_swaps.status = ?", f.Status)
	}

	var out []domain.ShiftSwap
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) UpdateSwapStatus(ctx context.Context, id uuid.UUID, expected, next string) error {
	res := s.conn(ctx).Model(&domain.ShiftSwap{}).
		Where("id = ? AND status = ?", id, expected).
		Update("status", next)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return s.staleOrMissing(ctx, &domain.ShiftSwap{}, "id = ?", id)
	}
	return nil
}
