package gormstore

import (
	"context"
	"time"

	"github.com/Ashmit12092000/ems/internal/domain"
	"github.com/Ashmit12092000/ems/internal/store"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (s *Store) requestQuery(ctx context.Context) *gorm.DB {
	return s.conn(ctx).
		Model(&domain.Request{}).
		Select("requests.*, users.username AS username").
		Joins("JOIN users ON users.id = requests.user_id")
}

func (s *Store) CreateRequest(ctx context.Context, r *domain.Request) error {
	ensureID(&r.ID)
	return store.Dup(s.conn(ctx).Create(r).Error)
}

func (s *Store) FindRequestByID(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
	var r domain.Request
	if err := s.requestQuery(ctx).Where("requests.id = ?", id).Take(&r).Error; err != nil {
		return nil, notFound(err)
	}
	return &r, nil
}

func (s *Store) ListRequests(ctx context.Context, f store.RequestFilter) ([]domain.Request, error) {
	q := s.requestQuery(ctx).Order("requests.date DESC, requests.created_at DESC")
	if f.UserID != nil {
		q = q.Where("requests.user_id = ?", *f.UserID)
	}
	if f.Status != "" {
		q = q.Where("requests.status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("requests.type = ?", f.Type)
	}

	var out []domain.Request
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) CountRequests(ctx context.Context, f store.CountFilter) (int64, error) {
	from, to := domain.MonthBounds(f.Month)
	q := s.conn(ctx).Model(&domain.Request{}).
		Where("user_id = ? AND type = ? AND date >= ? AND date < ?", f.UserID, f.Type, from, to)
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Store) UpdateRequestStatus(
	ctx context.Context,
	id uuid.UUID,
	expected, next string,
	decidedBy uuid.UUID,
	decidedAt time.Time,
) error {
	res := s.conn(ctx).Model(&domain.Request{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(map[string]any{
			"status":     next,
			"decided_by": decidedBy,
			"decided_at": decidedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return s.staleOrMissing(ctx, &domain.Request{}, "id = ?", id)
	}
	return nil
}
