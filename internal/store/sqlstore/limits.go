package sqlstore

import (
	"context"

	"github.com/Ashmit12092000/ems/internal/domain"
)

func (s *Store) FindMonthlyLimit(ctx context.Context, limitType string) (*domain.MonthlyLimit, error) {
	var l domain.MonthlyLimit
	err := s.q().QueryRowContext(ctx,
		`SELECT limit_type, value, updated_at FROM monthly_limits WHERE limit_type = $1`, limitType,
	).Scan(&l.LimitType, &l.Value, &l.UpdatedAt)
	if err != nil {
		return nil, noRows(err)
	}
	return &l, nil
}

func (s *Store) ListMonthlyLimits(ctx context.Context) ([]domain.MonthlyLimit, error) {
	rows, err := s.q().QueryContext(ctx, `SELECT limit_type, value, updated_at FROM monthly_limits ORDER BY limit_type ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.MonthlyLimit, 0)
	for rows.Next() {
		var l domain.MonthlyLimit
		if err := rows.Scan(&l.LimitType, &l.Value, &l.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Store) UpsertMonthlyLimit(ctx context.Context, l *domain.MonthlyLimit) error {
	query := `
INSERT INTO monthly_limits (limit_type, value, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (limit_type) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
RETURNING updated_at
`
	return s.q().QueryRowContext(ctx, query, l.LimitType, l.Value).Scan(&l.UpdatedAt)
}
