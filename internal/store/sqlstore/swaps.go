package sqlstore

import (
	"context"

	"github.com/Ashmit12092000/ems/internal/domain"
	"github.com/Ashmit12092000/ems/internal/store"

	"github.com/google/uuid"
)

const swapSelect = `
SELECT
	s.id, s.requester_id, s.target_id, s.date,
	s.requester_shift, s.target_shift, s.reason, s.status,
	s.created_at, s.updated_at,
	ru.username, tu.username
FROM shift_swaps s
JOIN users ru ON ru.id = s.requester_id
JOIN users tu ON tu.id = s.target_id`

func scanSwap(row interface{ Scan(...any) error }) (*domain.ShiftSwap, error) {
	var sw domain.ShiftSwap
	err := row.Scan(
		&sw.ID, &sw.RequesterID, &sw.TargetID, &sw.Date,
		&sw.RequesterShift, &sw.TargetShift, &sw.Reason, &sw.Status,
		&sw.CreatedAt, &sw.UpdatedAt,
		&sw.RequesterName, &sw.TargetName,
	)
	if err != nil {
		return nil, err
	}
	return &sw, nil
}

func (s *Store) CreateSwap(ctx context.Context, sw *domain.ShiftSwap) error {
	ensureID(&sw.ID)
	if sw.Status == "" {
		sw.Status = domain.SwapStatusPendingTarget
	}

	query := `
INSERT INTO shift_swaps (
	id, requester_id, target_id, date, requester_shift, target_shift, reason, status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING created_at, updated_at
`
	err := s.q().QueryRowContext(ctx, query,
		sw.ID, sw.RequesterID, sw.TargetID, sw.Date,
		sw.RequesterShift, sw.TargetShift, sw.Reason, sw.Status,
	).Scan(&sw.CreatedAt, &sw.UpdatedAt)
	return store.Dup(err)
}

func (s *Store) FindSwapByID(ctx context.Context, id uuid.UUID) (*domain.ShiftSwap, error) {
	sw, err := scanSwap(s.q().QueryRowContext(ctx, swapSelect+` WHERE s.id = $1`, id))
	if err != nil {
		return nil, noRows(err)
	}
	return sw, nil
}

func (s *Store) ListSwaps(ctx context.Context, f store.SwapFilter) ([]domain.ShiftSwap, error) {
	var w where
	if f.ParticipantID != nil {
		w.add("(s.requester_id = ? OR s.target_id = ?)", *f.ParticipantID, *f.ParticipantID)
	}
	if f.RequesterID != nil {
		w.add("s.requester_id = ?", *f.RequesterID)
	}
	if f.TargetID != nil {
		w.add("s.target_id = ?", *f.TargetID)
	}
	if f.Status != "" {
		w.add("s.status = ?", f.Status)
	}

	rows, err := s.q().QueryContext(ctx, swapSelect+w.String()+` ORDER BY s.created_at DESC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.ShiftSwap, 0)
	for rows.Next() {
		sw, err := scanSwap(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *sw)
	}
	return out, rows.Err()
}

func (s *Store) UpdateSwapStatus(ctx context.Context, id uuid.UUID, expected, next string) error {
	query := `
UPDATE shift_swaps
SET status = $3, updated_at = NOW()
WHERE id = $1 AND status = $2
`
	return s.guardedUpdate(ctx, query,
		[]any{id, expected, next},
		`SELECT EXISTS (SELECT 1 FROM shift_swaps WHERE id = $1)`, id,
	)
}
