package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/Ashmit12092000/ems/internal/domain"
	"github.com/Ashmit12092000/ems/internal/store"

	"github.com/google/uuid"
)

const requestSelect = `
SELECT
	r.id, r.user_id, r.type, r.date, r.reason, r.status,
	r.start_time, r.end_time, r.current_shift, r.requested_shift,
	r.decided_by, r.decided_at, r.created_at, r.updated_at,
	u.username
FROM requests r
JOIN users u ON u.id = r.user_id`

func scanRequest(row interface{ Scan(...any) error }) (*domain.Request, error) {
	var (
		r                                 domain.Request
		startTime, endTime, cur, reqShift sql.NullString
		decidedBy                         uuid.NullUUID
		decidedAt                         sql.NullTime
	)
	err := row.Scan(
		&r.ID, &r.UserID, &r.Type, &r.Date, &r.Reason, &r.Status,
		&startTime, &endTime, &cur, &reqShift,
		&decidedBy, &decidedAt, &r.CreatedAt, &r.UpdatedAt,
		&r.Username,
	)
	if err != nil {
		return nil, err
	}

	r.StartTime = nullString(startTime)
	r.EndTime = nullString(endTime)
	r.CurrentShift = nullString(cur)
	r.RequestedShift = nullString(reqShift)
	r.DecidedBy = nullUUID(decidedBy)
	if decidedAt.Valid {
		t := decidedAt.Time
		r.DecidedAt = &t
	}
	return &r, nil
}

func (s *Store) CreateRequest(ctx context.Context, r *domain.Request) error {
	ensureID(&r.ID)
	if r.Status == "" {
		r.Status = domain.RequestStatusPending
	}

	query := `
INSERT INTO requests (
	id, user_id, type, date, reason, status,
	start_time, end_time, current_shift, requested_shift
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING created_at, updated_at
`
	err := s.q().QueryRowContext(ctx, query,
		r.ID, r.UserID, r.Type, r.Date, r.Reason, r.Status,
		r.StartTime, r.EndTime, r.CurrentShift, r.RequestedShift,
	).Scan(&r.CreatedAt, &r.UpdatedAt)
	return store.Dup(err)
}

func (s *Store) FindRequestByID(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
	r, err := scanRequest(s.q().QueryRowContext(ctx, requestSelect+` WHERE r.id = $1`, id))
	if err != nil {
		return nil, noRows(err)
	}
	return r, nil
}

func (s *Store) ListRequests(ctx context.Context, f store.RequestFilter) ([]domain.Request, error) {
	var w where
	if f.UserID != nil {
		w.add("r.user_id = ?", *f.UserID)
	}
	if f.Status != "" {
		w.add("r.status = ?", f.Status)
	}
	if f.Type != "" {
		w.add("r.type = ?", f.Type)
	}

	rows, err := s.q().QueryContext(ctx, requestSelect+w.String()+` ORDER BY r.date DESC, r.created_at DESC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Request, 0)
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func (s *Store) CountRequests(ctx context.Context, f store.CountFilter) (int64, error) {
	from, to := domain.MonthBounds(f.Month)

	var w where
	w.add("user_id = ?", f.UserID)
	w.add("type = ?", f.Type)
	w.add("date >= ?", from)
	w.add("date < ?", to)
	w.in("status", f.Statuses)

	var n int64
	err := s.q().QueryRowContext(ctx, `SELECT COUNT(*) FROM requests`+w.String(), w.args...).Scan(&n)
	return n, err
}

func (s *Store) UpdateRequestStatus(
	ctx context.Context,
	id uuid.UUID,
	expected, next string,
	decidedBy uuid.UUID,
	decidedAt time.Time,
) error {
	query := `
UPDATE requests
SET status = $3, decided_by = $4, decided_at = $5, updated_at = $5
WHERE id = $1 AND status = $2
`
	return s.guardedUpdate(ctx, query,
		[]any{id, expected, next, decidedBy, decidedAt},
		`SELECT EXISTS (SELECT 1 FROM requests WHERE id = $1)`, id,
	)
}
