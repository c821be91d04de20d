package sqlstore

import (
	"context"
	"time"

	"github.com/Ashmit12092000/ems/internal/domain"

	"github.com/google/uuid"
)

const attendanceSelect = `
SELECT a.user_id, a.date, a.status, a.updated_at, u.username
FROM attendance a
JOIN users u ON u.id = a.user_id`

func (s *Store) listAttendance(ctx context.Context, query string, args ...any) ([]domain.Attendance, error) {
	rows, err := s.q().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Attendance, 0)
	for rows.Next() {
		var a domain.Attendance
		if err := rows.Scan(&a.UserID, &a.Date, &a.Status, &a.UpdatedAt, &a.Username); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) UpsertAttendance(ctx context.Context, a *domain.Attendance) error {
	query := `
INSERT INTO attendance (user_id, date, status, updated_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (user_id, date) DO UPDATE SET status = EXCLUDED.status, updated_at = NOW()
RETURNING updated_at
`
	return s.q().QueryRowContext(ctx, query, a.UserID, a.Date, a.Status).Scan(&a.UpdatedAt)
}

func (s *Store) ListAttendanceByDate(ctx context.Context, date time.Time) ([]domain.Attendance, error) {
	return s.listAttendance(ctx, attendanceSelect+` WHERE a.date = $1 ORDER BY u.username ASC`, date)
}

func (s *Store) ListAttendanceByUser(ctx context.Context, userID uuid.UUID) ([]domain.Attendance, error) {
	return s.listAttendance(ctx, attendanceSelect+` WHERE a.user_id = $1 ORDER BY a.date DESC`, userID)
}
