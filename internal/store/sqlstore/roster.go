package sqlstore

import (
	"context"
	"time"

	"github.com/Ashmit12092000/ems/internal/domain"

	"github.com/google/uuid"
)

const rosterSelect = `
SELECT d.user_id, d.date, d.shift_type, u.username
FROM duty_roster d
JOIN users u ON u.id = d.user_id`

const rosterUpsert = `
INSERT INTO duty_roster (user_id, date, shift_type)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, date) DO UPDATE SET shift_type = EXCLUDED.shift_type
`

func scanRoster(row interface{ Scan(...any) error }) (*domain.RosterEntry, error) {
	var e domain.RosterEntry
	if err := row.Scan(&e.UserID, &e.Date, &e.ShiftType, &e.Username); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) listRoster(ctx context.Context, query string, args ...any) ([]domain.RosterEntry, error) {
	rows, err := s.q().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.RosterEntry, 0)
	for rows.Next() {
		e, err := scanRoster(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (s *Store) FindRosterEntry(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.RosterEntry, error) {
	e, err := scanRoster(s.q().QueryRowContext(ctx, rosterSelect+` WHERE d.user_id = $1 AND d.date = $2`, userID, date))
	if err != nil {
		return nil, noRows(err)
	}
	return e, nil
}

func (s *Store) ListRosterByDate(ctx context.Context, date time.Time) ([]domain.RosterEntry, error) {
	return s.listRoster(ctx, rosterSelect+` WHERE d.date = $1 ORDER BY u.username ASC`, date)
}

func (s *Store) ListRosterByRange(ctx context.Context, userID *uuid.UUID, from, to time.Time) ([]domain.RosterEntry, error) {
	var w where
	w.add("d.date >= ?", from)
	w.add("d.date <= ?", to)
	if userID != nil {
		w.add("d.user_id = ?", *userID)
	}
	return s.listRoster(ctx, rosterSelect+w.String()+` ORDER BY d.date ASC, u.username ASC`, w.args...)
}

func (s *Store) UpsertRosterEntry(ctx context.Context, e *domain.RosterEntry) error {
	_, err := s.q().ExecContext(ctx, rosterUpsert, e.UserID, e.Date, e.ShiftType)
	return err
}

func (s *Store) ReplaceRosterDay(ctx context.Context, date time.Time, entries []domain.RosterEntry) error {
	return s.inTx(ctx, func(st *Store) error {
		if _, err := st.q().ExecContext(ctx, `DELETE FROM duty_roster WHERE date = $1`, date); err != nil {
			return err
		}
		for _, e := range entries {
			if _, err := st.q().ExecContext(ctx, rosterUpsert, e.UserID, date, e.ShiftType); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) UpdateRosterShift(ctx context.Context, userID uuid.UUID, date time.Time, expectedShift, nextShift string) error {
	query := `
UPDATE duty_roster
SET shift_type = $4
WHERE user_id = $1 AND date = $2 AND shift_type = $3
`
	return s.guardedUpdate(ctx, query,
		[]any{userID, date, expectedShift, nextShift},
		`SELECT EXISTS (SELECT 1 FROM duty_roster WHERE user_id = $1 AND date = $2)`, userID, date,
	)
}
