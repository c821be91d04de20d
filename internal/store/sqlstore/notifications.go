package sqlstore

import (
	"context"

	"github.com/Ashmit12092000/ems/internal/domain"
	"github.com/Ashmit12092000/ems/internal/store"

	"github.com/google/uuid"
)

func (s *Store) InsertNotification(ctx context.Context, n *domain.Notification) error {
	ensureID(&n.ID)
	query := `
INSERT INTO notifications (id, user_id, message)
VALUES ($1, $2, $3)
RETURNING is_read, created_at
`
	return s.q().QueryRowContext(ctx, query, n.ID, n.UserID, n.Message).Scan(&n.IsRead, &n.CreatedAt)
}

func (s *Store) ListNotifications(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	rows, err := s.q().QueryContext(ctx, `
SELECT id, user_id, message, is_read, created_at
FROM notifications
WHERE user_id = $1
ORDER BY created_at DESC
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Notification, 0)
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) MarkNotificationRead(ctx context.Context, id, userID uuid.UUID) error {
	res, err := s.q().ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	res, err := s.q().ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := s.q().QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`, userID).Scan(&n)
	return n, err
}
