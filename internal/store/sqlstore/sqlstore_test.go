package sqlstore_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/Ashmit12092000/ems/internal/domain"
	"github.com/Ashmit12092000/ems/internal/store"
	"github.com/Ashmit12092000/ems/internal/store/sqlstore"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLStore(t *testing.T) (*sqlstore.Store, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlstore.New(db), mock, db
}

var swapDate = time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)

func TestSQLStore_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		st, mock, _ := setupSQLStore(t)
		now := time.Now()

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (id, username, password_hash, role)`)).
			WithArgs(sqlmock.AnyArg(), "alice", "hash", domain.RoleEmployee).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

		u := &domain.User{Username: "alice", PasswordHash: "hash", Role: domain.RoleEmployee}
		require.NoError(t, st.CreateUser(ctx, u))
		assert.NotEqual(t, uuid.Nil, u.ID)
		assert.Equal(t, now, u.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative duplicate username", func(t *testing.T) {
		st, mock, _ := setupSQLStore(t)

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		err := st.CreateUser(ctx, &domain.User{Username: "alice"})
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})
}

func TestSQLStore_FindRequestByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		st, mock, _ := setupSQLStore(t)
		id, userID := uuid.New(), uuid.New()
		now := time.Now()

		mock.ExpectQuery(`FROM requests r\s+JOIN users u ON u.id = r.user_id WHERE r.id = \$1`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "user_id", "type", "date", "reason", "status",
				"start_time", "end_time", "current_shift", "requested_shift",
				"decided_by", "decided_at", "created_at", "updated_at", "username",
			}).AddRow(
				id.String(), userID.String(), domain.RequestTypePermission, swapDate, "dentist", domain.RequestStatusPending,
				"09:00", "11:00", nil, nil,
				nil, nil, now, now, "alice",
			))

		r, err := st.FindRequestByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, userID, r.UserID)
		require.NotNil(t, r.StartTime)
		assert.Equal(t, "09:00", *r.StartTime)
		assert.Nil(t, r.CurrentShift)
		assert.Nil(t, r.DecidedBy)
		assert.Equal(t, "alice", r.Username)
	})

	t.Run("negative not found", func(t *testing.T) {
		st, mock, _ := setupSQLStore(t)

		mock.ExpectQuery(`FROM requests r`).WillReturnError(sql.ErrNoRows)

		_, err := st.FindRequestByID(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestSQLStore_CountRequests(t *testing.T) {
	st, mock, _ := setupSQLStore(t)
	userID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT COUNT(*) FROM requests WHERE user_id = $1 AND type = $2 AND date >= $3 AND date < $4 AND status IN ($5, $6)`,
	)).
		WithArgs(userID, domain.RequestTypeLeave,
			time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
			domain.RequestStatusPending, domain.RequestStatusApproved).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := st.CountRequests(context.Background(), store.CountFilter{
		UserID:   userID,
		Type:     domain.RequestTypeLeave,
		Statuses: []string{domain.RequestStatusPending, domain.RequestStatusApproved},
		Month:    swapDate,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_ListSwaps_Participant(t *testing.T) {
	st, mock, _ := setupSQLStore(t)
	me := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE (s.requester_id = $1 OR s.target_id = $2) AND s.status = $3 ORDER BY s.created_at DESC`)).
		WithArgs(me, me, domain.SwapStatusPendingTarget).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "requester_id", "target_id", "date", "requester_shift", "target_shift",
			"reason", "status", "created_at", "updated_at", "requester_name", "target_name",
		}))

	out, err := st.ListSwaps(context.Background(), store.SwapFilter{ParticipantID: &me, Status: domain.SwapStatusPendingTarget})
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_UpdateSwapStatus(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		st, mock, _ := setupSQLStore(t)

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE shift_swaps`)).
			WithArgs(id, domain.SwapStatusPendingTarget, domain.SwapStatusPendingHOD).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, st.UpdateSwapStatus(ctx, id, domain.SwapStatusPendingTarget, domain.SwapStatusPendingHOD))
	})

	t.Run("negative stale", func(t *testing.T) {
		st, mock, _ := setupSQLStore(t)

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE shift_swaps`)).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM shift_swaps WHERE id = $1)`)).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		err := st.UpdateSwapStatus(ctx, id, domain.SwapStatusPendingTarget, domain.SwapStatusPendingHOD)
		assert.ErrorIs(t, err, store.ErrStaleStatus)
	})

	t.Run("negative missing", func(t *testing.T) {
		st, mock, _ := setupSQLStore(t)

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE shift_swaps`)).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS`)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		err := st.UpdateSwapStatus(ctx, id, domain.SwapStatusPendingTarget, domain.SwapStatusPendingHOD)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestSQLStore_ReplaceRosterDay(t *testing.T) {
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()
	entries := []domain.RosterEntry{
		{UserID: a, ShiftType: domain.ShiftMorning},
		{UserID: b, ShiftType: domain.ShiftOff},
	}

	t.Run("success own transaction", func(t *testing.T) {
		st, mock, _ := setupSQLStore(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM duty_roster WHERE date = $1`)).
			WithArgs(swapDate).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO duty_roster`)).
			WithArgs(a, swapDate, domain.ShiftMorning).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO duty_roster`)).
			WithArgs(b, swapDate, domain.ShiftOff).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, st.ReplaceRosterDay(ctx, swapDate, entries))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative insert fails rolls back", func(t *testing.T) {
		st, mock, _ := setupSQLStore(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM duty_roster`)).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO duty_roster`)).WillReturnError(errors.New("boom"))
		mock.ExpectRollback()

		assert.Error(t, st.ReplaceRosterDay(ctx, swapDate, entries))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success bound transaction", func(t *testing.T) {
		st, mock, db := setupSQLStore(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM duty_roster`)).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		tx, err := db.Begin()
		require.NoError(t, err)
		require.NoError(t, st.WithTx(tx).ReplaceRosterDay(ctx, swapDate, nil))
		require.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSQLStore_MarkNotificationRead(t *testing.T) {
	st, mock, _ := setupSQLStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := st.MarkNotificationRead(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSQLStore_UpsertMonthlyLimit(t *testing.T) {
	st, mock, _ := setupSQLStore(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO monthly_limits`)).
		WithArgs(domain.RequestTypeLeave, 3).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

	l := &domain.MonthlyLimit{LimitType: domain.RequestTypeLeave, Value: 3}
	require.NoError(t, st.UpsertMonthlyLimit(context.Background(), l))
	assert.Equal(t, now, l.UpdatedAt)
}
