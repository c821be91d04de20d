// Package storetest is the contract every store.Store adapter must pass.
// Adapters call Run from integration tests against a migrated database.
package storetest

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/Ashmit12092000/ems/internal/domain"
	"github.com/Ashmit12092000/ems/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const truncateAll = `
TRUNCATE notifications, attendance, monthly_limits, duty_roster, shift_swaps, requests, users CASCADE
`

var (
	day1 = time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)
	day2 = time.Date(2025, 9, 16, 0, 0, 0, 0, time.UTC)
)

type suite struct {
	db *sql.DB
	st store.Store
}

func Run(t *testing.T, db *sql.DB, st store.Store) {
	s := &suite{db: db, st: st}

	cases := []struct {
		name string
		fn   func(t *testing.T)
	}{
		{"users", s.users},
		{"requests", s.requests},
		{"request status guard", s.requestStatusGuard},
		{"swaps", s.swaps},
		{"roster", s.roster},
		{"swap approval rolls back on stale roster", s.swapRollback},
		{"limits", s.limits},
		{"attendance", s.attendance},
		{"notifications", s.notifications},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := db.ExecContext(context.Background(), truncateAll)
			require.NoError(t, err)
			tc.fn(t)
		})
	}
}

func (s *suite) user(t *testing.T, name, role string) domain.User {
	t.Helper()
	u := domain.User{Username: name, PasswordHash: "hash", Role: role}
	require.NoError(t, s.st.CreateUser(context.Background(), &u))
	return u
}

func (s *suite) users(t *testing.T) {
	ctx := context.Background()
	alice := s.user(t, "alice", domain.RoleEmployee)
	s.user(t, "hod", domain.RoleHOD)

	err := s.st.CreateUser(ctx, &domain.User{Username: "alice", PasswordHash: "x", Role: domain.RoleEmployee})
	assert.ErrorIs(t, err, store.ErrDuplicate)

	got, err := s.st.FindUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	_, err = s.st.FindUserByID(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)

	employees, err := s.st.ListUsers(ctx, domain.RoleEmployee)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "alice", employees[0].Username)

	all, err := s.st.ListUsers(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, s.st.UpdatePassword(ctx, alice.ID, "new-hash"))
	got, err = s.st.FindUserByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)
	assert.ErrorIs(t, s.st.UpdatePassword(ctx, uuid.New(), "x"), store.ErrNotFound)
}

func (s *suite) requests(t *testing.T) {
	ctx := context.Background()
	alice := s.user(t, "alice", domain.RoleEmployee)
	bob := s.user(t, "bob", domain.RoleEmployee)

	start, end := "09:00", "11:00"
	perm := domain.Request{UserID: alice.ID, Type: domain.RequestTypePermission, Date: day1, Reason: "dentist", StartTime: &start, EndTime: &end}
	require.NoError(t, s.st.CreateRequest(ctx, &perm))

	leaves := []domain.Request{
		{UserID: alice.ID, Type: domain.RequestTypeLeave, Date: day1, Reason: "a"},
		{UserID: alice.ID, Type: domain.RequestTypeLeave, Date: day2, Reason: "b"},
		{UserID: alice.ID, Type: domain.RequestTypeLeave, Date: day1.AddDate(0, 1, 0), Reason: "next month"},
		{UserID: bob.ID, Type: domain.RequestTypeLeave, Date: day1, Reason: "bob"},
	}
	for i := range leaves {
		require.NoError(t, s.st.CreateRequest(ctx, &leaves[i]))
	}

	got, err := s.st.FindRequestByID(ctx, perm.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusPending, got.Status)
	assert.Equal(t, "alice", got.Username)
	require.NotNil(t, got.StartTime)
	assert.Equal(t, "09:00", *got.StartTime)
	assert.Equal(t, domain.FormatDate(day1), domain.FormatDate(got.Date))

	mine, err := s.st.ListRequests(ctx, store.RequestFilter{UserID: &alice.ID, Type: domain.RequestTypeLeave})
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	require.NoError(t, s.st.UpdateRequestStatus(ctx, leaves[1].ID, domain.RequestStatusPending, domain.RequestStatusRejected, bob.ID, time.Now()))

	n, err := s.st.CountRequests(ctx, store.CountFilter{
		UserID:   alice.ID,
		Type:     domain.RequestTypeLeave,
		Statuses: []string{domain.RequestStatusPending, domain.RequestStatusApproved},
		Month:    day1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	rejected, err := s.st.ListRequests(ctx, store.RequestFilter{Status: domain.RequestStatusRejected})
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	require.NotNil(t, rejected[0].DecidedBy)
	assert.Equal(t, bob.ID, *rejected[0].DecidedBy)
}

func (s *suite) requestStatusGuard(t *testing.T) {
	ctx := context.Background()
	alice := s.user(t, "alice", domain.RoleEmployee)
	hod := s.user(t, "hod", domain.RoleHOD)

	r := domain.Request{UserID: alice.ID, Type: domain.RequestTypeLeave, Date: day1, Reason: "x"}
	require.NoError(t, s.st.CreateRequest(ctx, &r))

	require.NoError(t, s.st.UpdateRequestStatus(ctx, r.ID, domain.RequestStatusPending, domain.RequestStatusApproved, hod.ID, time.Now()))

	err := s.st.UpdateRequestStatus(ctx, r.ID, domain.RequestStatusPending, domain.RequestStatusRejected, hod.ID, time.Now())
	assert.ErrorIs(t, err, store.ErrStaleStatus)

	err = s.st.UpdateRequestStatus(ctx, uuid.New(), domain.RequestStatusPending, domain.RequestStatusRejected, hod.ID, time.Now())
	assert.ErrorIs(t, err, store.ErrNotFound)

	got, err := s.st.FindRequestByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusApproved, got.Status)
}

func (s *suite) swaps(t *testing.T) {
	ctx := context.Background()
	a := s.user(t, "a", domain.RoleEmployee)
	b := s.user(t, "b", domain.RoleEmployee)
	c := s.user(t, "c", domain.RoleEmployee)

	sw := domain.ShiftSwap{RequesterID: a.ID, TargetID: b.ID, Date: day1, RequesterShift: domain.ShiftMorning, TargetShift: domain.ShiftNight, Reason: "family"}
	require.NoError(t, s.st.CreateSwap(ctx, &sw))
	other := domain.ShiftSwap{RequesterID: c.ID, TargetID: a.ID, Date: day2, RequesterShift: domain.ShiftEvening, TargetShift: domain.ShiftMorning}
	require.NoError(t, s.st.CreateSwap(ctx, &other))

	got, err := s.st.FindSwapByID(ctx, sw.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SwapStatusPendingTarget, got.Status)
	assert.Equal(t, "a", got.RequesterName)
	assert.Equal(t, "b", got.TargetName)

	forA, err := s.st.ListSwaps(ctx, store.SwapFilter{ParticipantID: &a.ID})
	require.NoError(t, err)
	assert.Len(t, forA, 2)

	incomingB, err := s.st.ListSwaps(ctx, store.SwapFilter{TargetID: &b.ID, Status: domain.SwapStatusPendingTarget})
	require.NoError(t, err)
	assert.Len(t, incomingB, 1)

	require.NoError(t, s.st.UpdateSwapStatus(ctx, sw.ID, domain.SwapStatusPendingTarget, domain.SwapStatusPendingHOD))
	assert.ErrorIs(t, s.st.UpdateSwapStatus(ctx, sw.ID, domain.SwapStatusPendingTarget, domain.SwapStatusRejectedByTarget), store.ErrStaleStatus)
	assert.ErrorIs(t, s.st.UpdateSwapStatus(ctx, uuid.New(), domain.SwapStatusPendingTarget, domain.SwapStatusPendingHOD), store.ErrNotFound)
}

func (s *suite) roster(t *testing.T) {
	ctx := context.Background()
	a := s.user(t, "a", domain.RoleEmployee)
	b := s.user(t, "b", domain.RoleEmployee)

	require.NoError(t, s.st.UpsertRosterEntry(ctx, &domain.RosterEntry{UserID: a.ID, Date: day1, ShiftType: domain.ShiftMorning}))
	require.NoError(t, s.st.UpsertRosterEntry(ctx, &domain.RosterEntry{UserID: a.ID, Date: day1, ShiftType: domain.ShiftEvening}))
	require.NoError(t, s.st.UpsertRosterEntry(ctx, &domain.RosterEntry{UserID: a.ID, Date: day2, ShiftType: domain.ShiftNight}))

	e, err := s.st.FindRosterEntry(ctx, a.ID, day1)
	require.NoError(t, err)
	assert.Equal(t, domain.ShiftEvening, e.ShiftType)

	_, err = s.st.FindRosterEntry(ctx, b.ID, day1)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.st.ReplaceRosterDay(ctx, day1, []domain.RosterEntry{
		{UserID: b.ID, ShiftType: domain.ShiftNight},
	}))

	entries, err := s.st.ListRosterByDate(ctx, day1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, b.ID, entries[0].UserID)
	assert.Equal(t, "b", entries[0].Username)

	kept, err := s.st.FindRosterEntry(ctx, a.ID, day2)
	require.NoError(t, err)
	assert.Equal(t, domain.ShiftNight, kept.ShiftType)

	ranged, err := s.st.ListRosterByRange(ctx, &a.ID, day1, day2)
	require.NoError(t, err)
	assert.Len(t, ranged, 1)

	all, err := s.st.ListRosterByRange(ctx, nil, day1, day2)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assert.ErrorIs(t, s.st.UpdateRosterShift(ctx, b.ID, day1, domain.ShiftMorning, domain.ShiftOff), store.ErrStaleStatus)
	assert.ErrorIs(t, s.st.UpdateRosterShift(ctx, a.ID, day1, domain.ShiftMorning, domain.ShiftOff), store.ErrNotFound)
	require.NoError(t, s.st.UpdateRosterShift(ctx, b.ID, day1, domain.ShiftNight, domain.ShiftOff))
}

func (s *suite) swapRollback(t *testing.T) {
	ctx := context.Background()
	a := s.user(t, "a", domain.RoleEmployee)
	b := s.user(t, "b", domain.RoleEmployee)

	require.NoError(t, s.st.UpsertRosterEntry(ctx, &domain.RosterEntry{UserID: a.ID, Date: day1, ShiftType: domain.ShiftMorning}))
	require.NoError(t, s.st.UpsertRosterEntry(ctx, &domain.RosterEntry{UserID: b.ID, Date: day1, ShiftType: domain.ShiftEvening}))

	sw := domain.ShiftSwap{RequesterID: a.ID, TargetID: b.ID, Date: day1, RequesterShift: domain.ShiftMorning, TargetShift: domain.ShiftNight, Status: domain.SwapStatusPendingHOD}
	require.NoError(t, s.st.CreateSwap(ctx, &sw))

	tx, err := s.db.BeginTx(ctx, nil)
	require.NoError(t, err)
	qtx := s.st.WithTx(tx)

	require.NoError(t, qtx.UpdateSwapStatus(ctx, sw.ID, domain.SwapStatusPendingHOD, domain.SwapStatusApproved))
	require.NoError(t, qtx.UpdateRosterShift(ctx, a.ID, day1, domain.ShiftMorning, domain.ShiftNight))
	err = qtx.UpdateRosterShift(ctx, b.ID, day1, domain.ShiftNight, domain.ShiftMorning)
	require.ErrorIs(t, err, store.ErrStaleStatus)
	require.NoError(t, tx.Rollback())

	got, err := s.st.FindSwapByID(ctx, sw.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SwapStatusPendingHOD, got.Status)

	ea, err := s.st.FindRosterEntry(ctx, a.ID, day1)
	require.NoError(t, err)
	assert.Equal(t, domain.ShiftMorning, ea.ShiftType)
}

func (s *suite) limits(t *testing.T) {
	ctx := context.Background()

	_, err := s.st.FindMonthlyLimit(ctx, domain.RequestTypeLeave)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.st.UpsertMonthlyLimit(ctx, &domain.MonthlyLimit{LimitType: domain.RequestTypeLeave, Value: 2}))
	require.NoError(t, s.st.UpsertMonthlyLimit(ctx, &domain.MonthlyLimit{LimitType: domain.RequestTypeLeave, Value: 4}))
	require.NoError(t, s.st.UpsertMonthlyLimit(ctx, &domain.MonthlyLimit{LimitType: domain.RequestTypeShift, Value: 1}))

	l, err := s.st.FindMonthlyLimit(ctx, domain.RequestTypeLeave)
	require.NoError(t, err)
	assert.Equal(t, 4, l.Value)

	all, err := s.st.ListMonthlyLimits(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func (s *suite) attendance(t *testing.T) {
	ctx := context.Background()
	a := s.user(t, "a", domain.RoleEmployee)

	require.NoError(t, s.st.UpsertAttendance(ctx, &domain.Attendance{UserID: a.ID, Date: day1, Status: domain.AttendancePresent}))
	require.NoError(t, s.st.UpsertAttendance(ctx, &domain.Attendance{UserID: a.ID, Date: day1, Status: domain.AttendanceLeave}))
	require.NoError(t, s.st.UpsertAttendance(ctx, &domain.Attendance{UserID: a.ID, Date: day2, Status: domain.AttendancePresent}))

	onDay1, err := s.st.ListAttendanceByDate(ctx, day1)
	require.NoError(t, err)
	require.Len(t, onDay1, 1)
	assert.Equal(t, domain.AttendanceLeave, onDay1[0].Status)
	assert.Equal(t, "a", onDay1[0].Username)

	mine, err := s.st.ListAttendanceByUser(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, domain.FormatDate(day2), domain.FormatDate(mine[0].Date))
}

func (s *suite) notifications(t *testing.T) {
	ctx := context.Background()
	a := s.user(t, "a", domain.RoleEmployee)
	b := s.user(t, "b", domain.RoleEmployee)

	first := domain.Notification{UserID: a.ID, Message: "first"}
	require.NoError(t, s.st.InsertNotification(ctx, &first))
	time.Sleep(10 * time.Millisecond)
	second := domain.Notification{UserID: a.ID, Message: "second"}
	require.NoError(t, s.st.InsertNotification(ctx, &second))

	list, err := s.st.ListNotifications(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Message)

	assert.ErrorIs(t, s.st.MarkNotificationRead(ctx, first.ID, b.ID), store.ErrNotFound)
	require.NoError(t, s.st.MarkNotificationRead(ctx, first.ID, a.ID))

	unread, err := s.st.CountUnread(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	n, err := s.st.MarkAllNotificationsRead(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	unread, err = s.st.CountUnread(ctx, a.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)
}
