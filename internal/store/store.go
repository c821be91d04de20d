// Package store defines the persistence boundary. Services depend on Store
// only; gormstore and sqlstore are the interchangeable adapters.
package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Ashmit12092000/ems/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("store: record not found")
	ErrDuplicate   = errors.New("store: duplicate record")
	ErrStaleStatus = errors.New("store: status changed concurrently")
)

type RequestFilter struct {
	UserID *uuid.UUID
	Status string
	Type   string
}

// CountFilter counts requests of one type for a user whose date falls in
// Month's calendar month.
type CountFilter struct {
	UserID   uuid.UUID
	Type     string
	Statuses []string
	Month    time.Time
}

// SwapFilter.ParticipantID matches swaps where the user is requester or
// target.
type SwapFilter struct {
	ParticipantID *uuid.UUID
	RequesterID   *uuid.UUID
	TargetID      *uuid.UUID
	Status        string
}

type Store interface {
	WithTx(tx *sql.Tx) Store

	CreateUser(ctx context.Context, u *domain.User) error
	FindUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context, role string) ([]domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error

	CreateRequest(ctx context.Context, r *domain.Request) error
	FindRequestByID(ctx context.Context, id uuid.UUID) (*domain.Request, error)
	ListRequests(ctx context.Context, f RequestFilter) ([]domain.Request, error)
	CountRequests(ctx context.Context, f CountFilter) (int64, error)
	UpdateRequestStatus(ctx context.Context, id uuid.UUID, expected, next string, decidedBy uuid.UUID, decidedAt time.Time) error

	CreateSwap(ctx context.Context, s *domain.ShiftSwap) error
	FindSwapByID(ctx context.Context, id uuid.UUID) (*domain.ShiftSwap, error)
	ListSwaps(ctx context.Context, f SwapFilter) ([]domain.ShiftSwap, error)
	UpdateSwapStatus(ctx context.Context, id uuid.UUID, expected, next string) error

	FindRosterEntry(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.RosterEntry, error)
	ListRosterByDate(ctx context.Context, date time.Time) ([]domain.RosterEntry, error)
	ListRosterByRange(ctx context.Context, userID *uuid.UUID, from, to time.Time) ([]domain.RosterEntry, error)
	UpsertRosterEntry(ctx context.Context, e *domain.RosterEntry) error
	ReplaceRosterDay(ctx context.Context, date time.Time, entries []domain.RosterEntry) error
	UpdateRosterShift(ctx context.Context, userID uuid.UUID, date time.Time, expectedShift, nextShift string) error

	FindMonthlyLimit(ctx context.Context, limitType string) (*domain.MonthlyLimit, error)
	ListMonthlyLimits(ctx context.Context) ([]domain.MonthlyLimit, error)
	UpsertMonthlyLimit(ctx context.Context, l *domain.MonthlyLimit) error

	UpsertAttendance(ctx context.Context, a *domain.Attendance) error
	ListAttendanceByDate(ctx context.Context, date time.Time) ([]domain.Attendance, error)
	ListAttendanceByUser(ctx context.Context, userID uuid.UUID) ([]domain.Attendance, error)

	InsertNotification(ctx context.Context, n *domain.Notification) error
	ListNotifications(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error)
	MarkNotificationRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) (int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}
