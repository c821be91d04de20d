// Package storefake is an in-memory store.Store for service and handler
// tests. It honors the same not-found, duplicate and expected-status
// semantics as the SQL adapters. Transactions are not isolated: WithTx
// returns the same store, so rollback behavior is asserted through sqlmock.
package storefake

import (
	"context"
	"database/sql"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/Ashmit12092000/ems/internal/domain"
	"github.com/Ashmit12092000/ems/internal/store"

	"github.com/google/uuid"
)

type rosterKey struct {
	userID uuid.UUID
	date   string
}

type Store struct {
	mu sync.Mutex

	users         map[uuid.UUID]domain.User
	requests      map[uuid.UUID]domain.Request
	swaps         map[uuid.UUID]domain.ShiftSwap
	roster        map[rosterKey]domain.RosterEntry
	limits        map[string]domain.MonthlyLimit
	attendance    map[rosterKey]domain.Attendance
	notifications []domain.Notification

	failures map[string]error
	clock    func() time.Time
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		users:      map[uuid.UUID]domain.User{},
		requests:   map[uuid.UUID]domain.Request{},
		swaps:      map[uuid.UUID]domain.ShiftSwap{},
		roster:     map[rosterKey]domain.RosterEntry{},
		limits:     map[string]domain.MonthlyLimit{},
		attendance: map[rosterKey]domain.Attendance{},
		failures:   map[string]error{},
		clock:      time.Now,
	}
}

// FailOn makes every later call of method return err until cleared with a
// nil err.
func (s *Store) FailOn(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, method)
		return
	}
	s.failures[method] = err
}

func (s *Store) fail(method string) error {
	return s.failures[method]
}

func key(userID uuid.UUID, date time.Time) rosterKey {
	return rosterKey{userID: userID, date: domain.FormatDate(date)}
}

func (s *Store) WithTx(*sql.Tx) store.Store {
	return s
}

// Seed helpers for tests.

func (s *Store) AddUser(username, role string) domain.User {
	u := domain.User{ID: uuid.New(), Username: username, Role: role, PasswordHash: "x", CreatedAt: s.clock()}
	s.mu.Lock()
	s.users[u.ID] = u
	s.mu.Unlock()
	return u
}

func (s *Store) SetRoster(userID uuid.UUID, date time.Time, shift string) {
	s.mu.Lock()
	s.roster[key(userID, date)] = domain.RosterEntry{UserID: userID, Date: date, ShiftType: shift}
	s.mu.Unlock()
}

func (s *Store) SetLimit(limitType string, value int) {
	s.mu.Lock()
	s.limits[limitType] = domain.MonthlyLimit{LimitType: limitType, Value: value, UpdatedAt: s.clock()}
	s.mu.Unlock()
}

func (s *Store) Notifications() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Notification(nil), s.notifications...)
}

// Users

func (s *Store) CreateUser(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateUser"); err != nil {
		return err
	}
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return store.ErrDuplicate
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = s.clock()
	s.users[u.ID] = *u
	return nil
}

func (s *Store) FindUserByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("FindUserByID"); err != nil {
		return nil, err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *Store) FindUserByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("FindUserByUsername"); err != nil {
		return nil, err
	}
	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListUsers(_ context.Context, role string) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListUsers"); err != nil {
		return nil, err
	}
	out := make([]domain.User, 0)
	for _, u := range s.users {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (s *Store) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("UpdatePassword"); err != nil {
		return err
	}
	u, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.PasswordHash = hash
	s.users[id] = u
	return nil
}

func (s *Store) username(id uuid.UUID) string {
	return s.users[id].Username
}

// Requests

func (s *Store) CreateRequest(_ context.Context, r *domain.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateRequest"); err != nil {
		return err
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = domain.RequestStatusPending
	}
	now := s.clock()
	r.CreatedAt, r.UpdatedAt = now, now
	s.requests[r.ID] = *r
	return nil
}

func (s *Store) FindRequestByID(_ context.Context, id uuid.UUID) (*domain.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("FindRequestByID"); err != nil {
		return nil, err
	}
	r, ok := s.requests[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	r.Username = s.username(r.UserID)
	return &r, nil
}

func (s *Store) ListRequests(_ context.Context, f store.RequestFilter) ([]domain.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListRequests"); err != nil {
		return nil, err
	}
	out := make([]domain.Request, 0)
	for _, r := range s.requests {
		if f.UserID != nil && r.UserID != *f.UserID {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.Type != "" && r.Type != f.Type {
			continue
		}
		r.Username = s.username(r.UserID)
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) CountRequests(_ context.Context, f store.CountFilter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CountRequests"); err != nil {
		return 0, err
	}
	from, to := domain.MonthBounds(f.Month)
	var n int64
	for _, r := range s.requests {
		if r.UserID != f.UserID || r.Type != f.Type {
			continue
		}
		if r.Date.Before(from) || !r.Date.Before(to) {
			continue
		}
		if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, r.Status) {
			continue
		}
		n++
	}
	return n, nil
}

func (s *Store) UpdateRequestStatus(_ context.Context, id uuid.UUID, expected, next string, decidedBy uuid.UUID, decidedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("UpdateRequestStatus"); err != nil {
		return err
	}
	r, ok := s.requests[id]
	if !ok {
		return store.ErrNotFound
	}
	if r.Status != expected {
		return store.ErrStaleStatus
	}
	r.Status = next
	r.DecidedBy = &decidedBy
	r.DecidedAt = &decidedAt
	r.UpdatedAt = decidedAt
	s.requests[id] = r
	return nil
}

// Swaps

func (s *Store) CreateSwap(_ context.Context, sw *domain.ShiftSwap) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateSwap"); err != nil {
		return err
	}
	if sw.ID == uuid.Nil {
		sw.ID = uuid.New()
	}
	if sw.Status == "" {
		sw.Status = domain.SwapStatusPendingTarget
	}
	now := s.clock()
	sw.CreatedAt, sw.UpdatedAt = now, now
	s.swaps[sw.ID] = *sw
	return nil
}

func (s *Store) withNames(sw domain.ShiftSwap) domain.ShiftSwap {
	sw.RequesterName = s.username(sw.RequesterID)
	sw.TargetName = s.username(sw.TargetID)
	return sw
}

func (s *Store) FindSwapByID(_ context.Context, id uuid.UUID) (*domain.ShiftSwap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("FindSwapByID"); err != nil {
		return nil, err
	}
	sw, ok := s.swaps[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	sw = s.withNames(sw)
	return &sw, nil
}

func (s *Store) ListSwaps(_ context.Context, f store.SwapFilter) ([]domain.ShiftSwap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListSwaps"); err != nil {
		return nil, err
	}
	out := make([]domain.ShiftSwap, 0)
	for _, sw := range s.swaps {
		if f.ParticipantID != nil && sw.RequesterID != *f.ParticipantID && sw.TargetID != *f.ParticipantID {
			continue
		}
		if f.RequesterID != nil && sw.RequesterID != *f.RequesterID {
			continue
		}
		if f.TargetID != nil && sw.TargetID != *f.TargetID {
			continue
		}
		if f.Status != "" && sw.Status != f.Status {
			continue
		}
		out = append(out, s.withNames(sw))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) UpdateSwapStatus(_ context.Context, id uuid.UUID, expected, next string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("UpdateSwapStatus"); err != nil {
		return err
	}
	sw, ok := s.swaps[id]
	if !ok {
		return store.ErrNotFound
	}
	if sw.Status != expected {
		return store.ErrStaleStatus
	}
	sw.Status = next
	sw.UpdatedAt = s.clock()
	s.swaps[id] = sw
	return nil
}

// Roster

func (s *Store) FindRosterEntry(_ context.Context, userID uuid.UUID, date time.Time) (*domain.RosterEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("FindRosterEntry"); err != nil {
		return nil, err
	}
	e, ok := s.roster[key(userID, date)]
	if !ok {
		return nil, store.ErrNotFound
	}
	e.Username = s.username(userID)
	return &e, nil
}

func (s *Store) sortedRoster(match func(domain.RosterEntry) bool) []domain.RosterEntry {
	out := make([]domain.RosterEntry, 0)
	for _, e := range s.roster {
		if match(e) {
			e.Username = s.username(e.UserID)
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Username < out[j].Username
	})
	return out
}

func (s *Store) ListRosterByDate(_ context.Context, date time.Time) ([]domain.RosterEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListRosterByDate"); err != nil {
		return nil, err
	}
	day := domain.FormatDate(date)
	return s.sortedRoster(func(e domain.RosterEntry) bool {
		return domain.FormatDate(e.Date) == day
	}), nil
}

func (s *Store) ListRosterByRange(_ context.Context, userID *uuid.UUID, from, to time.Time) ([]domain.RosterEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListRosterByRange"); err != nil {
		return nil, err
	}
	return s.sortedRoster(func(e domain.RosterEntry) bool {
		if userID != nil && e.UserID != *userID {
			return false
		}
		return !e.Date.Before(from) && !e.Date.After(to)
	}), nil
}

func (s *Store) UpsertRosterEntry(_ context.Context, e *domain.RosterEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("UpsertRosterEntry"); err != nil {
		return err
	}
	s.roster[key(e.UserID, e.Date)] = domain.RosterEntry{UserID: e.UserID, Date: e.Date, ShiftType: e.ShiftType}
	return nil
}

func (s *Store) ReplaceRosterDay(_ context.Context, date time.Time, entries []domain.RosterEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ReplaceRosterDay"); err != nil {
		return err
	}
	day := domain.FormatDate(date)
	for k := range s.roster {
		if k.date == day {
			delete(s.roster, k)
		}
	}
	for _, e := range entries {
		s.roster[key(e.UserID, date)] = domain.RosterEntry{UserID: e.UserID, Date: date, ShiftType: e.ShiftType}
	}
	return nil
}

func (s *Store) UpdateRosterShift(_ context.Context, userID uuid.UUID, date time.Time, expectedShift, nextShift string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("UpdateRosterShift"); err != nil {
		return err
	}
	k := key(userID, date)
	e, ok := s.roster[k]
	if !ok {
		return store.ErrNotFound
	}
	if e.ShiftType != expectedShift {
		return store.ErrStaleStatus
	}
	e.ShiftType = nextShift
	s.roster[k] = e
	return nil
}

// Limits

func (s *Store) FindMonthlyLimit(_ context.Context, limitType string) (*domain.MonthlyLimit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("FindMonthlyLimit"); err != nil {
		return nil, err
	}
	l, ok := s.limits[limitType]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &l, nil
}

func (s *Store) ListMonthlyLimits(_ context.Context) ([]domain.MonthlyLimit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListMonthlyLimits"); err != nil {
		return nil, err
	}
	out := make([]domain.MonthlyLimit, 0, len(s.limits))
	for _, l := range s.limits {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LimitType < out[j].LimitType })
	return out, nil
}

func (s *Store) UpsertMonthlyLimit(_ context.Context, l *domain.MonthlyLimit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("UpsertMonthlyLimit"); err != nil {
		return err
	}
	l.UpdatedAt = s.clock()
	s.limits[l.LimitType] = *l
	return nil
}

// Attendance

func (s *Store) UpsertAttendance(_ context.Context, a *domain.Attendance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("UpsertAttendance"); err != nil {
		return err
	}
	a.UpdatedAt = s.clock()
	s.attendance[key(a.UserID, a.Date)] = domain.Attendance{UserID: a.UserID, Date: a.Date, Status: a.Status, UpdatedAt: a.UpdatedAt}
	return nil
}

func (s *Store) ListAttendanceByDate(_ context.Context, date time.Time) ([]domain.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListAttendanceByDate"); err != nil {
		return nil, err
	}
	day := domain.FormatDate(date)
	out := make([]domain.Attendance, 0)
	for k, a := range s.attendance {
		if k.date == day {
			a.Username = s.username(a.UserID)
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (s *Store) ListAttendanceByUser(_ context.Context, userID uuid.UUID) ([]domain.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListAttendanceByUser"); err != nil {
		return nil, err
	}
	out := make([]domain.Attendance, 0)
	for _, a := range s.attendance {
		if a.UserID == userID {
			a.Username = s.username(a.UserID)
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// Notifications

func (s *Store) InsertNotification(_ context.Context, n *domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("InsertNotification"); err != nil {
		return err
	}
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.CreatedAt = s.clock()
	s.notifications = append(s.notifications, *n)
	return nil
}

func (s *Store) ListNotifications(_ context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListNotifications"); err != nil {
		return nil, err
	}
	out := make([]domain.Notification, 0)
	for i := len(s.notifications) - 1; i >= 0; i-- {
		if s.notifications[i].UserID == userID {
			out = append(out, s.notifications[i])
		}
	}
	return out, nil
}

func (s *Store) MarkNotificationRead(_ context.Context, id, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("MarkNotificationRead"); err != nil {
		return err
	}
	for i := range s.notifications {
		if s.notifications[i].ID == id && s.notifications[i].UserID == userID {
			s.notifications[i].IsRead = true
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) MarkAllNotificationsRead(_ context.Context, userID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("MarkAllNotificationsRead"); err != nil {
		return 0, err
	}
	var n int64
	for i := range s.notifications {
		if s.notifications[i].UserID == userID && !s.notifications[i].IsRead {
			s.notifications[i].IsRead = true
			n++
		}
	}
	return n, nil
}

func (s *Store) CountUnread(_ context.Context, userID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CountUnread"); err != nil {
		return 0, err
	}
	var n int64
	for _, nt := range s.notifications {
		if nt.UserID == userID && !nt.IsRead {
			n++
		}
	}
	return n, nil
}
