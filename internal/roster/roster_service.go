package roster

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/Ashmit12092000/ems/internal/domain"
	rostererrors "github.com/Ashmit12092000/ems/internal/roster/errors"
	"github.com/Ashmit12092000/ems/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxRangeDays = 62

//go:generate mockgen -source=roster_service.go -destination=mock/roster_service_mock.go -package=mock
type Service interface {
	SetShift(ctx context.Context, userID, date, shift string) (EntryResponse, error)
	// SaveDay replaces the whole roster for date.
	SaveDay(ctx context.Context, date string, shifts map[string]string) ([]EntryResponse, error)
	GetDay(ctx context.Context, date string) ([]EntryResponse, error)
	GetForUser(ctx context.Context, userID uuid.UUID, from, to string) ([]EntryResponse, error)
	// Export returns an xlsx workbook and its file name.
	Export(ctx context.Context, from, to string) (*bytes.Buffer, string, error)
}

type service struct {
	store  store.Store
	now    func() time.Time
	logger *zap.Logger
}

func NewService(st store.Store, logger ...*zap.Logger) Service {
	l := zap.L().Named("roster.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("roster.service")
	}
	return &service{store: st, now: time.Now, logger: l}
}

func parseDate(v string) (time.Time, error) {
	t, err := domain.ParseDate(v)
	if err != nil {
		return time.Time{}, rostererrors.ErrInvalidDateFormat
	}
	return t, nil
}

// parseRange defaults to the current calendar month when both ends are empty.
func (s *service) parseRange(from, to string) (time.Time, time.Time, error) {
	if from == "" && to == "" {
		start, next := domain.MonthBounds(s.now())
		return start, next.AddDate(0, 0, -1), nil
	}
	f, err := parseDate(from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	t, err := parseDate(to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if f.After(t) {
		return time.Time{}, time.Time{}, rostererrors.ErrInvalidDateRange
	}
	// Both ends are inclusive.
	if int(t.Sub(f).Hours()/24)+1 > maxRangeDays {
		return time.Time{}, time.Time{}, rostererrors.ErrRangeTooLong
	}
	return f, t, nil
}

func (s *service) findEmployee(ctx context.Context, id string) (*domain.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, rostererrors.ErrInvalidUserID
	}
	u, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, rostererrors.ErrUserNotFound
		}
		return nil, err
	}
	if u.Role != domain.RoleEmployee {
		return nil, rostererrors.ErrNotEmployee
	}
	return u, nil
}

func (s *service) SetShift(ctx context.Context, userID, date, shift string) (EntryResponse, error) {
	if !domain.ValidShift(shift) {
		return EntryResponse{}, rostererrors.ErrInvalidShift
	}
	d, err := parseDate(date)
	if err != nil {
		return EntryResponse{}, err
	}
	u, err := s.findEmployee(ctx, userID)
	if err != nil {
		return EntryResponse{}, err
	}

	entry := &domain.RosterEntry{UserID: u.ID, Date: d, ShiftType: shift}
	if err := s.store.UpsertRosterEntry(ctx, entry); err != nil {
		s.logger.Error("set shift persist failed",
			zap.String("user_id", userID),
			zap.String("date", date),
			zap.Error(err),
		)
		return EntryResponse{}, err
	}

	s.logger.Info("set shift success", zap.String("user_id", userID), zap.String("date", date), zap.String("shift", shift))
	entry.Username = u.Username
	return mapToResponse(*entry), nil
}

func (s *service) SaveDay(ctx context.Context, date string, shifts map[string]string) ([]EntryResponse, error) {
	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	employees, err := s.store.ListUsers(ctx, domain.RoleEmployee)
	if err != nil {
		s.logger.Error("save day list employees failed", zap.Error(err))
		return nil, err
	}
	known := make(map[uuid.UUID]string, len(employees))
	for _, e := range employees {
		known[e.ID] = e.Username
	}

	assigned := make(map[uuid.UUID]string, len(shifts))
	for rawID, shift := range shifts {
		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, rostererrors.ErrInvalidUserID
		}
		if _, ok := known[id]; !ok {
			return nil, rostererrors.ErrUserNotFound
		}
		if !domain.ValidShift(shift) {
			return nil, rostererrors.ErrInvalidShift
		}
		assigned[id] = shift
	}

	entries := make([]domain.RosterEntry, 0, len(employees))
	for _, e := range employees {
		shift, ok := assigned[e.ID]
		if !ok {
			shift = domain.ShiftOff
		}
		entries = append(entries, domain.RosterEntry{UserID: e.ID, Date: d, ShiftType: shift, Username: e.Username})
	}

	if err := s.store.ReplaceRosterDay(ctx, d, entries); err != nil {
		s.logger.Error("save day persist failed", zap.String("date", date), zap.Error(err))
		return nil, err
	}

	s.logger.Info("save day success", zap.String("date", date), zap.Int("entries", len(entries)))
	return mapToListResponse(entries), nil
}

func (s *service) GetDay(ctx context.Context, date string) ([]EntryResponse, error) {
	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.ListRosterByDate(ctx, d)
	if err != nil {
		s.logger.Error("get roster day failed", zap.String("date", date), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(entries), nil
}

func (s *service) GetForUser(ctx context.Context, userID uuid.UUID, from, to string) ([]EntryResponse, error) {
	f, t, err := s.parseRange(from, to)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.ListRosterByRange(ctx, &userID, f, t)
	if err != nil {
		s.logger.Error("get user roster failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(entries), nil
}

func (s *service) Export(ctx context.Context, from, to string) (*bytes.Buffer, string, error) {
	f, t, err := s.parseRange(from, to)
	if err != nil {
		return nil, "", err
	}

	employees, err := s.store.ListUsers(ctx, domain.RoleEmployee)
	if err != nil {
		s.logger.Error("export roster list employees failed", zap.Error(err))
		return nil, "", err
	}
	entries, err := s.store.ListRosterByRange(ctx, nil, f, t)
	if err != nil {
		s.logger.Error("export roster list entries failed", zap.Error(err))
		return nil, "", err
	}

	buf, err := buildWorkbook(employees, entries, f, t)
	if err != nil {
		s.logger.Error("export roster write workbook failed", zap.Error(err))
		return nil, "", rostererrors.ErrExportFailed
	}

	filename := "roster_" + domain.FormatDate(f) + "_" + domain.FormatDate(t) + ".xlsx"
	s.logger.Info("export roster success",
		zap.String("from", domain.FormatDate(f)),
		zap.String("to", domain.FormatDate(t)),
		zap.Int("employees", len(employees)),
	)
	return buf, filename, nil
}
