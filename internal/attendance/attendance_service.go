package attendance

import (
	"context"
	"errors"

	attendanceerrors "github.com/Ashmit12092000/ems/internal/attendance/errors"
	"github.com/Ashmit12092000/ems/internal/domain"
	"github.com/Ashmit12092000/ems/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Mark(ctx context.Context, userID, date, status string) (AttendanceResponse, error)
	// GetDay lists every employee for date. Employees without a row are Absent.
	GetDay(ctx context.Context, date string) ([]AttendanceResponse, error)
	GetForUser(ctx context.Context, userID uuid.UUID) ([]AttendanceResponse, error)
	RecordLeave(ctx context.Context, userID uuid.UUID, date string) error
}

type service struct {
	store  store.Store
	logger *zap.Logger
}

func NewService(st store.Store, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{store: st, logger: l}
}

func (s *service) Mark(ctx context.Context, userID, date, status string) (AttendanceResponse, error) {
	if !domain.ValidAttendanceStatus(status) {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidStatus
	}
	d, err := domain.ParseDate(date)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDateFormat
	}
	id, err := uuid.Parse(userID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidUserID
	}

	u, err := s.store.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrUserNotFound
		}
		return AttendanceResponse{}, err
	}
	if u.Role != domain.RoleEmployee {
		return AttendanceResponse{}, attendanceerrors.ErrNotEmployee
	}

	row := &domain.Attendance{UserID: id, Date: d, Status: status}
	if err := s.store.UpsertAttendance(ctx, row); err != nil {
		s.logger.Error("mark attendance persist failed",
			zap.String("user_id", userID),
			zap.String("date", date),
			zap.Error(err),
		)
		return AttendanceResponse{}, err
	}

	s.logger.Info("mark attendance success", zap.String("user_id", userID), zap.String("date", date), zap.String("status", status))
	row.Username = u.Username
	return mapToResponse(*row), nil
}

func (s *service) GetDay(ctx context.Context, date string) ([]AttendanceResponse, error) {
	d, err := domain.ParseDate(date)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDateFormat
	}

	employees, err := s.store.ListUsers(ctx, domain.RoleEmployee)
	if err != nil {
		s.logger.Error("attendance day list employees failed", zap.Error(err))
		return nil, err
	}
	rows, err := s.store.ListAttendanceByDate(ctx, d)
	if err != nil {
		s.logger.Error("attendance day list rows failed", zap.String("date", date), zap.Error(err))
		return nil, err
	}

	byUser := make(map[uuid.UUID]domain.Attendance, len(rows))
	for _, r := range rows {
		byUser[r.UserID] = r
	}

	resp := make([]AttendanceResponse, 0, len(employees))
	for _, e := range employees {
		row, ok := byUser[e.ID]
		if !ok {
			row = domain.Attendance{UserID: e.ID, Date: d, Status: domain.AttendanceAbsent}
		}
		row.Username = e.Username
		resp = append(resp, mapToResponse(row))
	}
	return resp, nil
}

func (s *service) GetForUser(ctx context.Context, userID uuid.UUID) ([]AttendanceResponse, error) {
	rows, err := s.store.ListAttendanceByUser(ctx, userID)
	if err != nil {
		s.logger.Error("attendance for user failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}
	resp := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp, nil
}

// RecordLeave upserts a Leave row. Replaying it for the same day is a no-op.
func (s *service) RecordLeave(ctx context.Context, userID uuid.UUID, date string) error {
	d, err := domain.ParseDate(date)
	if err != nil {
		return attendanceerrors.ErrInvalidDateFormat
	}
	row := &domain.Attendance{UserID: userID, Date: d, Status: domain.AttendanceLeave}
	if err := s.store.UpsertAttendance(ctx, row); err != nil {
		s.logger.Error("record leave attendance failed",
			zap.String("user_id", userID.String()),
			zap.String("date", date),
			zap.Error(err),
		)
		return err
	}
	return nil
}
