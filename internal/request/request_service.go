package request

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Ashmit12092000/ems/internal/domain"
	"github.com/Ashmit12092000/ems/internal/events"
	"github.com/Ashmit12092000/ems/internal/messaging/kafka"
	"github.com/Ashmit12092000/ems/internal/notification"
	"github.com/Ashmit12092000/ems/internal/observability"
	requesterrors "github.com/Ashmit12092000/ems/internal/request/errors"
	"github.com/Ashmit12092000/ems/internal/shared/contextutil"
	"github.com/Ashmit12092000/ems/internal/store"
	"github.com/Ashmit12092000/ems/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const timeLayout = "15:04"

//go:generate mockgen -source=request_service.go -destination=mock/request_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreateRequest) (Outcome, error)
	GetAll(ctx context.Context, actor domain.Actor, filter ListFilter) ([]RequestResponse, error)
	GetByID(ctx context.Context, actor domain.Actor, id string) (RequestResponse, error)
	Approve(ctx context.Context, actor domain.Actor, id string) (Outcome, error)
	Reject(ctx context.Context, actor domain.Actor, id string) (Outcome, error)
}

type service struct {
	db        *sql.DB
	store     store.Store
	validator validation.Validator
	outbox    kafka.OutboxRepository
	metrics   *observability.Metrics
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	st store.Store,
	validator validation.Validator,
	outbox kafka.OutboxRepository,
	metrics *observability.Metrics,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("request.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("request.service")
	}
	return &service{db: db, store: st, validator: validator, outbox: outbox, metrics: metrics, logger: l}
}

func (s *service) Create(ctx context.Context, actor domain.Actor, req CreateRequest) (Outcome, error) {
	s.logger.Debug("create request requested",
		zap.String("user_id", actor.ID.String()),
		zap.String("type", req.Type),
		zap.String("date", req.Date),
	)

	r, err := buildRequest(actor.ID, req)
	if err != nil {
		s.logger.Warn("create request input invalid", zap.Error(err))
		return Outcome{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create request begin tx failed", zap.Error(err))
		return Outcome{}, err
	}
	defer tx.Rollback()

	qtx := s.store.WithTx(tx)

	if r.Type != domain.RequestTypeShift {
		res := s.validator.WithStore(qtx).Validate(ctx, actor.ID, r.Date, r.Type)
		if !res.Passed {
			s.logger.Info("create request rejected by validation",
				zap.String("user_id", actor.ID.String()),
				zap.String("type", r.Type),
				zap.String("reason", res.Message),
			)
			return Outcome{}, requesterrors.ErrValidationFailed.WithMessage(res.Message)
		}
	}

	if err := qtx.CreateRequest(ctx, r); err != nil {
		s.logger.Error("create request persist failed", zap.Error(err))
		return Outcome{}, err
	}

	var notices []notification.Notice
	if r.Type == domain.RequestTypeShift {
		hods, err := qtx.ListUsers(ctx, domain.RoleHOD)
		if err != nil {
			s.logger.Error("create request list hods failed", zap.Error(err))
			return Outcome{}, err
		}
		msg := fmt.Sprintf("New shift change request from %s for %s", actor.Username, domain.FormatDate(r.Date))
		for _, hod := range hods {
			notices = append(notices, notification.Notice{UserID: hod.ID, Message: msg})
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create request commit failed", zap.Error(err))
		return Outcome{}, err
	}
	s.logger.Info("create request success",
		zap.String("request_id", r.ID.String()),
		zap.String("user_id", actor.ID.String()),
		zap.String("type", r.Type),
	)

	r.Username = actor.Username
	return Outcome{Request: mapToResponse(*r), Notices: notices}, nil
}

func (s *service) GetAll(ctx context.Context, actor domain.Actor, filter ListFilter) ([]RequestResponse, error) {
	f := store.RequestFilter{Status: filter.Status, Type: filter.Type}
	if !actor.IsHOD() {
		f.UserID = &actor.ID
	}

	requests, err := s.store.ListRequests(ctx, f)
	if err != nil {
		s.logger.Error("list requests failed", zap.String("user_id", actor.ID.String()), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id string) (RequestResponse, error) {
	requestID, err := uuid.Parse(id)
	if err != nil {
		return RequestResponse{}, requesterrors.ErrInvalidRequestID
	}

	r, err := s.store.FindRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return RequestResponse{}, requesterrors.ErrRequestNotFound
		}
		return RequestResponse{}, err
	}
	// Someone else's request reads as missing to an employee.
	if !actor.IsHOD() && r.UserID != actor.ID {
		return RequestResponse{}, requesterrors.ErrRequestNotFound
	}
	return mapToResponse(*r), nil
}

func (s *service) Approve(ctx context.Context, actor domain.Actor, id string) (Outcome, error) {
	return s.decide(ctx, actor, id, domain.RequestStatusApproved)
}

func (s *service) Reject(ctx context.Context, actor domain.Actor, id string) (Outcome, error) {
	return s.decide(ctx, actor, id, domain.RequestStatusRejected)
}

func (s *service) decide(ctx context.Context, actor domain.Actor, id, targetStatus string) (Outcome, error) {
	s.logger.Debug("decide request requested",
		zap.String("request_id", id),
		zap.String("actor_id", actor.ID.String()),
		zap.String("target_status", targetStatus),
	)

	if !actor.IsHOD() {
		return Outcome{}, requesterrors.ErrForbidden
	}
	requestID, err := uuid.Parse(id)
	if err != nil {
		return Outcome{}, requesterrors.ErrInvalidRequestID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide request begin tx failed", zap.Error(err))
		return Outcome{}, err
	}
	defer tx.Rollback()

	qtx := s.store.WithTx(tx)

	r, err := qtx.FindRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Outcome{}, requesterrors.ErrRequestNotFound
		}
		s.logger.Error("decide request lookup failed", zap.String("request_id", id), zap.Error(err))
		return Outcome{}, err
	}
	if r.Status != domain.RequestStatusPending {
		s.logger.Warn("decide request already processed",
			zap.String("request_id", id),
			zap.String("status", r.Status),
		)
		return Outcome{}, requesterrors.ErrRequestAlreadyProcessed
	}

	now := time.Now().UTC()
	err = qtx.UpdateRequestStatus(ctx, requestID, domain.RequestStatusPending, targetStatus, actor.ID, now)
	switch {
	case errors.Is(err, store.ErrStaleStatus):
		return Outcome{}, requesterrors.ErrRequestAlreadyProcessed
	case errors.Is(err, store.ErrNotFound):
		return Outcome{}, requesterrors.ErrRequestNotFound
	case err != nil:
		s.logger.Error("decide request persist failed", zap.String("request_id", id), zap.Error(err))
		return Outcome{}, err
	}
	r.Status = targetStatus
	r.DecidedBy = &actor.ID
	r.DecidedAt = &now

	if err := s.writeStatusChanged(ctx, tx, *r, actor.ID, now); err != nil {
		s.logger.Error("decide request outbox failed", zap.String("request_id", id), zap.Error(err))
		return Outcome{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide request commit failed", zap.String("request_id", id), zap.Error(err))
		return Outcome{}, err
	}
	s.metrics.RequestDecision(r.Type, targetStatus)
	s.logger.Info("decide request success",
		zap.String("request_id", id),
		zap.String("status", targetStatus),
	)

	notice := notification.Notice{
		UserID:  r.UserID,
		Message: fmt.Sprintf("Your %s request for %s has been %s.", r.Type, domain.FormatDate(r.Date), targetStatus),
	}
	return Outcome{Request: mapToResponse(*r), Notices: []notification.Notice{notice}}, nil
}

func (s *service) writeStatusChanged(ctx context.Context, tx *sql.Tx, r domain.Request, decidedBy uuid.UUID, at time.Time) error {
	payload := events.RequestStatusChangedEvent{
		EventType:   "request_status_changed",
		RequestID:   r.ID.String(),
		UserID:      r.UserID.String(),
		RequestType: r.Type,
		Date:        domain.FormatDate(r.Date),
		Status:      r.Status,
		DecidedBy:   decidedBy.String(),
		OccurredAt:  at,
	}
	event, err := kafka.NewEvent(
		contextutil.GetRequestID(ctx),
		events.RequestAggregate,
		r.ID.String(),
		payload.EventType,
		events.RequestStatusChangedTopic,
		payload,
	)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, event)
}

func buildRequest(userID uuid.UUID, req CreateRequest) (*domain.Request, error) {
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return nil, requesterrors.ErrInvalidDateFormat
	}

	r := &domain.Request{
		UserID: userID,
		Type:   req.Type,
		Date:   date,
		Reason: req.Reason,
		Status: domain.RequestStatusPending,
	}

	switch req.Type {
	case domain.RequestTypePermission:
		if req.StartTime == nil || req.EndTime == nil {
			return nil, requesterrors.ErrPermissionTimesRequired
		}
		start, err := time.Parse(timeLayout, *req.StartTime)
		if err != nil {
			return nil, requesterrors.ErrInvalidTimeFormat
		}
		end, err := time.Parse(timeLayout, *req.EndTime)
		if err != nil {
			return nil, requesterrors.ErrInvalidTimeFormat
		}
		if !start.Before(end) {
			return nil, requesterrors.ErrInvalidTimeRange
		}
		r.StartTime, r.EndTime = req.StartTime, req.EndTime
	case domain.RequestTypeShift:
		if req.CurrentShift == nil || req.RequestedShift == nil {
			return nil, requesterrors.ErrShiftsRequired
		}
		if !domain.ValidShift(*req.CurrentShift) || !domain.ValidShift(*req.RequestedShift) {
			return nil, requesterrors.ErrInvalidShift
		}
		if *req.CurrentShift == *req.RequestedShift {
			return nil, requesterrors.ErrSameShift
		}
		r.CurrentShift, r.RequestedShift = req.CurrentShift, req.RequestedShift
	}
	return r, nil
}
