package shiftswap

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
	"github.com/Ashmit12092000/ems/internal/shared/contextutil"
	shiftswaperrors "github.com/Ashmit12092000/ems/internal/shiftswap/errors"
	"github.com/Ashmit12092000/ems/internal/store"
	"github.com/Ashmit12092000/ems/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=shiftswap_service.go -destination=mock/shiftswap_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreateSwapRequest) (Outcome, error)
	Respond(ctx context.Context, actor domain.Actor, id string, accept bool) (Outcome, error)
	Decide(ctx context.Context, actor domain.Actor, id string, approve bool) (Outcome, error)
	GetByID(ctx context.Context, actor domain.Actor, id string) (SwapResponse, error)
	GetAll(ctx context.Context, actor domain.Actor, filter ListFilter) ([]SwapResponse, error)
	// Incoming lists swaps waiting for the actor's answer as target.
	Incoming(ctx context.Context, actor domain.Actor) ([]SwapResponse, error)
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
	l := zap.L().Named("shiftswap.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("shiftswap.service")
	}
	return &service{db: db, store: st, validator: validator, outbox: outbox, metrics: metrics, logger: l}
}

func (s *service) Create(ctx context.Context, actor domain.Actor, req CreateSwapRequest) (Outcome, error) {
	s.logger.Debug("create swap requested",
		zap.String("requester_id", actor.ID.String()),
		zap.String("target_id", req.TargetID),
		zap.String("date", req.Date),
	)

	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		return Outcome{}, shiftswaperrors.ErrInvalidTargetID
	}
	if targetID == actor.ID {
		return Outcome{}, shiftswaperrors.ErrSelfSwap
	}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return Outcome{}, shiftswaperrors.ErrInvalidDateFormat
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create swap begin tx failed", zap.Error(err))
		return Outcome{}, err
	}
	defer tx.Rollback()

	qtx := s.store.WithTx(tx)

	target, err := qtx.FindUserByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Outcome{}, shiftswaperrors.ErrTargetNotFound
		}
		s.logger.Error("create swap find target failed", zap.Error(err))
		return Outcome{}, err
	}
	if target.Role != domain.RoleEmployee {
		return Outcome{}, shiftswaperrors.ErrTargetNotEmployee
	}

	mine, err := s.rosterShift(ctx, qtx, actor.ID, date, shiftswaperrors.ErrRequesterNotRostered)
	if err != nil {
		return Outcome{}, err
	}
	theirs, err := s.rosterShift(ctx, qtx, targetID, date, shiftswaperrors.ErrTargetNotRostered)
	if err != nil {
		return Outcome{}, err
	}
	if (req.RequesterShift != "" && req.RequesterShift != mine) ||
		(req.TargetShift != "" && req.TargetShift != theirs) {
		s.logger.Warn("create swap shift mismatch",
			zap.String("requester_id", actor.ID.String()),
			zap.String("date", req.Date),
		)
		return Outcome{}, shiftswaperrors.ErrShiftMismatch
	}

	swap := &domain.ShiftSwap{
		RequesterID:    actor.ID,
		TargetID:       targetID,
		Date:           date,
		RequesterShift: mine,
		TargetShift:    theirs,
		Reason:         req.Reason,
		Status:         domain.SwapStatusPendingTarget,
	}
	if err := qtx.CreateSwap(ctx, swap); err != nil {
		s.logger.Error("create swap persist failed", zap.Error(err))
		return Outcome{}, err
	}
	if err := s.writeStatusChanged(ctx, tx, *swap, "", actor.ID); err != nil {
		s.logger.Error("create swap outbox failed", zap.Error(err))
		return Outcome{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create swap commit failed", zap.Error(err))
		return Outcome{}, err
	}
	s.logger.Info("create swap success",
		zap.String("swap_id", swap.ID.String()),
		zap.String("requester_id", actor.ID.String()),
		zap.String("target_id", targetID.String()),
	)

	swap.RequesterName, swap.TargetName = actor.Username, target.Username
	notice := notification.Notice{
		UserID: targetID,
		Message: fmt.Sprintf(
			"%s wants to swap your %s shift on %s with their %s shift. Please review the request.",
			actor.Username, theirs, req.Date, mine,
		),
	}
	return Outcome{Swap: mapToResponse(*swap), Notices: []notification.Notice{notice}}, nil
}

func (s *service) rosterShift(ctx context.Context, st store.Store, userID uuid.UUID, date time.Time, missing error) (string, error) {
	entry, err := st.FindRosterEntry(ctx, userID, date)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", missing
		}
		s.logger.Error("swap roster lookup failed", zap.String("user_id", userID.String()), zap.Error(err))
		return "", err
	}
	return entry.ShiftType, nil
}

func (s *service) Respond(ctx context.Context, actor domain.Actor, id string, accept bool) (Outcome, error) {
	s.logger.Debug("respond swap requested",
		zap.String("swap_id", id),
		zap.String("actor_id", actor.ID.String()),
		zap.Bool("accept", accept),
	)

	swapID, err := uuid.Parse(id)
	if err != nil {
		return Outcome{}, shiftswaperrors.ErrInvalidSwapID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("respond swap begin tx failed", zap.Error(err))
		return Outcome{}, err
	}
	defer tx.Rollback()

	qtx := s.store.WithTx(tx)

	swap, err := s.find(ctx, qtx, swapID)
	if err != nil {
		return Outcome{}, err
	}
	if swap.TargetID != actor.ID {
		return Outcome{}, shiftswaperrors.ErrNotTarget
	}

	date := domain.FormatDate(swap.Date)
	var next string
	var notices []notification.Notice

	switch {
	case !accept:
		next = domain.SwapStatusRejectedByTarget
		notices = append(notices, notification.Notice{
			UserID:  swap.RequesterID,
			Message: fmt.Sprintf("Your shift swap request for %s was declined by %s.", date, actor.Username),
		})
	default:
		v := s.validator.WithStore(qtx)
		res := v.Validate(ctx, swap.RequesterID, swap.Date, validation.TypeShiftSwap)
		if res.Passed {
			res = v.Validate(ctx, swap.TargetID, swap.Date, validation.TypeShiftSwap)
		}
		if !res.Passed {
			next = domain.SwapStatusRejectedBySystem
			notices = append(notices,
				notification.Notice{
					UserID:  swap.RequesterID,
					Message: fmt.Sprintf("Your shift swap request for %s was rejected by system: %s", date, res.Message),
				},
				notification.Notice{
					UserID:  swap.TargetID,
					Message: fmt.Sprintf("Shift swap request for %s was rejected by system: %s", date, res.Message),
				},
			)
			break
		}
		next = domain.SwapStatusPendingHOD
		notices = append(notices, notification.Notice{
			UserID: swap.RequesterID,
			Message: fmt.Sprintf(
				"Your shift swap request for %s was accepted by %s and is now pending HOD approval.",
				date, actor.Username,
			),
		})
	}

	if err := s.transition(ctx, tx, qtx, swap, next, actor.ID); err != nil {
		return Outcome{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("respond swap commit failed", zap.String("swap_id", id), zap.Error(err))
		return Outcome{}, err
	}
	s.metrics.SwapTransition(domain.SwapStatusPendingTarget, next)
	s.logger.Info("respond swap success", zap.String("swap_id", id), zap.String("status", next))

	return Outcome{Swap: mapToResponse(*swap), Notices: notices}, nil
}

func (s *service) Decide(ctx context.Context, actor domain.Actor, id string, approve bool) (Outcome, error) {
	s.logger.Debug("decide swap requested",
		zap.String("swap_id", id),
		zap.String("actor_id", actor.ID.String()),
		zap.Bool("approve", approve),
	)

	if !actor.IsHOD() {
		return Outcome{}, shiftswaperrors.ErrNotHOD
	}
	swapID, err := uuid.Parse(id)
	if err != nil {
		return Outcome{}, shiftswaperrors.ErrInvalidSwapID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide swap begin tx failed", zap.Error(err))
		return Outcome{}, err
	}
	defer tx.Rollback()

	qtx := s.store.WithTx(tx)

	swap, err := s.find(ctx, qtx, swapID)
	if err != nil {
		return Outcome{}, err
	}

	next, verdict := domain.SwapStatusRejectedByHOD, "rejected"
	if approve {
		next, verdict = domain.SwapStatusApproved, "approved"
	}

	if err := s.transition(ctx, tx, qtx, swap, next, actor.ID); err != nil {
		return Outcome{}, err
	}

	if approve {
		if err := s.swapRoster(ctx, qtx, *swap); err != nil {
			return Outcome{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide swap commit failed", zap.String("swap_id", id), zap.Error(err))
		return Outcome{}, err
	}
	s.metrics.SwapTransition(domain.SwapStatusPendingHOD, next)
	s.logger.Info("decide swap success", zap.String("swap_id", id), zap.String("status", next))

	date := domain.FormatDate(swap.Date)
	notices := []notification.Notice{
		{
			UserID:  swap.RequesterID,
			Message: fmt.Sprintf("Your shift swap request for %s has been %s by HOD.", date, verdict),
		},
		{
			UserID:  swap.TargetID,
			Message: fmt.Sprintf("The shift swap for %s you accepted has been %s by HOD.", date, verdict),
		},
	}
	return Outcome{Swap: mapToResponse(*swap), Notices: notices}, nil
}

// swapRoster exchanges the two roster rows for the swap date. Each write is
// guarded by the shift recorded on the swap.
func (s *service) swapRoster(ctx context.Context, qtx store.Store, swap domain.ShiftSwap) error {
	writes := []struct {
		userID         uuid.UUID
		expected, next string
	}{
		{swap.RequesterID, swap.RequesterShift, swap.TargetShift},
		{swap.TargetID, swap.TargetShift, swap.RequesterShift},
	}
	for _, w := range writes {
		err := qtx.UpdateRosterShift(ctx, w.userID, swap.Date, w.expected, w.next)
		if errors.Is(err, store.ErrStaleStatus) || errors.Is(err, store.ErrNotFound) {
			s.logger.Warn("decide swap roster changed",
				zap.String("swap_id", swap.ID.String()),
				zap.String("user_id", w.userID.String()),
			)
			return shiftswaperrors.ErrRosterChanged
		}
		if err != nil {
			s.logger.Error("decide swap roster update failed", zap.String("swap_id", swap.ID.String()), zap.Error(err))
			return err
		}
	}
	return nil
}

func (s *service) find(ctx context.Context, st store.Store, id uuid.UUID) (*domain.ShiftSwap, error) {
	swap, err := st.FindSwapByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, shiftswaperrors.ErrSwapNotFound
		}
		s.logger.Error("swap lookup failed", zap.String("swap_id", id.String()), zap.Error(err))
		return nil, err
	}
	return swap, nil
}

// transition moves swap to next under the expected-status guard and records
// the change in the outbox. swap is updated in place.
func (s *service) transition(ctx context.Context, tx *sql.Tx, qtx store.Store, swap *domain.ShiftSwap, next string, actorID uuid.UUID) error {
	from := swap.Status
	if !isAllowedStatusTransition(from, next) {
		s.logger.Warn("swap status transition invalid",
			zap.String("swap_id", swap.ID.String()),
			zap.String("from_status", from),
			zap.String("to_status", next),
		)
		return shiftswaperrors.ErrInvalidStatusTransition
	}

	err := qtx.UpdateSwapStatus(ctx, swap.ID, from, next)
	switch {
	case errors.Is(err, store.ErrStaleStatus):
		return shiftswaperrors.ErrInvalidStatusTransition
	case errors.Is(err, store.ErrNotFound):
		return shiftswaperrors.ErrSwapNotFound
	case err != nil:
		s.logger.Error("swap status persist failed", zap.String("swap_id", swap.ID.String()), zap.Error(err))
		return err
	}
	swap.Status = next
	s.logger.Debug("swap status changed",
		zap.String("swap_id", swap.ID.String()),
		zap.String("from_status", from),
		zap.String("to_status", next),
		zap.Bool("terminal", isTerminal(next)),
	)

	if err := s.writeStatusChanged(ctx, tx, *swap, from, actorID); err != nil {
		s.logger.Error("swap outbox failed", zap.String("swap_id", swap.ID.String()), zap.Error(err))
		return err
	}
	return nil
}

func (s *service) writeStatusChanged(ctx context.Context, tx *sql.Tx, swap domain.ShiftSwap, from string, actorID uuid.UUID) error {
	payload := events.SwapStatusChangedEvent{
		EventType:   "swap_status_changed",
		SwapID:      swap.ID.String(),
		RequesterID: swap.RequesterID.String(),
		TargetID:    swap.TargetID.String(),
		Date:        domain.FormatDate(swap.Date),
		FromStatus:  from,
		ToStatus:    swap.Status,
		ActorID:     actorID.String(),
		OccurredAt:  time.Now().UTC(),
	}
	event, err := kafka.NewEvent(
		contextutil.GetRequestID(ctx),
		events.SwapAggregate,
		swap.ID.String(),
		payload.EventType,
		events.SwapStatusChangedTopic,
		payload,
	)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, event)
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id string) (SwapResponse, error) {
	swapID, err := uuid.Parse(id)
	if err != nil {
		return SwapResponse{}, shiftswaperrors.ErrInvalidSwapID
	}

	swap, err := s.find(ctx, s.store, swapID)
	if err != nil {
		return SwapResponse{}, err
	}
	if !actor.IsHOD() && swap.RequesterID != actor.ID && swap.TargetID != actor.ID {
		return SwapResponse{}, shiftswaperrors.ErrSwapNotFound
	}
	return mapToResponse(*swap), nil
}

func (s *service) GetAll(ctx context.Context, actor domain.Actor, filter ListFilter) ([]SwapResponse, error) {
	f := store.SwapFilter{Status: filter.Status}
	if !actor.IsHOD() {
		f.ParticipantID = &actor.ID
	}

	swaps, err := s.store.ListSwaps(ctx, f)
	if err != nil {
		s.logger.Error("list swaps failed", zap.String("user_id", actor.ID.String()), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(swaps), nil
}

func (s *service) Incoming(ctx context.Context, actor domain.Actor) ([]SwapResponse, error) {
	swaps, err := s.store.ListSwaps(ctx, store.SwapFilter{
		TargetID: &actor.ID,
		Status:   domain.SwapStatusPendingTarget,
	})
	if err != nil {
		s.logger.Error("list incoming swaps failed", zap.String("user_id", actor.ID.String()), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(swaps), nil
}
