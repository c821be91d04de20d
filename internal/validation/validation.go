// Package validation holds the pre-submission rules shared by requests and
// shift swaps: the monthly leave quota and the duty roster conflict.
package validation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ashmit12092000/ems/internal/domain"
	"github.com/Ashmit12092000/ems/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TypeShiftSwap is validated like a request but skips the roster check,
// since both sides of a swap are expected to be on duty.
const TypeShiftSwap = "shift_swap"

const (
	MessagePassed       = "Validation passed"
	MessageLimitFailure = "Could not verify monthly limit."
	MessageRosterFailed = "Could not verify duty roster."
	MessageUnexpected   = "An unexpected error occurred during validation."
)

var countedStatuses = []string{domain.RequestStatusApproved, domain.RequestStatusPending}

type Result struct {
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

func pass() Result {
	return Result{Passed: true, Message: MessagePassed}
}

func fail(msg string) Result {
	return Result{Passed: false, Message: msg}
}

//go:generate mockgen -source=validation.go -destination=mock/validation_mock.go -package=mock
type Validator interface {
	Validate(ctx context.Context, userID uuid.UUID, date time.Time, requestType string) Result
	// WithStore binds the validator to another store, typically one
	// returned by store.WithTx.
	WithStore(st store.Store) Validator
}

type validator struct {
	store  store.Store
	logger *zap.Logger
}

func New(st store.Store, logger ...*zap.Logger) Validator {
	l := zap.L().Named("validation")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("validation")
	}
	return &validator{store: st, logger: l}
}

func (v *validator) WithStore(st store.Store) Validator {
	return &validator{store: st, logger: v.logger}
}

// Validate never returns store errors. Lookup failures become a failed
// Result with a generic message and are logged.
func (v *validator) Validate(ctx context.Context, userID uuid.UUID, date time.Time, requestType string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			v.logger.Error("validation panicked",
				zap.String("user_id", userID.String()),
				zap.Any("panic", r),
			)
			res = fail(MessageUnexpected)
		}
	}()

	switch requestType {
	case domain.RequestTypeLeave, domain.RequestTypePermission, TypeShiftSwap:
	default:
		v.logger.Error("validation unknown request type",
			zap.String("user_id", userID.String()),
			zap.String("request_type", requestType),
		)
		return fail(MessageUnexpected)
	}

	if r := v.checkMonthlyLimit(ctx, userID, date); !r.Passed {
		return r
	}

	if requestType != TypeShiftSwap {
		if r := v.checkRosterConflict(ctx, userID, date); !r.Passed {
			return r
		}
	}

	return pass()
}

// checkMonthlyLimit compares the user's pending and approved leave in
// date's month against the leave limit. No limit row means unlimited.
func (v *validator) checkMonthlyLimit(ctx context.Context, userID uuid.UUID, date time.Time) Result {
	limit, err := v.store.FindMonthlyLimit(ctx, domain.RequestTypeLeave)
	if errors.Is(err, store.ErrNotFound) {
		return pass()
	}
	if err != nil {
		v.logger.Error("validation find monthly limit failed",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return fail(MessageLimitFailure)
	}

	count, err := v.store.CountRequests(ctx, store.CountFilter{
		UserID:   userID,
		Type:     domain.RequestTypeLeave,
		Statuses: countedStatuses,
		Month:    date,
	})
	if err != nil {
		v.logger.Error("validation count requests failed",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return fail(MessageLimitFailure)
	}

	if count >= int64(limit.Value) {
		return fail(fmt.Sprintf("You have reached your monthly limit of %d leave requests.", limit.Value))
	}
	return pass()
}

func (v *validator) checkRosterConflict(ctx context.Context, userID uuid.UUID, date time.Time) Result {
	_, err := v.store.FindRosterEntry(ctx, userID, date)
	if errors.Is(err, store.ErrNotFound) {
		return pass()
	}
	if err != nil {
		v.logger.Error("validation find roster entry failed",
			zap.String("user_id", userID.String()),
			zap.String("date", domain.FormatDate(date)),
			zap.Error(err),
		)
		return fail(MessageRosterFailed)
	}

	return fail(fmt.Sprintf(
		"You have a duty scheduled on %s. Please request a shift adjustment instead.",
		domain.FormatDate(date),
	))
}
