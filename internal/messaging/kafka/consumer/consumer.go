package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Ashmit12092000/ems/internal/domain"
	"github.com/Ashmit12092000/ems/internal/events"
	"github.com/Ashmit12092000/ems/internal/shared/apperror"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var (
	retryDelay    = time.Second
	maxRetryDelay = 30 * time.Second
)

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// LeaveRecorder marks a user as on leave for a date. Implementations must be
// idempotent since a message can be delivered more than once.
type LeaveRecorder interface {
	RecordLeave(ctx context.Context, userID uuid.UUID, date string) error
}

// ConsumeRequestStatusChanged handles one message at a time. A message that
// fails with a transient error is retried in place until it succeeds or ctx
// ends, so no later offset is ever committed past it.
func ConsumeRequestStatusChanged(
	ctx context.Context,
	reader MessageReader,
	recorder LeaveRecorder,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.request_status")
	log.Info("request status consumer started")

	fetchDelay := retryDelay
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("request status consumer stopped")
				return
			}
			log.Error("fetch request status message failed",
				zap.Duration("retry_in", fetchDelay),
				zap.Error(err),
			)
			if !sleep(ctx, fetchDelay) {
				log.Info("request status consumer stopped")
				return
			}
			fetchDelay = nextDelay(fetchDelay)
			continue
		}
		fetchDelay = retryDelay

		if !handleWithRetry(ctx, msg, recorder, log) {
			// Uncommitted, so the group hands it out again after restart.
			log.Info("request status consumer stopped", zap.Int64("pending_offset", msg.Offset))
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit request status message failed", zap.Error(err))
		}
	}
}

// handleWithRetry reports false only when ctx ended before msg was handled.
func handleWithRetry(ctx context.Context, msg kafkago.Message, recorder LeaveRecorder, log *zap.Logger) bool {
	delay := retryDelay
	for {
		err := handleRequestStatusChanged(ctx, msg, recorder, log)
		if err == nil {
			return true
		}
		log.Error("record leave attendance failed",
			zap.Int64("offset", msg.Offset),
			zap.Duration("retry_in", delay),
			zap.Error(err),
		)
		if !sleep(ctx, delay) {
			return false
		}
		delay = nextDelay(delay)
	}
}

// handleRequestStatusChanged returns an error only when the message should
// be retried. Undecodable, invalid or irrelevant messages are skipped.
func handleRequestStatusChanged(ctx context.Context, msg kafkago.Message, recorder LeaveRecorder, log *zap.Logger) error {
	var event events.RequestStatusChangedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode request_status_changed event failed", zap.Error(err))
		return nil
	}

	if event.RequestType != domain.RequestTypeLeave || event.Status != domain.RequestStatusApproved {
		return nil
	}

	userID, err := uuid.Parse(event.UserID)
	if err != nil {
		log.Error("invalid user id in event", zap.String("request_id", event.RequestID), zap.Error(err))
		return nil
	}

	if err := recorder.RecordLeave(ctx, userID, event.Date); err != nil {
		if isPermanent(err) {
			log.Error("skip request_status_changed event",
				zap.String("request_id", event.RequestID),
				zap.String("date", event.Date),
				zap.Error(err),
			)
			return nil
		}
		return fmt.Errorf("request %s: %w", event.RequestID, err)
	}

	log.Info("leave attendance recorded from request_status_changed event",
		zap.String("request_id", event.RequestID),
		zap.String("user_id", event.UserID),
		zap.String("date", event.Date),
	)
	return nil
}

// isPermanent treats client-class app errors as unrecoverable for this
// message. Everything else is assumed transient.
func isPermanent(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.HTTPStatus < http.StatusInternalServerError
}

func nextDelay(d time.Duration) time.Duration {
	d *= 2
	if d > maxRetryDelay {
		return maxRetryDelay
	}
	return d
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
