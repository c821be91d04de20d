package notification

import (
	"context"
	"time"

	"github.com/Ashmit12092000/ems/internal/domain"
	"github.com/Ashmit12092000/ems/internal/events"
	"github.com/Ashmit12092000/ems/internal/observability"
	"github.com/Ashmit12092000/ems/internal/shared/contextutil"
	"github.com/Ashmit12092000/ems/internal/store"

	"go.uber.org/zap"
)

//go:generate mockgen -source=notification_dispatcher.go -destination=mock/dispatcher_mock.go -package=mock
type Dispatcher interface {
	// Dispatch stores and publishes every notice. Failures are logged and
	// counted per notice; they never reach the caller.
	Dispatch(ctx context.Context, notices []Notice)
}

type dispatcher struct {
	store     store.Store
	publisher EventPublisher
	metrics   *observability.Metrics
	logger    *zap.Logger
}

func NewDispatcher(st store.Store, publisher EventPublisher, metrics *observability.Metrics, logger ...*zap.Logger) Dispatcher {
	l := zap.L().Named("notification.dispatcher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.dispatcher")
	}
	if publisher == nil {
		publisher = noopEventPublisher{}
	}
	return &dispatcher{store: st, publisher: publisher, metrics: metrics, logger: l}
}

func (d *dispatcher) Dispatch(ctx context.Context, notices []Notice) {
	if len(notices) == 0 {
		return
	}

	// Runs after the workflow committed, so a client disconnect must not
	// drop the notices.
	ctx = context.WithoutCancel(ctx)
	rid := contextutil.GetRequestID(ctx)

	for _, notice := range notices {
		n := &domain.Notification{UserID: notice.UserID, Message: notice.Message}
		if err := d.store.InsertNotification(ctx, n); err != nil {
			d.metrics.NotificationFailed()
			d.logger.Error("insert notification failed",
				zap.String("request_id", rid),
				zap.String("user_id", notice.UserID.String()),
				zap.Error(err),
			)
			continue
		}
		d.metrics.NotificationSent()

		event := events.NotificationCreatedEvent{
			EventType:      "notification_created",
			NotificationID: n.ID.String(),
			UserID:         notice.UserID.String(),
			Message:        notice.Message,
			OccurredAt:     time.Now().UTC(),
		}
		if err := d.publisher.PublishNotificationCreated(ctx, event); err != nil {
			d.logger.Warn("publish notification_created failed",
				zap.String("request_id", rid),
				zap.String("notification_id", n.ID.String()),
				zap.Error(err),
			)
		}
	}

	d.logger.Debug("notifications dispatched", zap.String("request_id", rid), zap.Int("count", len(notices)))
}
