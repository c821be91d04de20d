package notification

import (
	"context"
	"errors"

	notificationerrors "github.com/Ashmit12092000/ems/internal/notification/errors"
	"github.com/Ashmit12092000/ems/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	ListFor(ctx context.Context, userID uuid.UUID) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, userID uuid.UUID, id string) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (MarkAllReadResponse, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (UnreadCountResponse, error)
}

type service struct {
	store  store.Store
	logger *zap.Logger
}

func NewService(st store.Store, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{store: st, logger: l}
}

func (s *service) ListFor(ctx context.Context, userID uuid.UUID) ([]NotificationResponse, error) {
	rows, err := s.store.ListNotifications(ctx, userID)
	if err != nil {
		s.logger.Error("list notifications failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}
	res := make([]NotificationResponse, len(rows))
	for i, n := range rows {
		res[i] = mapToResponse(n)
	}
	return res, nil
}

func (s *service) MarkRead(ctx context.Context, userID uuid.UUID, id string) error {
	notificationID, err := uuid.Parse(id)
	if err != nil {
		return notificationerrors.ErrInvalidNotificationID
	}

	if err := s.store.MarkNotificationRead(ctx, notificationID, userID); err != nil {
		// Someone else's notification looks the same as a missing one.
		if errors.Is(err, store.ErrNotFound) {
			return notificationerrors.ErrNotificationNotFound
		}
		s.logger.Error("mark notification read failed", zap.String("notification_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) (MarkAllReadResponse, error) {
	n, err := s.store.MarkAllNotificationsRead(ctx, userID)
	if err != nil {
		s.logger.Error("mark all notifications read failed", zap.String("user_id", userID.String()), zap.Error(err))
		return MarkAllReadResponse{}, err
	}
	return MarkAllReadResponse{Updated: n}, nil
}

func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) (UnreadCountResponse, error) {
	n, err := s.store.CountUnread(ctx, userID)
	if err != nil {
		return UnreadCountResponse{}, err
	}
	return UnreadCountResponse{Unread: n}, nil
}
