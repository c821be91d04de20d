package notification_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Ashmit12092000/ems/internal/domain"
	"github.com/Ashmit12092000/ems/internal/notification"
	notificationerrors "github.com/Ashmit12092000/ems/internal/notification/errors"
	"github.com/Ashmit12092000/ems/internal/store/storefake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, st *storefake.Store, userID uuid.UUID, msgs ...string) []uuid.UUID {
	t.Helper()
	ids := make([]uuid.UUID, 0, len(msgs))
	for _, m := range msgs {
		n := &domain.Notification{UserID: userID, Message: m}
		require.NoError(t, st.InsertNotification(context.Background(), n))
		ids = append(ids, n.ID)
	}
	return ids
}

func TestNotificationService(t *testing.T) {
	ctx := context.Background()

	t.Run("list newest first and unread count", func(t *testing.T) {
		st := storefake.New()
		svc := notification.NewService(st)
		me, other := uuid.New(), uuid.New()
		seed(t, st, me, "one", "two")
		seed(t, st, other, "not mine")

		list, err := svc.ListFor(ctx, me)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "two", list[0].Message)

		count, err := svc.UnreadCount(ctx, me)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count.Unread)
	})

	t.Run("mark read and mark all", func(t *testing.T) {
		st := storefake.New()
		svc := notification.NewService(st)
		me := uuid.New()
		ids := seed(t, st, me, "one", "two", "three")

		require.NoError(t, svc.MarkRead(ctx, me, ids[0].String()))

		res, err := svc.MarkAllRead(ctx, me)
		require.NoError(t, err)
		assert.Equal(t, int64(2), res.Updated)

		count, err := svc.UnreadCount(ctx, me)
		require.NoError(t, err)
		assert.Zero(t, count.Unread)
	})

	t.Run("negative mark read of another user's notification", func(t *testing.T) {
		st := storefake.New()
		svc := notification.NewService(st)
		ids := seed(t, st, uuid.New(), "theirs")

		err := svc.MarkRead(ctx, uuid.New(), ids[0].String())
		assert.ErrorIs(t, err, notificationerrors.ErrNotificationNotFound)
	})

	t.Run("negative invalid id", func(t *testing.T) {
		svc := notification.NewService(storefake.New())
		err := svc.MarkRead(ctx, uuid.New(), "nope")
		assert.ErrorIs(t, err, notificationerrors.ErrInvalidNotificationID)
	})

	t.Run("negative store error", func(t *testing.T) {
		st := storefake.New()
		st.FailOn("ListNotifications", errors.New("db down"))
		_, err := notification.NewService(st).ListFor(ctx, uuid.New())
		assert.Error(t, err)
	})
}
