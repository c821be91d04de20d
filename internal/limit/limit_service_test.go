package limit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Ashmit12092000/ems/internal/domain"
	"github.com/Ashmit12092000/ems/internal/limit"
	limiterrors "github.com/Ashmit12092000/ems/internal/limit/errors"
	"github.com/Ashmit12092000/ems/internal/store/storefake"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLimitService_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("success invalidates cache", func(t *testing.T) {
		st := storefake.New()
		rdb, redisMock := redismock.NewClientMock()
		svc := limit.NewService(st, rdb, time.Hour, zap.NewNop())

		redisMock.ExpectDel(limit.LimitAllKey).SetVal(1)

		resp, err := svc.Upsert(ctx, domain.RequestTypeLeave, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Value)
		assert.False(t, resp.Unlimited)

		stored, err := st.FindMonthlyLimit(ctx, domain.RequestTypeLeave)
		require.NoError(t, err)
		assert.Equal(t, 2, stored.Value)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("success cache delete error is logged only", func(t *testing.T) {
		st := storefake.New()
		rdb, redisMock := redismock.NewClientMock()
		svc := limit.NewService(st, rdb, time.Hour, zap.NewNop())

		redisMock.ExpectDel(limit.LimitAllKey).SetErr(errors.New("redis down"))

		_, err := svc.Upsert(ctx, domain.RequestTypeShift, 0)
		assert.NoError(t, err)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("negative input", func(t *testing.T) {
		svc := limit.NewService(storefake.New(), nil, 0, zap.NewNop())

		_, err := svc.Upsert(ctx, "vacation", 2)
		assert.ErrorIs(t, err, limiterrors.ErrInvalidLimitType)

		_, err = svc.Upsert(ctx, domain.RequestTypeLeave, 32)
		assert.ErrorIs(t, err, limiterrors.ErrInvalidLimitValue)

		_, err = svc.Upsert(ctx, domain.RequestTypeLeave, -1)
		assert.ErrorIs(t, err, limiterrors.ErrInvalidLimitValue)
	})

	t.Run("negative store error skips invalidation", func(t *testing.T) {
		st := storefake.New()
		st.FailOn("UpsertMonthlyLimit", errors.New("db down"))
		rdb, redisMock := redismock.NewClientMock()
		svc := limit.NewService(st, rdb, time.Hour, zap.NewNop())

		_, err := svc.Upsert(ctx, domain.RequestTypeLeave, 3)
		assert.EqualError(t, err, "db down")
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}

func TestLimitService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("success served from cache until upsert", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		st := storefake.New()
		st.SetLimit(domain.RequestTypeLeave, 2)
		svc := limit.NewService(st, rdb, time.Hour, zap.NewNop())

		first, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, first, 1)
		assert.True(t, mr.Exists(limit.LimitAllKey))

		st.SetLimit(domain.RequestTypePermission, 4)
		cached, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Len(t, cached, 1)

		_, err = svc.Upsert(ctx, domain.RequestTypeShift, 1)
		require.NoError(t, err)
		assert.False(t, mr.Exists(limit.LimitAllKey))

		fresh, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, fresh, 3)
		assert.Equal(t, domain.RequestTypeLeave, fresh[0].LimitType)
	})

	t.Run("success without redis", func(t *testing.T) {
		st := storefake.New()
		st.SetLimit(domain.RequestTypeLeave, 5)
		svc := limit.NewService(st, nil, time.Hour, zap.NewNop())

		resp, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, 5, resp[0].Value)
	})

	t.Run("negative store error", func(t *testing.T) {
		st := storefake.New()
		st.FailOn("ListMonthlyLimits", errors.New("timeout"))
		svc := limit.NewService(st, nil, time.Hour, zap.NewNop())

		_, err := svc.List(ctx)
		assert.EqualError(t, err, "timeout")
	})
}

func TestLimitService_Get(t *testing.T) {
	ctx := context.Background()
	st := storefake.New()
	st.SetLimit(domain.RequestTypeLeave, 2)
	svc := limit.NewService(st, nil, time.Hour, zap.NewNop())

	resp, err := svc.Get(ctx, domain.RequestTypeLeave)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Value)

	resp, err = svc.Get(ctx, domain.RequestTypeShift)
	require.NoError(t, err)
	assert.True(t, resp.Unlimited)

	_, err = svc.Get(ctx, "overtime")
	assert.ErrorIs(t, err, limiterrors.ErrInvalidLimitType)

	st.FailOn("FindMonthlyLimit", errors.New("db down"))
	_, err = svc.Get(ctx, domain.RequestTypeLeave)
	assert.EqualError(t, err, "db down")
}
