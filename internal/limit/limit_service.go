package limit

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Ashmit12092000/ems/internal/domain"
	limiterrors "github.com/Ashmit12092000/ems/internal/limit/errors"
	"github.com/Ashmit12092000/ems/internal/store"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const LimitAllKey = "limits:all"

//go:generate mockgen -source=limit_service.go -destination=mock/limit_service_mock.go -package=mock
type Service interface {
	Upsert(ctx context.Context, limitType string, value int) (LimitResponse, error)
	List(ctx context.Context) ([]LimitResponse, error)
	Get(ctx context.Context, limitType string) (LimitResponse, error)
}

type service struct {
	store  store.Store
	rdb    redis.Cmdable
	ttl    time.Duration
	sf     *singleflight.Group
	logger *zap.Logger
}

// NewService caches List in rdb for ttl. A nil rdb disables caching.
func NewService(st store.Store, rdb redis.Cmdable, ttl time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("limit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("limit.service")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &service{store: st, rdb: rdb, ttl: ttl, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Upsert(ctx context.Context, limitType string, value int) (LimitResponse, error) {
	if !domain.ValidRequestType(limitType) {
		return LimitResponse{}, limiterrors.ErrInvalidLimitType
	}
	if value < 0 || value > domain.MaxMonthlyLimit {
		return LimitResponse{}, limiterrors.ErrInvalidLimitValue
	}

	l := &domain.MonthlyLimit{LimitType: limitType, Value: value}
	if err := s.store.UpsertMonthlyLimit(ctx, l); err != nil {
		s.logger.Error("upsert limit persist failed", zap.String("limit_type", limitType), zap.Error(err))
		return LimitResponse{}, err
	}

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, LimitAllKey).Err(); err != nil {
			s.logger.Error("invalidate limit cache failed", zap.String("key", LimitAllKey), zap.Error(err))
		}
	}

	s.logger.Info("upsert limit success", zap.String("limit_type", limitType), zap.Int("value", value))
	return mapToResponse(*l), nil
}

func (s *service) List(ctx context.Context) ([]LimitResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, LimitAllKey).Result()
		if err == nil {
			var resp []LimitResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("read limit cache failed", zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(LimitAllKey, func() (any, error) {
		limits, err := s.store.ListMonthlyLimits(ctx)
		if err != nil {
			return nil, err
		}
		resp := mapToListResponse(limits)

		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, LimitAllKey, data, s.ttl).Err(); err != nil {
					s.logger.Warn("write limit cache failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("list limits failed", zap.Error(err))
		return nil, err
	}
	return v.([]LimitResponse), nil
}

func (s *service) Get(ctx context.Context, limitType string) (LimitResponse, error) {
	if !domain.ValidRequestType(limitType) {
		return LimitResponse{}, limiterrors.ErrInvalidLimitType
	}

	l, err := s.store.FindMonthlyLimit(ctx, limitType)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return LimitResponse{LimitType: limitType, Unlimited: true}, nil
		}
		s.logger.Error("get limit failed", zap.String("limit_type", limitType), zap.Error(err))
		return LimitResponse{}, err
	}
	return mapToResponse(*l), nil
}
