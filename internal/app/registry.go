package app

import (
	"database/sql"
	"time"

	"github.com/Ashmit12092000/ems/internal/attendance"
	"github.com/Ashmit12092000/ems/internal/auth"
	"github.com/Ashmit12092000/ems/internal/auth/token"
	"github.com/Ashmit12092000/ems/internal/config"
	"github.com/Ashmit12092000/ems/internal/limit"
	"github.com/Ashmit12092000/ems/internal/messaging/kafka"
	"github.com/Ashmit12092000/ems/internal/middleware"
	"github.com/Ashmit12092000/ems/internal/notification"
	"github.com/Ashmit12092000/ems/internal/observability"
	"github.com/Ashmit12092000/ems/internal/rbac"
	"github.com/Ashmit12092000/ems/internal/request"
	"github.com/Ashmit12092000/ems/internal/roster"
	"github.com/Ashmit12092000/ems/internal/shiftswap"
	"github.com/Ashmit12092000/ems/internal/store"
	"github.com/Ashmit12092000/ems/internal/user"
	"github.com/Ashmit12092000/ems/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const idempotencyTTL = 24 * time.Hour

type moduleDeps struct {
	db      *sql.DB
	store   store.Store
	rdb     *redis.Client
	writer  *kafkago.Writer
	metrics *observability.Metrics
	cfg     *config.Config
	logger  *zap.Logger
}

func registerModules(router *gin.Engine, d moduleDeps) error {
	// --- Shared ---
	rbacService, err := rbac.NewDefaultService(d.logger)
	if err != nil {
		return err
	}
	tokens := token.NewManager(d.cfg.Auth.JWTSecret, d.cfg.Auth.AccessTokenTTL, d.cfg.Auth.RefreshTokenTTL)
	outboxRepo := kafka.NewOutboxRepository(d.db)
	validator := validation.New(d.store, d.logger)

	// A typed nil writer must not reach the publisher constructor.
	publisher := notification.NewKafkaEventPublisher(nil)
	if d.writer != nil {
		publisher = notification.NewKafkaEventPublisher(d.writer)
	}
	dispatcher := notification.NewDispatcher(d.store, publisher, d.metrics, d.logger)

	authMW := middleware.AuthMiddleware(tokens)
	idempotent := middleware.Idempotency(d.rdb, idempotencyTTL)

	// --- Services ---
	authService := auth.NewService(d.store, tokens, d.logger)
	userService := user.NewService(d.store, d.logger)
	requestService := request.NewService(d.db, d.store, validator, outboxRepo, d.metrics, d.logger)
	swapService := shiftswap.NewService(d.db, d.store, validator, outboxRepo, d.metrics, d.logger)
	rosterService := roster.NewService(d.store, d.logger)
	limitService := limit.NewService(d.store, d.rdb, d.cfg.Redis.CacheTTL, d.logger)
	attendanceService := attendance.NewService(d.store, d.logger)
	notificationService := notification.NewService(d.store, d.logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, auth.CookieConfig{
		Secure:     d.cfg.Server.IsProduction(),
		AccessTTL:  d.cfg.Auth.AccessTokenTTL,
		RefreshTTL: d.cfg.Auth.RefreshTokenTTL,
	}, d.logger)
	userHandler := user.NewHandler(userService, d.logger)
	requestHandler := request.NewHandler(requestService, dispatcher, d.logger)
	swapHandler := shiftswap.NewHandler(swapService, dispatcher, d.logger)
	rosterHandler := roster.NewHandler(rosterService, d.logger)
	limitHandler := limit.NewHandler(limitService, d.logger)
	attendanceHandler := attendance.NewHandler(attendanceService, d.logger)
	notificationHandler := notification.NewHandler(notificationService, d.logger)
	rbacHandler := rbac.NewHandler(rbacService, d.logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, authMW, middleware.OptionalAuth(tokens))
		user.RegisterRoutes(api, userHandler, authMW, rbacService)
		request.RegisterRoutes(api, requestHandler, authMW, rbacService, idempotent)
		shiftswap.RegisterRoutes(api, swapHandler, authMW, rbacService, idempotent)
		roster.RegisterRoutes(api, rosterHandler, authMW, rbacService)
		limit.RegisterRoutes(api, limitHandler, authMW, rbacService)
		attendance.RegisterRoutes(api, attendanceHandler, authMW, rbacService)
		notification.RegisterRoutes(api, notificationHandler, authMW, rbacService)
		rbac.RegisterRoutes(api, rbacHandler, authMW)
	}

	return nil
}
