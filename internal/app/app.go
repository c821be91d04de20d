package app

import (
	"context"
	"net/http"
	"time"

	"github.com/Ashmit12092000/ems/internal/config"
	"github.com/Ashmit12092000/ems/internal/middleware"
	"github.com/Ashmit12092000/ems/internal/observability"
	"github.com/Ashmit12092000/ems/internal/shared/connection"
	"github.com/Ashmit12092000/ems/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// BuildApp connects infrastructure, registers every module on router and
// returns a cleanup func that releases the connections.
func BuildApp(ctx context.Context, router *gin.Engine, cfg *config.Config, logger *zap.Logger) (func(), error) {
	st, err := openStorageMigrated(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	cleanups := []func(){st.close}
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis, cfg.Database.ConnectRetries, logger)
	if err != nil {
		cleanup()
		return nil, err
	}
	cleanups = append(cleanups, func() { _ = rdb.Close() })

	// Kafka is optional for the API. Without it notifications are only stored.
	var writer *kafkago.Writer
	if cfg.Kafka.Enabled() {
		writer, err = connection.ConnectKafkaWithRetry(cfg.Kafka.Brokers, cfg.Database.ConnectRetries, logger)
		if err != nil {
			cleanup()
			return nil, err
		}
		cleanups = append(cleanups, func() { _ = writer.Close() })
	} else {
		logger.Warn("kafka not configured, notification events disabled")
	}

	metrics := observability.NewMetrics()
	router.Use(metrics.Middleware())
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(logger))

	if err := registerModules(router, moduleDeps{
		db:      st.db,
		store:   st.store,
		rdb:     rdb,
		writer:  writer,
		metrics: metrics,
		cfg:     cfg,
		logger:  logger,
	}); err != nil {
		cleanup()
		return nil, err
	}

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/healthz", healthHandler(st, rdb))

	return cleanup, nil
}

func healthHandler(st *storage, rdb redis.Cmdable) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{"database": "ok", "redis": "ok"}
		healthy := true
		if err := st.db.PingContext(ctx); err != nil {
			checks["database"] = err.Error()
			healthy = false
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		}

		if !healthy {
			response.Error(c, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency check failed", checks)
			return
		}
		response.Success(c, http.StatusOK, checks, nil)
	}
}
