package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/caseguard/caseguard/internal/application/workflow/usecases"
	"github.com/caseguard/caseguard/internal/infrastructure/cache"
	"github.com/caseguard/caseguard/internal/infrastructure/config"
	"github.com/caseguard/caseguard/internal/infrastructure/metrics"
	"github.com/caseguard/caseguard/internal/infrastructure/pubsub"
	"github.com/caseguard/caseguard/internal/shared/constants"
	"github.com/caseguard/caseguard/internal/shared/logger"
)

// services holds the engine's outbound ports.
type services struct {
	guard          usecases.EscalationGuard
	notifier       usecases.Notifier
	metrics        usecases.Metrics
	metricsHandler http.Handler
}

func initRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	timeout := cfg.Workflow.UpstreamTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Redis.GetAddr(), err)
	}
	log.Infow("Redis connection established successfully", "address", cfg.Redis.GetAddr())

	return redisClient, nil
}

// newServices picks Redis-backed adapters when a client is available and
// process-local ones otherwise. The in-memory guard only deduplicates
// escalations within a single instance.
func newServices(cfg *config.Config, redisClient *redis.Client, log logger.Interface) *services {
	svcs := &services{metrics: usecases.NopMetrics{}}

	if redisClient != nil {
		channel := cfg.Workflow.NotificationChannel
		if channel == "" {
			channel = constants.DefaultNotifyChannel
		}
		svcs.guard = cache.NewRedisEscalationGuard(redisClient)
		svcs.notifier = pubsub.NewRedisWorkflowEventBus(redisClient, channel, log.Named("event_bus"))
	} else {
		log.Warnw("Redis disabled, using in-process escalation guard and log notifier")
		svcs.guard = cache.NewMemoryEscalationGuard()
		svcs.notifier = pubsub.NewLogNotifier(log.Named("notifier"))
	}

	if cfg.Metrics.Enabled {
		m := metrics.NewWorkflowMetrics(cfg.Metrics.Namespace)
		svcs.metrics = m
		svcs.metricsHandler = m.Handler()
	}

	return svcs
}
