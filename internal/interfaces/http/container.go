package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/caseguard/caseguard/internal/application/workflow/usecases"
	"github.com/caseguard/caseguard/internal/infrastructure/config"
	"github.com/caseguard/caseguard/internal/infrastructure/scheduler"
	"github.com/caseguard/caseguard/internal/interfaces/http/middleware"
	"github.com/caseguard/caseguard/internal/shared/biztime"
	"github.com/caseguard/caseguard/internal/shared/db"
	"github.com/caseguard/caseguard/internal/shared/logger"
)

// Container wires infrastructure, repositories, use cases and handlers, and
// owns the background scheduler. Shutdown releases everything it opened.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client
	clock  biztime.Clock

	repos *repositories
	svcs  *services
	ucs   *allUseCases
	hdlrs *allHandlers

	rateLimiter      *middleware.RateLimiter
	schedulerManager *scheduler.SchedulerManager
}

// Option customizes a Container before wiring.
type Option func(*Container)

// WithClock replaces the wall clock used by every use case.
func WithClock(clock biztime.Clock) Option {
	return func(c *Container) { c.clock = clock }
}

// WithRedisClient uses an existing client instead of dialing cfg.Redis.
func WithRedisClient(client *redis.Client) Option {
	return func(c *Container) { c.redis = client }
}

// NewContainer creates a new Container with all dependencies wired together.
func NewContainer(gdb *gorm.DB, cfg *config.Config, log logger.Interface, opts ...Option) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     gdb,
		cfg:    cfg,
		log:    log,
		clock:  biztime.SystemClock(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.redis == nil && cfg.Redis.Enabled {
		client, err := initRedis(cfg, log)
		if err != nil {
			return nil, err
		}
		c.redis = client
	}

	c.repos = newRepositories(gdb)
	c.svcs = newServices(cfg, c.redis, log)
	c.ucs = newUseCases(
		c.repos,
		c.svcs,
		db.NewTransactionManager(gdb),
		c.clock,
		usecases.NewEngineConfig(cfg.Workflow),
		log,
	)
	c.hdlrs = c.newHandlers()

	if c.redis != nil && cfg.Server.RateLimitPerMinute > 0 {
		c.rateLimiter = middleware.NewRateLimiter(c.redis, cfg.Server.RateLimitPerMinute, time.Minute, log.Named("rate_limiter"))
	}

	return c, nil
}

// Engine returns the workflow engine facade.
func (c *Container) Engine() *usecases.Engine {
	return c.ucs.engine
}

// SweepBreaches returns the breach sweep use case.
func (c *Container) SweepBreaches() usecases.SweepBreachesExecutor {
	return c.ucs.sweepUC
}

// ImportWorkflow returns the organization import use case.
func (c *Container) ImportWorkflow() usecases.ImportWorkflowExecutor {
	return c.ucs.importWorkflowUC
}

// StartScheduler registers the breach sweep and starts the scheduler. A
// non-positive sweep interval leaves the scheduler off.
func (c *Container) StartScheduler() error {
	interval := c.cfg.Workflow.SweepInterval
	if interval <= 0 {
		c.log.Infow("breach sweep disabled", "interval", interval)
		return nil
	}

	manager, err := scheduler.NewSchedulerManager(c.log.Named("scheduler"))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	job := scheduler.NewBreachSweepJob(c.ucs.sweepUC, c.log.Named("breach_sweep"))
	if err := manager.RegisterBreachSweepJob(job, interval); err != nil {
		return fmt.Errorf("failed to register breach sweep: %w", err)
	}

	manager.Start()
	c.schedulerManager = manager
	return nil
}

// Shutdown stops the scheduler, waiting for an in-flight sweep, then closes
// the Redis client. The database is owned by the caller.
func (c *Container) Shutdown(ctx context.Context) {
	if c.schedulerManager != nil {
		done := make(chan struct{})
		go func() {
			defer close(done)
			if err := c.schedulerManager.Stop(); err != nil {
				c.log.Errorw("failed to stop scheduler", "error", err)
			}
		}()
		select {
		case <-done:
		case <-ctx.Done():
			c.log.Warnw("scheduler did not stop before shutdown deadline")
		}
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close Redis client", "error", err)
		}
	}
}
