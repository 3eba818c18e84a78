package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// escalationGuardPrefix namespaces guard keys.
// Format: caseguard:escalation_guard:{organization_id}:{dedupe_key}
const escalationGuardPrefix = "caseguard:escalation_guard:"

// RedisEscalationGuard serializes escalations for one dedupe key across
// instances. A held key is not released after a committed escalation, so
// it doubles as a cooldown until its TTL expires.
type RedisEscalationGuard struct {
	client *redis.Client
}

func NewRedisEscalationGuard(client *redis.Client) *RedisEscalationGuard {
	return &RedisEscalationGuard{client: client}
}

// Acquire uses SetNX so that check and set are a single step.
func (g *RedisEscalationGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	acquired, err := g.client.SetNX(ctx, escalationGuardPrefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire escalation guard: %w", err)
	}
	return acquired, nil
}

func (g *RedisEscalationGuard) Release(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, escalationGuardPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release escalation guard: %w", err)
	}
	return nil
}

// MemoryEscalationGuard is the single-process guard used when Redis is
// disabled.
type MemoryEscalationGuard struct {
	mu   sync.Mutex
	held map[string]time.Time
	now  func() time.Time
}

func NewMemoryEscalationGuard() *MemoryEscalationGuard {
	return NewMemoryEscalationGuardWithClock(time.Now)
}

func NewMemoryEscalationGuardWithClock(now func() time.Time) *MemoryEscalationGuard {
	return &MemoryEscalationGuard{
		held: make(map[string]time.Time),
		now:  now,
	}
}

func (g *MemoryEscalationGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if expiry, ok := g.held[key]; ok && now.Before(expiry) {
		return false, nil
	}
	g.held[key] = now.Add(ttl)
	g.evictExpired(now)
	return true, nil
}

func (g *MemoryEscalationGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	delete(g.held, key)
	g.mu.Unlock()
	return nil
}

// evictExpired keeps the map bounded; caller holds mu.
func (g *MemoryEscalationGuard) evictExpired(now time.Time) {
	for key, expiry := range g.held {
		if !now.Before(expiry) {
			delete(g.held, key)
		}
	}
}
