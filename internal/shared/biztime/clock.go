// Package biztime provides the time source used by the workflow engine.
// All timestamps are stored and compared in UTC.
package biztime

import (
	"sync"
	"time"
)

// Clock abstracts "now" so SLA classification can be tested with fixed
// instants.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// SystemClock returns a Clock reading the wall clock in UTC.
func SystemClock() Clock { return systemClock{} }

func (systemClock) Now() time.Time { return time.Now().UTC() }

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ManualClock is a Clock that only moves when told to.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewManualClock(t time.Time) *ManualClock {
	return &ManualClock{now: t.UTC()}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t.UTC()
	c.mu.Unlock()
}

func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// FormatRFC3339 formats t in UTC for API responses and log details.
func FormatRFC3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
