// ABOUTME: Connectivity checker for the Azure OpenAI deployment
// ABOUTME: Owned by the composition root; /api/health re-probes, other routes read the cached state

package health

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ProbeFunc performs one connectivity probe against the completion endpoint.
type ProbeFunc func(ctx context.Context) error

// Checker caches the outcome of the last probe. The boot-time probe seeds
// it; /api/health refreshes it on demand, so a transient failure at startup
// does not disable chat until restart.
type Checker struct {
	mu        sync.RWMutex
	connected bool
	lastErr   string
	checkedAt time.Time

	probe ProbeFunc
	log   *zap.Logger
}

func NewChecker(probe ProbeFunc, log *zap.Logger) *Checker {
	return &Checker{
		probe: probe,
		log:   log,
	}
}

// Refresh runs the probe and stores the outcome. Returns the new state.
func (c *Checker) Refresh(ctx context.Context) bool {
	err := c.probe(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.checkedAt = time.Now()
	if err != nil {
		c.connected = false
		c.lastErr = err.Error()
		c.log.Warn("Azure OpenAI connectivity probe failed", zap.Error(err))
		return false
	}

	c.connected = true
	c.lastErr = ""
	c.log.Info("Azure OpenAI connectivity probe succeeded")
	return true
}

// Connected reports the cached state without probing.
func (c *Checker) Connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// LastError returns the failure text from the most recent probe, empty when
// connected.
func (c *Checker) LastError() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// CheckedAt returns when the state was last refreshed.
func (c *Checker) CheckedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.checkedAt
}
