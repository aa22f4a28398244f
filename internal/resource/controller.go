package resource

import (
	"context"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits for query execution.
type Config struct {
	// MaxConcurrentScans is the maximum number of snapshot scans running
	// at once. If 0, defaults to 1.
	MaxConcurrentScans int64

	// ReevaluationsPerSecond is the sustained rate of membership
	// re-evaluations. If 0, unlimited.
	ReevaluationsPerSecond float64

	// ReevaluationBurst is the burst size of the re-evaluation limiter.
	// If 0, defaults to 1 when a rate is set.
	ReevaluationBurst int
}

// Controller limits concurrent snapshot scans and the re-evaluation rate.
type Controller struct {
	scanSem       *semaphore.Weighted
	reevalLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentScans <= 0 {
		cfg.MaxConcurrentScans = 1
	}

	c := &Controller{
		scanSem: semaphore.NewWeighted(cfg.MaxConcurrentScans),
	}

	if cfg.ReevaluationsPerSecond > 0 {
		burst := cfg.ReevaluationBurst
		if burst <= 0 {
			burst = 1
		}
		c.reevalLimiter = rate.NewLimiter(rate.Limit(cfg.ReevaluationsPerSecond), burst)
	}

	return c
}

// AcquireScan reserves a scan slot. Blocks while all slots are busy.
func (c *Controller) AcquireScan(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.scanSem.Acquire(ctx, 1)
}

// TryAcquireScan reserves a scan slot without blocking.
func (c *Controller) TryAcquireScan() bool {
	if c == nil {
		return true
	}
	return c.scanSem.TryAcquire(1)
}

// ReleaseScan releases a scan slot.
func (c *Controller) ReleaseScan() {
	if c == nil {
		return
	}
	c.scanSem.Release(1)
}

// ThrottleReevaluation waits until the re-evaluation limit allows another
// evaluation.
func (c *Controller) ThrottleReevaluation(ctx context.Context) error {
	if c == nil || c.reevalLimiter == nil {
		return nil
	}
	return c.reevalLimiter.Wait(ctx)
}
