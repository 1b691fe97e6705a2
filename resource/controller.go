// Package resource provides global resource limits for ingestion and
// persistence work: a bounded pool of loader slots and an optional IO
// throughput limiter.
package resource

import (
	"context"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MaxLoaders is the maximum number of concurrent dataset/snapshot
	// load or save jobs. If 0, defaults to 1.
	MaxLoaders int64

	// IOLimitBytesPerSec is the maximum IO throughput for persistence
	// work. If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller manages shared resources (loader concurrency, IO).
// A nil Controller imposes no limits.
type Controller struct {
	cfg Config

	loaderSem *semaphore.Weighted

	ioLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxLoaders <= 0 {
		cfg.MaxLoaders = 1
	}

	c := &Controller{
		cfg:       cfg,
		loaderSem: semaphore.NewWeighted(cfg.MaxLoaders),
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// AcquireLoader reserves a loader slot, blocking while every slot is
// busy or until ctx is canceled.
func (c *Controller) AcquireLoader(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.loaderSem.Acquire(ctx, 1)
}

// TryAcquireLoader reserves a loader slot without blocking.
// Returns true if acquired.
func (c *Controller) TryAcquireLoader() bool {
	if c == nil {
		return true
	}
	return c.loaderSem.TryAcquire(1)
}

// ReleaseLoader releases a loader slot.
func (c *Controller) ReleaseLoader() {
	if c == nil {
		return
	}
	c.loaderSem.Release(1)
}

// AcquireIO waits until the IO limit allows the specified number of bytes.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil || c.ioLimiter == nil {
		return nil
	}
	return c.ioLimiter.WaitN(ctx, bytes)
}
