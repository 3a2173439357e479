package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes caps the payload bytes held in flight.
	// If 0, usage is only tracked.
	MemoryLimitBytes int64

	// MaxUploads is the maximum number of concurrent uploads.
	// If 0, defaults to 1.
	MaxUploads int64

	// IOLimitBytesPerSec caps upload throughput. If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller hands out memory, upload slots and IO budget.
// A nil *Controller imposes no limits.
type Controller struct {
	memSem   *semaphore.Weighted // nil if unlimited
	memLimit int64
	memUsed  atomic.Int64

	uploadSem *semaphore.Weighted

	ioLimiter *rate.Limiter
	ioBurst   int
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxUploads <= 0 {
		cfg.MaxUploads = 1
	}

	c := &Controller{
		uploadSem: semaphore.NewWeighted(cfg.MaxUploads),
	}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
		c.memLimit = cfg.MemoryLimitBytes
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.ioBurst = int(cfg.IOLimitBytesPerSec)
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), c.ioBurst)
	}

	return c
}

// AcquireMemory reserves bytes, blocking while a hard limit would be
// exceeded. Requests above the limit are clamped to it.
func (c *Controller) AcquireMemory(ctx context.Context, bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if err := c.memSem.Acquire(ctx, c.clampMemory(bytes)); err != nil {
			return err
		}
	}

	c.memUsed.Add(bytes)
	return nil
}

// TryAcquireMemory reserves bytes without blocking. It reports false if
// the hard limit would be exceeded.
func (c *Controller) TryAcquireMemory(bytes int64) bool {
	if c == nil || bytes <= 0 {
		return true
	}

	if c.memSem != nil && !c.memSem.TryAcquire(c.clampMemory(bytes)) {
		return false
	}

	c.memUsed.Add(bytes)
	return true
}

// ReleaseMemory releases bytes reserved by AcquireMemory or TryAcquireMemory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(c.clampMemory(bytes))
	}
	c.memUsed.Add(-bytes)
}

func (c *Controller) clampMemory(bytes int64) int64 {
	if bytes > c.memLimit {
		return c.memLimit
	}
	return bytes
}

// MemoryLimit returns the hard memory limit, 0 if none.
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.memLimit
}

// MemoryUsage returns the current memory usage in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// AcquireUpload reserves an upload slot, blocking while all are busy.
func (c *Controller) AcquireUpload(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.uploadSem.Acquire(ctx, 1)
}

// TryAcquireUpload reserves an upload slot without blocking.
func (c *Controller) TryAcquireUpload() bool {
	if c == nil {
		return true
	}
	return c.uploadSem.TryAcquire(1)
}

// ReleaseUpload releases an upload slot.
func (c *Controller) ReleaseUpload() {
	if c == nil {
		return
	}
	c.uploadSem.Release(1)
}

// AcquireIO waits until the IO limit allows bytes. Large requests are
// drawn in burst-sized chunks.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil || c.ioLimiter == nil {
		return nil
	}
	for bytes > 0 {
		n := min(bytes, c.ioBurst)
		if err := c.ioLimiter.WaitN(ctx, n); err != nil {
			return err
		}
		bytes -= n
	}
	return nil
}
