package changelog

import (
	"sync/atomic"
	"time"
)

// Clock supplies nanosecond timestamps for change log entries.
type Clock interface {
	Now() uint64
}

// SystemClock reads the system time on every call.
type SystemClock struct{}

func (SystemClock) Now() uint64 {
	return uint64(time.Now().UnixNano())
}

// CachedClock amortizes time syscalls for high-frequency stamping.
// It serves a cached reading while it is younger than the refresh
// window. Precision is bounded by the window; ordering between
// entries comes from sequence numbers, not timestamps.
type CachedClock struct {
	cached  atomic.Uint64
	refresh atomic.Uint64
	window  uint64
}

// NewCachedClock creates a clock that refreshes at most once per
// window. A zero window defaults to 100µs.
func NewCachedClock(window time.Duration) *CachedClock {
	if window <= 0 {
		window = 100 * time.Microsecond
	}
	return &CachedClock{window: uint64(window.Nanoseconds())}
}

func (c *CachedClock) Now() uint64 {
	now := uint64(time.Now().UnixNano())
	last := c.refresh.Load()
	if now-last < c.window {
		return c.cached.Load()
	}
	c.cached.Store(now)
	c.refresh.Store(now)
	return now
}
