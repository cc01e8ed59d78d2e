// Package timerpool keeps a bounded registry of delayed callbacks.
//
// Every feedback pause, auto-advance, and countdown tick in a game
// session is a pool callback rather than a blocking wait, so tearing a
// session down is a single CancelAll.
package timerpool

import (
	"log/slog"
	"time"
)

// DefaultMaxPending is the pool capacity when none is configured.
const DefaultMaxPending = 16

// Handle identifies a scheduled callback. The zero Handle means the
// callback was never scheduled.
type Handle uint64

// Config controls a Pool.
type Config struct {
	// MaxPending is the maximum number of outstanding callbacks. When the
	// pool is full the oldest callback is cancelled to make room.
	MaxPending int `mapstructure:"max_pending"`
}

// DefaultConfig returns the standard pool configuration.
func DefaultConfig() Config {
	return Config{MaxPending: DefaultMaxPending}
}

type entry struct {
	handle Handle
	timer  Timer
	fn     func()
}

// Pool is a bounded set of pending callbacks driven by a Clock.
// It is not safe for concurrent use; callers drive it from a single
// event loop.
type Pool struct {
	clock  Clock
	max    int
	logger *slog.Logger

	pending   []*entry // oldest first
	next      Handle
	suspended bool
	closed    bool
	evicted   int
}

// New creates a Pool on the given clock. A nil logger uses slog.Default().
func New(clock Clock, cfg Config, logger *slog.Logger) *Pool {
	if cfg.MaxPending <= 0 {
		cfg.MaxPending = DefaultMaxPending
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{
		clock:  clock,
		max:    cfg.MaxPending,
		logger: logger,
	}
}

// Clock returns the pool's time source.
func (p *Pool) Clock() Clock {
	return p.clock
}

// Schedule runs fn after delay. It returns the zero Handle and does
// nothing while the pool is suspended or closed.
func (p *Pool) Schedule(fn func(), delay time.Duration) Handle {
	if p.suspended || p.closed || fn == nil {
		return 0
	}

	if len(p.pending) >= p.max {
		oldest := p.pending[0]
		oldest.timer.Stop()
		p.pending = p.pending[1:]
		p.evicted++
		p.logger.Warn("timer pool full, cancelled oldest timer",
			"max_pending", p.max,
			"handle", uint64(oldest.handle),
		)
	}

	p.next++
	e := &entry{handle: p.next, fn: fn}
	e.timer = p.clock.AfterFunc(delay, func() { p.fire(e) })
	p.pending = append(p.pending, e)
	return e.handle
}

// fire runs a callback if its handle is still pending. A callback that
// was cancelled after its clock timer expired is dropped here.
func (p *Pool) fire(e *entry) {
	if !p.remove(e.handle) {
		return
	}
	e.fn()
}

// Cancel stops the callback for h. It reports whether h was pending.
func (p *Pool) Cancel(h Handle) bool {
	if h == 0 {
		return false
	}
	for _, e := range p.pending {
		if e.handle == h {
			e.timer.Stop()
			return p.remove(h)
		}
	}
	return false
}

// CancelAll cancels every outstanding callback and clears the pool.
func (p *Pool) CancelAll() {
	for _, e := range p.pending {
		e.timer.Stop()
	}
	p.pending = nil
}

// Suspend makes Schedule decline new callbacks until Resume.
func (p *Pool) Suspend() {
	p.suspended = true
}

// Resume re-enables scheduling after Suspend.
func (p *Pool) Resume() {
	p.suspended = false
}

// Suspended reports whether the pool currently declines callbacks.
func (p *Pool) Suspended() bool {
	return p.suspended || p.closed
}

// Close cancels everything and permanently disables the pool.
func (p *Pool) Close() {
	p.CancelAll()
	p.closed = true
}

// Len returns the number of outstanding callbacks.
func (p *Pool) Len() int {
	return len(p.pending)
}

// Pending reports whether h is still outstanding.
func (p *Pool) Pending(h Handle) bool {
	for _, e := range p.pending {
		if e.handle == h {
			return true
		}
	}
	return false
}

// Evicted returns how many callbacks were force-cancelled on overflow.
func (p *Pool) Evicted() int {
	return p.evicted
}

func (p *Pool) remove(h Handle) bool {
	for i, e := range p.pending {
		if e.handle == h {
			p.pending = append(p.pending[:i], p.pending[i+1:]...)
			return true
		}
	}
	return false
}
