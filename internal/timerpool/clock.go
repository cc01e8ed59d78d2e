package timerpool

import (
	"sort"
	"sync"
	"time"
)

// Clock is the time source behind a Pool.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc arranges for f to be called once d has elapsed.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a single pending clock callback.
type Timer interface {
	// Stop prevents the callback from firing. It returns false if the
	// callback already fired or was already stopped.
	Stop() bool
}

// ManualClock is a deterministic Clock. Time only moves when Advance is
// called, and due callbacks run synchronously on the caller's goroutine.
type ManualClock struct {
	now    time.Time
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	clock   *ManualClock
	at      time.Time
	seq     uint64
	f       func()
	stopped bool
	fired   bool
}

// NewManualClock returns a ManualClock starting at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the clock's current time.
func (c *ManualClock) Now() time.Time {
	return c.now
}

// AfterFunc registers f to run when the clock has been advanced by d.
func (c *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	c.seq++
	t := &manualTimer{clock: c, at: c.now.Add(d), seq: c.seq, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d, firing every callback whose
// deadline is reached in deadline order (ties in registration order).
// Callbacks registered while advancing fire too if they fall due.
func (c *ManualClock) Advance(d time.Duration) {
	target := c.now.Add(d)
	for {
		next := c.nextDue(target)
		if next == nil {
			break
		}
		if next.at.After(c.now) {
			c.now = next.at
		}
		next.fired = true
		c.remove(next)
		next.f()
	}
	c.now = target
}

// Pending returns the number of callbacks that have neither fired nor
// been stopped.
func (c *ManualClock) Pending() int {
	return len(c.timers)
}

func (c *ManualClock) nextDue(target time.Time) *manualTimer {
	if len(c.timers) == 0 {
		return nil
	}
	sort.SliceStable(c.timers, func(i, j int) bool {
		if !c.timers[i].at.Equal(c.timers[j].at) {
			return c.timers[i].at.Before(c.timers[j].at)
		}
		return c.timers[i].seq < c.timers[j].seq
	})
	if c.timers[0].at.After(target) {
		return nil
	}
	return c.timers[0]
}

func (c *ManualClock) remove(t *manualTimer) {
	for i, other := range c.timers {
		if other == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return
		}
	}
}

func (t *manualTimer) Stop() bool {
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	t.clock.remove(t)
	return true
}

// LoopClock is a wall-clock Clock that never runs callbacks on the timer
// goroutine. Expired callbacks are posted to C and must be run by the
// single goroutine that owns the state they touch.
type LoopClock struct {
	ch   chan func()
	done chan struct{}
	once sync.Once
}

// NewLoopClock returns a LoopClock whose channel buffers up to buffer
// expired callbacks.
func NewLoopClock(buffer int) *LoopClock {
	if buffer < 1 {
		buffer = 1
	}
	return &LoopClock{ch: make(chan func(), buffer), done: make(chan struct{})}
}

// Now returns the wall-clock time.
func (c *LoopClock) Now() time.Time {
	return time.Now()
}

// AfterFunc starts a wall-clock timer that posts f to C when it expires.
// A post blocked on a full channel is abandoned when the clock closes.
func (c *LoopClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, func() {
		select {
		case <-c.done:
			return
		default:
		}
		select {
		case c.ch <- f:
		case <-c.done:
		}
	})
}

// C delivers expired callbacks to the event loop.
func (c *LoopClock) C() <-chan func() {
	return c.ch
}

// Close stops delivery of further callbacks. It is safe to call twice.
func (c *LoopClock) Close() {
	c.once.Do(func() { close(c.done) })
}
