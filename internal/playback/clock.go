// Package playback tracks the session playhead: a current time in
// seconds and a playing flag advanced by periodic ticks while playing.
package playback

import (
	"sync"
	"time"

	"github.com/louisbranch/clipdeck/internal/notify"
)

// tickInterval is the cadence at which the playhead advances while
// playing.
const tickInterval = 100 * time.Millisecond

// Clock is the playback clock. While playing it schedules ticks and
// advances the playhead by the real elapsed time between ticks, so a
// late tick never loses time.
type Clock struct {
	mu         sync.Mutex
	current    float64
	playing    bool
	generation int
	lastTick   time.Time
	cancelTick func()

	notifier *notify.Notifier

	now      func() time.Time
	schedule func(delay time.Duration, fn func()) (cancel func())
}

// NewClock creates a stopped clock at time zero.
func NewClock() *Clock {
	return &Clock{
		notifier: notify.NewNotifier(),
		now:      time.Now,
		schedule: scheduleTimer,
	}
}

func scheduleTimer(delay time.Duration, fn func()) func() {
	timer := time.AfterFunc(delay, fn)
	return func() { timer.Stop() }
}

// Changes exposes the clock's change notifier.
func (c *Clock) Changes() *notify.Notifier {
	return c.notifier
}

// CurrentTime returns the playhead position in seconds.
func (c *Clock) CurrentTime() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Playing reports whether the clock is advancing.
func (c *Clock) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

// Play starts advancing the playhead. Calling Play on a running clock
// is a no-op.
func (c *Clock) Play() {
	c.mu.Lock()
	if c.playing {
		c.mu.Unlock()
		return
	}
	c.playing = true
	c.generation++
	c.lastTick = c.now()
	c.cancelTick = c.schedule(tickInterval, c.tickFunc(c.generation))
	c.mu.Unlock()

	c.notifier.Notify()
}

// Pause stops advancing the playhead, keeping its position. Calling
// Pause on a stopped clock is a no-op.
func (c *Clock) Pause() {
	c.mu.Lock()
	if !c.playing {
		c.mu.Unlock()
		return
	}
	c.stopLocked()
	c.mu.Unlock()

	c.notifier.Notify()
}

// Toggle flips between playing and paused.
func (c *Clock) Toggle() {
	c.mu.Lock()
	playing := c.playing
	c.mu.Unlock()

	if playing {
		c.Pause()
	} else {
		c.Play()
	}
}

// Seek moves the playhead to the given time in seconds, clamped at
// zero. Seeking does not change the playing state.
func (c *Clock) Seek(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}

	c.mu.Lock()
	c.current = seconds
	if c.playing {
		// Restart the elapsed-time base so the next tick does not add
		// time accrued before the seek.
		c.lastTick = c.now()
	}
	c.mu.Unlock()

	c.notifier.Notify()
}

// stopLocked cancels the pending tick and bumps the generation so an
// already-fired tick callback becomes a no-op. Callers hold c.mu.
func (c *Clock) stopLocked() {
	c.playing = false
	c.generation++
	if c.cancelTick != nil {
		c.cancelTick()
		c.cancelTick = nil
	}
}

func (c *Clock) tickFunc(generation int) func() {
	return func() {
		c.mu.Lock()
		if !c.playing || c.generation != generation {
			c.mu.Unlock()
			return
		}
		nowTime := c.now()
		c.current += nowTime.Sub(c.lastTick).Seconds()
		c.lastTick = nowTime
		c.cancelTick = c.schedule(tickInterval, c.tickFunc(generation))
		c.mu.Unlock()

		c.notifier.Notify()
	}
}
