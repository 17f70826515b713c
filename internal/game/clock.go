package game

import (
	"sync"
	"time"
)

// Clock emits countdown ticks at a fixed interval (one second in
// production). The session reduces every tick against its current
// authoritative state rather than values captured at creation time, so a
// clock outliving its session can never corrupt a newer one.
type Clock struct {
	interval time.Duration
	stopOnce sync.Once
	stopped  chan struct{}
}

func newClock(interval time.Duration) *Clock {
	if interval <= 0 {
		interval = time.Second
	}
	return &Clock{
		interval: interval,
		stopped:  make(chan struct{}),
	}
}

// run delivers ticks to onTick until onTick returns false or Stop is called.
// Intended to run on its own goroutine.
func (c *Clock) run(onTick func() bool) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopped:
			return
		case <-ticker.C:
			if !onTick() {
				return
			}
		}
	}
}

// Stop cancels the clock. Safe to call multiple times.
func (c *Clock) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopped)
	})
}
