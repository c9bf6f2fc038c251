package clock

import (
	"context"
	"time"
)

// DefaultInterval matches the taskbar clock refresh rate
const DefaultInterval = time.Second

// Format renders t as zero-padded 24-hour "HH:MM"
func Format(t time.Time) string {
	return t.Format("15:04")
}

// Sink receives each formatted tick
type Sink func(display string, at time.Time)

// Clock emits the formatted time on a fixed interval
type Clock struct {
	interval time.Duration
	now      func() time.Time
}

// New creates a clock ticking every interval (DefaultInterval if <= 0)
func New(interval time.Duration) *Clock {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Clock{interval: interval, now: time.Now}
}

// WithNow overrides the time source
func (c *Clock) WithNow(now func() time.Time) *Clock {
	c.now = now
	return c
}

// Now returns the current formatted time
func (c *Clock) Now() string {
	return Format(c.now())
}

// Run emits one tick immediately and then one per interval until ctx is done
func (c *Clock) Run(ctx context.Context, sink Sink) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	t := c.now()
	sink(Format(t), t)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t := c.now()
			sink(Format(t), t)
		}
	}
}
