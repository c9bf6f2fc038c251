package clock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "00:00"},
		{time.Date(2024, 1, 1, 7, 5, 59, 0, time.UTC), "07:05"},
		{time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC), "23:59"},
		{time.Date(2024, 1, 1, 13, 30, 0, 0, time.UTC), "13:30"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.in))
	}
}

func TestRunTicksUntilCancelled(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 9, 41, 0, 0, time.UTC)
	c := New(5 * time.Millisecond).WithNow(func() time.Time { return fixed })

	var (
		mu    sync.Mutex
		ticks []string
	)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		c.Run(ctx, func(display string, _ time.Time) {
			mu.Lock()
			ticks = append(ticks, display)
			mu.Unlock()
		})
		close(done)
	}()

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(ticks) >= 3
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	for _, tick := range ticks {
		assert.Equal(t, "09:41", tick)
	}
}

func TestNewDefaultsInterval(t *testing.T) {
	assert.Equal(t, DefaultInterval, New(0).interval)
}
