package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubFanOut(t *testing.T) {
	h := NewHub()
	a, cancelA := h.Subscribe(4)
	b, cancelB := h.Subscribe(4)
	defer cancelB()

	h.Publish(Event{Type: EventClock, Clock: "12:00"})

	evA := <-a
	evB := <-b
	assert.Equal(t, "12:00", evA.Clock)
	assert.Equal(t, "12:00", evB.Clock)
	assert.NotZero(t, evA.Timestamp)

	cancelA()
	cancelA()
	_, ok := <-a
	assert.False(t, ok)
	assert.Equal(t, 1, h.Count())
}

func TestHubDropsForSlowSubscriber(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe(1)
	defer cancel()

	h.Publish(Event{Type: EventClock, Clock: "1"})
	h.Publish(Event{Type: EventClock, Clock: "2"})

	assert.Equal(t, uint64(1), h.Dropped())
	ev := <-ch
	assert.Equal(t, "1", ev.Clock)
}

func TestHubClose(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe(1)

	h.Close()
	h.Close()
	cancel()

	_, ok := <-ch
	assert.False(t, ok)

	late, _ := h.Subscribe(1)
	_, ok = <-late
	require.False(t, ok)
	h.Publish(Event{Type: EventClock})
}
