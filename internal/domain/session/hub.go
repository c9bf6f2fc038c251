package session

import (
	"sync"
	"time"

	"github.com/GriffinCanCode/PelkOS/backend/internal/domain/boot"
	"github.com/GriffinCanCode/PelkOS/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/PelkOS/backend/internal/domain/terminal"
	"github.com/GriffinCanCode/PelkOS/backend/internal/shared/id"
)

// Event types pushed to subscribers
const (
	EventDesktop  = "desktop"
	EventBoot     = "boot"
	EventClock    = "clock"
	EventTerminal = "terminal"
	EventClosed   = "closed"
)

// DefaultSubscriberBuffer is the channel size for each subscriber
const DefaultSubscriberBuffer = 64

// Event is one message on a session's stream
type Event struct {
	Type      string           `json:"type"`
	DesktopID id.DesktopID     `json:"desktop_id"`
	Desktop   *desktop.Event   `json:"desktop,omitempty"`
	Boot      *boot.Event      `json:"boot,omitempty"`
	Clock     string           `json:"clock,omitempty"`
	Terminal  *terminal.Result `json:"terminal,omitempty"`
	Timestamp int64            `json:"timestamp"`
}

// Hub fans session events out to subscribers. Slow subscribers lose
// events rather than block the desktop.
type Hub struct {
	mu     sync.RWMutex
	subs   map[uint64]chan Event
	next   uint64
	closed bool
	drops  uint64
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]chan Event)}
}

// Subscribe returns a channel of events and a func that cancels it.
// The channel is closed when the subscription or the hub ends.
func (h *Hub) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}
	ch := make(chan Event, buffer)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(ch)
		return ch, func() {}
	}

	key := h.next
	h.next++
	h.subs[key] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if c, ok := h.subs[key]; ok {
				delete(h.subs, key)
				close(c)
			}
		})
	}
}

// Publish delivers ev to every subscriber without blocking
func (h *Hub) Publish(ev Event) {
	if ev.Timestamp == 0 {
		ev.Timestamp = time.Now().UnixMilli()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			h.drops++
		}
	}
}

// Close ends every subscription
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for key, ch := range h.subs {
		delete(h.subs, key)
		close(ch)
	}
}

// Count returns the number of live subscribers
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Dropped returns how many deliveries were skipped for full subscribers
func (h *Hub) Dropped() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.drops
}
