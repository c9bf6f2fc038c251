package boot

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOpener struct {
	mu     sync.Mutex
	opened []string
}

func (f *fakeOpener) Open(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opened = append(f.opened, id)
	return true
}

func (f *fakeOpener) Opened() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.opened...)
}

type fakeTimer struct {
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.stopped = true
	return true
}

// manualScheduler records scheduled calls so tests decide when they run
type manualScheduler struct {
	delays []time.Duration
	funcs  []func()
	timers []*fakeTimer
}

func (m *manualScheduler) Schedule(d time.Duration, f func()) Timer {
	t := &fakeTimer{}
	m.delays = append(m.delays, d)
	m.funcs = append(m.funcs, f)
	m.timers = append(m.timers, t)
	return t
}

func TestPressEnterBootsOnce(t *testing.T) {
	opener := &fakeOpener{}
	sched := &manualScheduler{}
	var events []Event

	g := NewGate(opener, Options{
		AutoOpen: DefaultAutoOpen,
		Delay:    DefaultOpenDelay,
		Schedule: sched.Schedule,
		OnBoot:   func(ev Event) { events = append(events, ev) },
	})

	assert.False(t, g.Press("Escape"))
	assert.False(t, g.Booted())

	assert.True(t, g.Press("Enter"))
	assert.True(t, g.Booted())
	assert.False(t, g.Press("Enter"))

	require.Len(t, events, 1)
	assert.Equal(t, Event{
		HideBootScreen: true,
		Sound:          "boot",
		Volume:         0.45,
		AutoOpen:       "about",
		Delay:          400 * time.Millisecond,
	}, events[0])

	require.Len(t, sched.funcs, 1)
	assert.Equal(t, 400*time.Millisecond, sched.delays[0])
	assert.Empty(t, opener.Opened(), "auto-open waits for the delay")
	assert.True(t, g.Pending())

	sched.funcs[0]()
	assert.Equal(t, []string{"about"}, opener.Opened())
	assert.False(t, g.Pending())
}

func TestStopCancelsAutoOpen(t *testing.T) {
	opener := &fakeOpener{}
	sched := &manualScheduler{}
	g := NewGate(opener, Options{AutoOpen: "about", Delay: time.Second, Schedule: sched.Schedule})

	require.True(t, g.Press("Enter"))
	g.Stop()

	assert.True(t, sched.timers[0].stopped)
	sched.funcs[0]() // a timer that already fired must still do nothing
	assert.Empty(t, opener.Opened())
	assert.False(t, g.Press("Enter"))
}

func TestStopBeforeBoot(t *testing.T) {
	g := NewGate(&fakeOpener{}, Options{AutoOpen: "about"})
	g.Stop()
	assert.False(t, g.Press("Enter"))
	assert.False(t, g.Booted())
}

func TestNoAutoOpen(t *testing.T) {
	sched := &manualScheduler{}
	g := NewGate(&fakeOpener{}, Options{Schedule: sched.Schedule})

	assert.True(t, g.Press("Enter"))
	assert.Empty(t, sched.funcs)
	assert.False(t, g.Pending())
}

func TestDefaultSchedulerOpensAfterDelay(t *testing.T) {
	opener := &fakeOpener{}
	g := NewGate(opener, Options{AutoOpen: "about", Delay: 10 * time.Millisecond})
	defer g.Stop()

	require.True(t, g.Press("Enter"))
	assert.Eventually(t, func() bool {
		return len(opener.Opened()) == 1
	}, time.Second, 5*time.Millisecond)
}
