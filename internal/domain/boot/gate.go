package boot

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Defaults for the boot sequence
const (
	StartKey         = "Enter"
	SoundVolume      = 0.45
	DefaultAutoOpen  = "about"
	DefaultOpenDelay = 400 * time.Millisecond
)

// Opener opens a window once the desktop is up
type Opener interface {
	Open(id string) bool
}

// Timer is a pending delayed call
type Timer interface {
	Stop() bool
}

// Scheduler runs f after d
type Scheduler func(d time.Duration, f func()) Timer

// Event tells the browser to leave the boot screen
type Event struct {
	HideBootScreen bool          `json:"hide_boot_screen"`
	Sound          string        `json:"sound"`
	Volume         float64       `json:"volume"`
	AutoOpen       string        `json:"auto_open,omitempty"`
	Delay          time.Duration `json:"delay_ns"`
}

// Options configures a Gate
type Options struct {
	AutoOpen string        // Window opened after boot; empty disables
	Delay    time.Duration // Delay before AutoOpen
	Schedule Scheduler     // Defaults to time.AfterFunc
	OnBoot   func(Event)   // Called once, outside the lock
	Logger   *zap.Logger
}

// Gate blocks the desktop until the start key is pressed
type Gate struct {
	mu      sync.Mutex
	booted  bool
	stopped bool
	pending Timer

	autoOpen string
	delay    time.Duration
	opener   Opener
	schedule Scheduler
	onBoot   func(Event)
	logger   *zap.Logger
}

// NewGate creates a gate that opens windows through opener
func NewGate(opener Opener, opts Options) *Gate {
	schedule := opts.Schedule
	if schedule == nil {
		schedule = func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Gate{
		autoOpen: opts.AutoOpen,
		delay:    opts.Delay,
		opener:   opener,
		schedule: schedule,
		onBoot:   opts.OnBoot,
		logger:   logger,
	}
}

// Press handles a key press on the boot screen. Only the first StartKey
// press boots the desktop; it reports whether this press did.
func (g *Gate) Press(key string) bool {
	g.mu.Lock()
	if key != StartKey || g.booted || g.stopped {
		g.mu.Unlock()
		return false
	}
	g.booted = true

	ev := Event{
		HideBootScreen: true,
		Sound:          "boot",
		Volume:         SoundVolume,
		AutoOpen:       g.autoOpen,
		Delay:          g.delay,
	}
	if g.autoOpen != "" {
		g.pending = g.schedule(g.delay, g.fire)
	}
	g.mu.Unlock()

	g.logger.Info("Desktop booted", zap.String("auto_open", g.autoOpen))

	if g.onBoot != nil {
		g.onBoot(ev)
	}
	return true
}

// fire runs the delayed auto-open unless the gate was stopped
func (g *Gate) fire() {
	g.mu.Lock()
	if g.stopped {
		g.mu.Unlock()
		return
	}
	g.pending = nil
	id := g.autoOpen
	g.mu.Unlock()

	g.opener.Open(id)
}

// Booted reports whether the desktop has started
func (g *Gate) Booted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.booted
}

// Pending reports whether the auto-open is still waiting to run
func (g *Gate) Pending() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending != nil
}

// Stop cancels a pending auto-open and ignores later key presses
func (g *Gate) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.stopped = true
	if g.pending != nil {
		g.pending.Stop()
		g.pending = nil
	}
}
