package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/GriffinCanCode/PelkOS/backend/internal/domain/boot"
	"github.com/GriffinCanCode/PelkOS/backend/internal/domain/catalog"
	"github.com/GriffinCanCode/PelkOS/backend/internal/domain/clock"
	"github.com/GriffinCanCode/PelkOS/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/PelkOS/backend/internal/domain/terminal"
	"github.com/GriffinCanCode/PelkOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/PelkOS/backend/internal/shared/id"
	"go.uber.org/zap"
)

// Session is one browser's desktop: window state, boot gate, terminal
// and clock, plus the hub that streams their changes.
type Session struct {
	ID        id.DesktopID
	CreatedAt time.Time

	desktop     *desktop.Desktop
	gate        *boot.Gate
	interpreter *terminal.Interpreter
	scrollback  *terminal.Buffer
	hub         *Hub
	catalog     *catalog.Catalog
	terminalID  string

	clockMu      sync.RWMutex
	clockDisplay string

	lastActive atomic.Int64 // unix nanos
	cancel     context.CancelFunc
	closeOnce  sync.Once

	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// Info summarises a session for listings
type Info struct {
	ID          id.DesktopID `json:"id"`
	CreatedAt   time.Time    `json:"created_at"`
	LastActive  time.Time    `json:"last_active"`
	Booted      bool         `json:"booted"`
	OpenWindows int          `json:"open_windows"`
	Subscribers int          `json:"subscribers"`
}

// View is the full state a browser needs to render a session
type View struct {
	ID       id.DesktopID     `json:"id"`
	Booted   bool             `json:"booted"`
	Clock    string           `json:"clock"`
	Desktop  desktop.Snapshot `json:"desktop"`
	Terminal []terminal.Line  `json:"terminal"`
}

// Desktop returns the session's window manager
func (s *Session) Desktop() *desktop.Desktop {
	return s.desktop
}

// Catalog returns the windows this session was created with
func (s *Session) Catalog() *catalog.Catalog {
	return s.catalog
}

// Press forwards a key press to the boot gate
func (s *Session) Press(key string) bool {
	s.Touch()
	return s.gate.Press(key)
}

// Booted reports whether the boot screen has been passed
func (s *Session) Booted() bool {
	return s.gate.Booted()
}

// Execute runs a terminal line, records its output and applies its
// close request to the terminal window. Lines are only accepted while the
// terminal window is visible.
func (s *Session) Execute(line string) (terminal.Result, error) {
	s.Touch()

	if !s.terminalVisible() {
		return terminal.Result{}, ErrTerminalHidden
	}

	r := s.interpreter.Execute(line)
	s.scrollback.Apply(r)

	if s.metrics != nil {
		s.metrics.RecordTerminalCommand(r.Command)
	}
	s.logger.Debug("Terminal command",
		zap.String("desktop_id", s.ID.String()),
		zap.String("command", r.Command),
	)

	s.hub.Publish(Event{Type: EventTerminal, DesktopID: s.ID, Terminal: &r})

	if r.Close {
		s.desktop.Close(s.terminalID)
	}
	return r, nil
}

func (s *Session) terminalVisible() bool {
	if s.terminalID == "" {
		return false
	}
	rec, ok := s.desktop.Window(s.terminalID)
	return ok && rec.Visible
}

// Scrollback returns the terminal output, oldest first
func (s *Session) Scrollback() []terminal.Line {
	return s.scrollback.Lines()
}

// Resolution reports the viewport size for the terminal
func (s *Session) Resolution() (float64, float64) {
	v := s.desktop.Viewport()
	return v.Width, v.Height
}

// Clock returns the last formatted clock tick
func (s *Session) Clock() string {
	s.clockMu.RLock()
	defer s.clockMu.RUnlock()
	return s.clockDisplay
}

// Subscribe streams the session's events
func (s *Session) Subscribe(buffer int) (<-chan Event, func()) {
	s.Touch()
	return s.hub.Subscribe(buffer)
}

// Touch marks the session as used now
func (s *Session) Touch() {
	s.lastActive.Store(time.Now().UnixNano())
}

// LastActive returns when the session was last used
func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

// Info summarises the session
func (s *Session) Info() Info {
	return Info{
		ID:          s.ID,
		CreatedAt:   s.CreatedAt,
		LastActive:  s.LastActive(),
		Booted:      s.gate.Booted(),
		OpenWindows: len(s.desktop.Taskbar()),
		Subscribers: s.hub.Count(),
	}
}

// View returns the session's full state
func (s *Session) View() View {
	return View{
		ID:       s.ID,
		Booted:   s.gate.Booted(),
		Clock:    s.Clock(),
		Desktop:  s.desktop.Snapshot(),
		Terminal: s.scrollback.Lines(),
	}
}

func (s *Session) onDesktopEvent(ev desktop.Event) {
	s.hub.Publish(Event{Type: EventDesktop, DesktopID: s.ID, Desktop: &ev})
}

func (s *Session) onBoot(ev boot.Event) {
	s.hub.Publish(Event{Type: EventBoot, DesktopID: s.ID, Boot: &ev})
}

func (s *Session) onTick(display string, _ time.Time) {
	s.clockMu.Lock()
	changed := s.clockDisplay != display
	s.clockDisplay = display
	s.clockMu.Unlock()

	if changed {
		s.hub.Publish(Event{Type: EventClock, DesktopID: s.ID, Clock: display})
	}
}

// close stops background work and ends every subscription
func (s *Session) close() {
	s.closeOnce.Do(func() {
		s.cancel()
		s.gate.Stop()

		open := s.desktop.Shutdown()
		if s.metrics != nil && open > 0 {
			s.metrics.AddWindowsOpen(-open)
		}

		s.hub.Publish(Event{Type: EventClosed, DesktopID: s.ID})
		s.hub.Close()
	})
}

// startClock runs the clock until the session closes
func (s *Session) startClock(ctx context.Context, c *clock.Clock) {
	go c.Run(ctx, s.onTick)
}
