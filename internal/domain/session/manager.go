package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
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

// Errors returned by the manager
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("too many sessions")
	ErrManagerClosed   = errors.New("session manager closed")
	ErrTerminalHidden  = errors.New("terminal window is not visible")
)

// DefaultGeometry is used for windows the catalog has no geometry for
var DefaultGeometry = desktop.Geometry{X: 120, Y: 80, Width: 420, Height: 300}

// Options configures a Manager
type Options struct {
	Catalog       *catalog.Catalog
	Viewport      desktop.Viewport
	ZBase         int64
	AutoOpen      string
	AutoOpenDelay time.Duration
	ClockInterval time.Duration
	TTL           time.Duration // Idle time before Sweep closes a session; 0 disables
	MaxSessions   int           // 0 means unlimited
	Scrollback    int
	Schedule      boot.Scheduler // Overrides the boot auto-open timer
	Logger        *zap.Logger
}

// Stats holds manager counters
type Stats struct {
	Active        int    `json:"active"`
	Created       uint64 `json:"created"`
	Expired       uint64 `json:"expired"`
	Closed        uint64 `json:"closed"`
	Subscribers   int    `json:"subscribers"`
	DroppedEvents uint64 `json:"dropped_events"` // Across live sessions only
}

// Manager owns every live desktop session
type Manager struct {
	mu       sync.RWMutex
	sessions map[id.DesktopID]*Session
	closed   bool

	created uint64
	expired uint64
	ended   uint64

	opts    Options
	ctx     context.Context
	cancel  context.CancelFunc
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// NewManager creates a session manager
func NewManager(opts Options) *Manager {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Builtin()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.AutoOpen != "" && !opts.Catalog.Has(opts.AutoOpen) {
		opts.Logger.Warn("Boot auto-open window not in catalog, disabling",
			zap.String("window_id", opts.AutoOpen))
		opts.AutoOpen = ""
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		sessions: make(map[id.DesktopID]*Session),
		opts:     opts,
		ctx:      ctx,
		cancel:   cancel,
		logger:   opts.Logger,
	}
}

// WithMetrics adds metrics tracking to the manager and its desktops
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Catalog returns the window catalog shared by all sessions
func (m *Manager) Catalog() *catalog.Catalog {
	return m.opts.Catalog
}

// Create starts a new desktop session on the boot screen
func (m *Manager) Create() (*Session, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrManagerClosed
	}
	if m.opts.MaxSessions > 0 && len(m.sessions) >= m.opts.MaxSessions {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: limit is %d", ErrTooManySessions, m.opts.MaxSessions)
	}

	s := m.newSession()
	m.sessions[s.ID] = s
	m.created++
	active := len(m.sessions)
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.IncSessionsCreated()
		m.metrics.SetSessionsActive(active)
	}
	m.logger.Info("Desktop session created", zap.String("desktop_id", s.ID.String()))

	return s, nil
}

// newSession wires a session's components; m.mu must be held
func (m *Manager) newSession() *Session {
	ctx, cancel := context.WithCancel(m.ctx)
	now := time.Now()

	s := &Session{
		ID:         id.NewDesktopID(),
		CreatedAt:  now,
		hub:        NewHub(),
		catalog:    m.opts.Catalog,
		scrollback: terminal.NewBuffer(m.opts.Scrollback),
		cancel:     cancel,
		metrics:    m.metrics,
	}
	s.logger = m.logger.With(zap.String("desktop_id", s.ID.String()))
	s.lastActive.Store(now.UnixNano())
	s.terminalID, _ = m.opts.Catalog.TerminalID()

	s.desktop = desktop.New(desktop.Options{
		Viewport:        m.opts.Viewport,
		DefaultGeometry: DefaultGeometry,
		Geometries:      m.opts.Catalog.Geometries(),
		ZBase:           m.opts.ZBase,
		Logger:          s.logger,
		OnEvent:         s.onDesktopEvent,
	})
	if m.metrics != nil {
		s.desktop.WithMetrics(m.metrics)
	}

	s.gate = boot.NewGate(s.desktop, boot.Options{
		AutoOpen: m.opts.AutoOpen,
		Delay:    m.opts.AutoOpenDelay,
		Schedule: m.opts.Schedule,
		OnBoot:   s.onBoot,
		Logger:   s.logger,
	})
	s.interpreter = terminal.NewInterpreter(s)

	s.clockDisplay = clock.Format(now)
	s.startClock(ctx, clock.New(m.opts.ClockInterval))

	return s
}

// Get returns a live session and marks it active
func (m *Manager) Get(desktopID id.DesktopID) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[desktopID]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, desktopID)
	}
	s.Touch()
	return s, nil
}

// Close ends a session
func (m *Manager) Close(desktopID id.DesktopID) error {
	m.mu.Lock()
	s, ok := m.sessions[desktopID]
	if ok {
		delete(m.sessions, desktopID)
		m.ended++
	}
	active := len(m.sessions)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, desktopID)
	}

	s.close()
	if m.metrics != nil {
		m.metrics.SetSessionsActive(active)
	}
	m.logger.Info("Desktop session closed", zap.String("desktop_id", desktopID.String()))
	return nil
}

// List returns every live session, oldest first
func (m *Manager) List() []Info {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	infos := make([]Info, 0, len(sessions))
	for _, s := range sessions {
		infos = append(infos, s.Info())
	}
	// ULIDs sort by creation time
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	return infos
}

// Stats returns manager counters
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	subscribers := 0
	var dropped uint64
	for _, s := range m.sessions {
		subscribers += s.hub.Count()
		dropped += s.hub.Dropped()
	}
	return Stats{
		Active:        len(m.sessions),
		Created:       m.created,
		Expired:       m.expired,
		Closed:        m.ended,
		Subscribers:   subscribers,
		DroppedEvents: dropped,
	}
}

// Sweep closes sessions idle longer than the TTL and returns how many.
// Sessions with a live subscriber are never idle.
func (m *Manager) Sweep(now time.Time) int {
	if m.opts.TTL <= 0 {
		return 0
	}

	m.mu.Lock()
	var stale []*Session
	for key, s := range m.sessions {
		if s.hub.Count() > 0 {
			continue
		}
		if now.Sub(s.LastActive()) > m.opts.TTL {
			stale = append(stale, s)
			delete(m.sessions, key)
		}
	}
	m.expired += uint64(len(stale))
	active := len(m.sessions)
	m.mu.Unlock()

	for _, s := range stale {
		s.close()
		m.logger.Info("Desktop session expired",
			zap.String("desktop_id", s.ID.String()),
			zap.Time("last_active", s.LastActive()),
		)
		if m.metrics != nil {
			m.metrics.IncSessionsExpired()
		}
	}
	if len(stale) > 0 && m.metrics != nil {
		m.metrics.SetSessionsActive(active)
	}

	return len(stale)
}

// Run sweeps idle sessions every interval until ctx is done
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 || m.opts.TTL <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.Sweep(now)
		}
	}
}

// Shutdown closes every session and rejects new ones
func (m *Manager) Shutdown() {
	m.mu.Lock()
	m.closed = true
	sessions := make([]*Session, 0, len(m.sessions))
	for key, s := range m.sessions {
		sessions = append(sessions, s)
		delete(m.sessions, key)
	}
	m.ended += uint64(len(sessions))
	m.mu.Unlock()

	for _, s := range sessions {
		s.close()
	}
	m.cancel()

	if m.metrics != nil {
		m.metrics.SetSessionsActive(0)
	}
	m.logger.Info("Session manager shut down", zap.Int("closed", len(sessions)))
}
