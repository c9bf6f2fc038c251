package desktop

import (
	"sort"
	"sync"

	"github.com/GriffinCanCode/PelkOS/backend/internal/infrastructure/monitoring"
	"go.uber.org/zap"
)

// DefaultZBase is the z-order value below the first focused window
const DefaultZBase = 50

// Operation names used in events, logs and metrics
const (
	OpOpen      = "open"
	OpClose     = "close"
	OpMinimize  = "minimize"
	OpMaximize  = "maximize"
	OpToggle    = "toggle"
	OpFocus     = "focus"
	OpDragStart = "drag_start"
	OpDragMove  = "drag_move"
	OpDragEnd   = "drag_end"
	OpViewport  = "viewport"
)

// Event describes the desktop state after an operation changed it
type Event struct {
	Seq          uint64         `json:"seq"`
	Op           string         `json:"op"`
	WindowID     string         `json:"window_id,omitempty"`
	Window       *WindowRecord  `json:"window,omitempty"`
	Taskbar      []TaskbarEntry `json:"taskbar"`
	ActiveWindow string         `json:"active_window,omitempty"`
	Viewport     Viewport       `json:"viewport"`
}

// Snapshot is a read-only copy of a desktop's full state
type Snapshot struct {
	Seq          uint64         `json:"seq"` // Last event folded into this snapshot
	Viewport     Viewport       `json:"viewport"`
	Windows      []WindowRecord `json:"windows"` // Bottom to top
	Taskbar      []TaskbarEntry `json:"taskbar"`
	ActiveWindow string         `json:"active_window,omitempty"`
	Drag         *Gesture       `json:"drag,omitempty"`
	ZCounter     int64          `json:"z_counter"`
}

// Options configures a Desktop
type Options struct {
	Viewport        Viewport
	DefaultGeometry Geometry
	Geometries      map[string]Geometry // Initial geometry per window id
	ZBase           int64
	Logger          *zap.Logger
	// OnEvent is called with the desktop lock held, in operation order.
	// It must not block or call back into the Desktop.
	OnEvent func(Event)
}

// Desktop is one independent window-management instance. All operations
// are serialised, so callers may share it across goroutines.
type Desktop struct {
	mu        sync.Mutex
	viewport  Viewport
	registry  *Registry
	focus     *FocusManager
	taskbar   *Taskbar
	drag      *DragController
	lifecycle *Lifecycle

	seq    uint64
	closed bool

	logger  *zap.Logger
	metrics *monitoring.Metrics
	onEvent func(Event)
}

// New creates a desktop with no open windows
func New(opts Options) *Desktop {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &Desktop{
		viewport: opts.Viewport,
		logger:   logger,
		onEvent:  opts.OnEvent,
	}

	zBase := opts.ZBase
	if zBase <= 0 {
		zBase = DefaultZBase
	}

	d.registry = NewRegistry(opts.DefaultGeometry, opts.Geometries)
	d.focus = NewFocusManager(d.registry, zBase)
	d.taskbar = NewTaskbar()
	d.focus.Subscribe(d.taskbar)
	d.drag = NewDragController(d.registry, d.focus, d.bounds)
	d.lifecycle = NewLifecycle(d.registry, d.focus, d.taskbar, d.bounds)

	return d
}

// WithMetrics adds metrics tracking to the desktop
func (d *Desktop) WithMetrics(metrics *monitoring.Metrics) *Desktop {
	d.metrics = metrics
	return d
}

// bounds is read by the drag controller and lifecycle while d.mu is held
func (d *Desktop) bounds() Viewport {
	return d.viewport
}

// Open shows a window, raises it and adds its taskbar entry
func (d *Desktop) Open(id string) bool {
	return d.apply(OpOpen, id, func() bool {
		if id == "" {
			return false
		}
		d.lifecycle.Open(id)
		return true
	})
}

// Close hides a window and removes its taskbar entry
func (d *Desktop) Close(id string) bool {
	return d.apply(OpClose, id, func() bool {
		return d.lifecycle.Close(id)
	})
}

// Minimize hides a window but keeps its taskbar entry
func (d *Desktop) Minimize(id string) bool {
	return d.apply(OpMinimize, id, func() bool {
		return d.lifecycle.Minimize(id)
	})
}

// Maximize toggles a window between maximized and its saved geometry
func (d *Desktop) Maximize(id string) bool {
	return d.apply(OpMaximize, id, func() bool {
		return d.lifecycle.Maximize(id)
	})
}

// Toggle shows a hidden window or minimizes a visible one
func (d *Desktop) Toggle(id string) bool {
	return d.apply(OpToggle, id, func() bool {
		if !d.registry.Has(id) {
			return false
		}
		d.lifecycle.Toggle(id)
		return true
	})
}

// Focus raises a known window and makes it active
func (d *Desktop) Focus(id string) bool {
	return d.apply(OpFocus, id, func() bool {
		if !d.registry.Has(id) {
			return false
		}
		d.focus.Focus(id)
		return true
	})
}

// TaskbarClick routes a click on a taskbar entry to Toggle
func (d *Desktop) TaskbarClick(id string) bool {
	return d.apply(OpToggle, id, func() bool {
		return d.taskbar.Click(id)
	})
}

// DragStart begins dragging a window with the pointer at p
func (d *Desktop) DragStart(id string, p Point) bool {
	ok := d.apply(OpDragStart, id, func() bool {
		return d.drag.Start(id, p)
	})
	if ok && d.metrics != nil {
		d.metrics.IncDragGestures()
	}
	return ok
}

// DragMove moves the dragged window to follow the pointer
func (d *Desktop) DragMove(p Point) (Geometry, bool) {
	var g Geometry
	moved := d.apply(OpDragMove, "", func() bool {
		var ok bool
		g, ok = d.drag.Move(p)
		return ok
	})
	return g, moved
}

// DragEnd finishes the current drag gesture
func (d *Desktop) DragEnd() bool {
	return d.apply(OpDragEnd, "", func() bool {
		return d.drag.End()
	})
}

// SetViewport changes the bounds used by later clamps and maximizes.
// Existing geometry is left as it is.
func (d *Desktop) SetViewport(v Viewport) {
	d.apply(OpViewport, "", func() bool {
		d.viewport = Viewport{
			Width:         nonNegative(v.Width),
			Height:        nonNegative(v.Height),
			TaskbarHeight: nonNegative(v.TaskbarHeight),
		}
		return true
	})
}

// Shutdown makes every later operation a no-op and returns how many
// taskbar entries were open
func (d *Desktop) Shutdown() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return 0
	}
	d.closed = true
	return len(d.taskbar.Entries())
}

// Viewport returns the current viewport
func (d *Desktop) Viewport() Viewport {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.viewport
}

// Window returns a copy of a window's record
func (d *Desktop) Window(id string) (WindowRecord, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.registry.Lookup(id)
}

// ActiveWindow returns the active window id, if any
func (d *Desktop) ActiveWindow() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.focus.Active()
}

// Taskbar returns the taskbar entries in display order
func (d *Desktop) Taskbar() []TaskbarEntry {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.taskbar.Entries()
}

// DragPhase returns the phase of the drag controller
func (d *Desktop) DragPhase() DragPhase {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.drag.Phase()
}

// Snapshot returns the full desktop state
func (d *Desktop) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	ids := d.registry.IDs()
	windows := make([]WindowRecord, 0, len(ids))
	for _, id := range ids {
		rec, _ := d.registry.Lookup(id)
		windows = append(windows, rec)
	}
	sort.Slice(windows, func(i, j int) bool {
		if windows[i].ZOrder != windows[j].ZOrder {
			return windows[i].ZOrder < windows[j].ZOrder
		}
		return windows[i].ID < windows[j].ID
	})

	active, _ := d.focus.Active()
	snap := Snapshot{
		Seq:          d.seq,
		Viewport:     d.viewport,
		Windows:      windows,
		Taskbar:      d.taskbar.Entries(),
		ActiveWindow: active,
		ZCounter:     d.focus.Counter(),
	}
	if g, ok := d.drag.Gesture(); ok {
		snap.Drag = &g
	}
	return snap
}

// apply runs fn under the lock and publishes an event if it changed anything
func (d *Desktop) apply(op, id string, fn func() bool) bool {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return false
	}
	if id == "" && (op == OpDragMove || op == OpDragEnd) {
		if g, ok := d.drag.Gesture(); ok {
			id = g.WindowID
		}
	}
	entries := len(d.taskbar.Entries())
	changed := fn()

	if changed {
		d.seq++
		if d.onEvent != nil {
			d.onEvent(d.eventLocked(op, id))
		}
	}
	opened := len(d.taskbar.Entries()) - entries
	d.mu.Unlock()

	if op != OpDragMove {
		d.logger.Debug("Desktop operation",
			zap.String("op", op),
			zap.String("window_id", id),
			zap.Bool("changed", changed),
		)
	}

	if d.metrics != nil {
		if changed {
			d.metrics.RecordWindowOp(op)
		}
		if opened != 0 {
			d.metrics.AddWindowsOpen(opened)
		}
	}

	return changed
}

// eventLocked builds an event for op; d.mu must be held
func (d *Desktop) eventLocked(op, id string) Event {
	active, _ := d.focus.Active()
	ev := Event{
		Seq:          d.seq,
		Op:           op,
		WindowID:     id,
		Taskbar:      d.taskbar.Entries(),
		ActiveWindow: active,
		Viewport:     d.viewport,
	}
	if id != "" {
		if rec, ok := d.registry.Lookup(id); ok {
			ev.Window = &rec
		}
	}
	return ev
}
