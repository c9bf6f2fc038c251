package desktop

// DragPhase is the state of the drag gesture machine
type DragPhase int

const (
	// DragIdle means no gesture is in progress
	DragIdle DragPhase = iota
	// DragDragging means a window follows the pointer
	DragDragging
)

// String returns the string representation of the phase
func (p DragPhase) String() string {
	switch p {
	case DragIdle:
		return "idle"
	case DragDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Gesture is the state captured when a drag starts
type Gesture struct {
	WindowID string `json:"window_id"`
	Offset   Point  `json:"offset"` // Pointer position relative to the window origin
}

// DragController turns one press-move-release gesture into window moves.
// Only one gesture exists at a time.
type DragController struct {
	registry *Registry
	focus    *FocusManager
	bounds   func() Viewport

	phase   DragPhase
	gesture Gesture
}

// NewDragController creates an idle controller. bounds is read on every move
// so viewport changes apply mid-gesture.
func NewDragController(registry *Registry, focus *FocusManager, bounds func() Viewport) *DragController {
	return &DragController{
		registry: registry,
		focus:    focus,
		bounds:   bounds,
	}
}

// Start begins a gesture on id with the pointer at p and raises the window.
// A gesture already in progress is replaced. Unknown windows are ignored.
func (d *DragController) Start(id string, p Point) bool {
	rec, ok := d.registry.Lookup(id)
	if !ok {
		return false
	}

	p = Point{X: finite(p.X), Y: finite(p.Y)}
	d.gesture = Gesture{
		WindowID: id,
		Offset: Point{
			X: p.X - rec.Geometry.X,
			Y: p.Y - rec.Geometry.Y,
		},
	}
	d.phase = DragDragging
	d.focus.Focus(id)
	return true
}

// Move positions the dragged window under the pointer, clamped to the viewport.
// Returns false when no gesture is active.
func (d *DragController) Move(p Point) (Geometry, bool) {
	if d.phase != DragDragging {
		return Geometry{}, false
	}

	rec, ok := d.registry.Lookup(d.gesture.WindowID)
	if !ok {
		d.End()
		return Geometry{}, false
	}

	g := rec.Geometry
	g.X = finite(p.X) - d.gesture.Offset.X
	g.Y = finite(p.Y) - d.gesture.Offset.Y
	g = d.bounds().Clamp(g)

	d.registry.SetGeometry(d.gesture.WindowID, g)
	return g, true
}

// End finishes the gesture. Nothing from it survives into the next one.
func (d *DragController) End() bool {
	if d.phase != DragDragging {
		return false
	}
	d.phase = DragIdle
	d.gesture = Gesture{}
	return true
}

// Phase returns the current phase
func (d *DragController) Phase() DragPhase {
	return d.phase
}

// Gesture returns the active gesture, if any
func (d *DragController) Gesture() (Gesture, bool) {
	return d.gesture, d.phase == DragDragging
}
