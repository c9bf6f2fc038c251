package desktop

// FocusListener is notified whenever the active window changes.
// An empty id means no window is active.
type FocusListener interface {
	FocusChanged(activeID string)
}

// FocusManager owns the z-order counter and the active window
type FocusManager struct {
	registry  *Registry
	counter   int64
	active    string
	listeners []FocusListener
}

// NewFocusManager creates a focus manager whose first grant is base+1
func NewFocusManager(registry *Registry, base int64) *FocusManager {
	return &FocusManager{
		registry: registry,
		counter:  base,
	}
}

// Subscribe registers a listener for active window changes
func (f *FocusManager) Subscribe(l FocusListener) {
	f.listeners = append(f.listeners, l)
}

// Focus raises id above every previously focused window and makes it active.
// The counter advances even when id is already on top.
func (f *FocusManager) Focus(id string) int64 {
	f.counter++
	f.registry.SetZOrder(id, f.counter)
	f.active = id

	for _, l := range f.listeners {
		l.FocusChanged(id)
	}
	return f.counter
}

// Active returns the active window id, if any
func (f *FocusManager) Active() (string, bool) {
	return f.active, f.active != ""
}

// Counter returns the last z-order value handed out
func (f *FocusManager) Counter() int64 {
	return f.counter
}
