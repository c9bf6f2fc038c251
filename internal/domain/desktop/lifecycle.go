package desktop

// Lifecycle runs the window operations on top of the registry, focus manager and taskbar
type Lifecycle struct {
	registry *Registry
	focus    *FocusManager
	taskbar  *Taskbar
	bounds   func() Viewport
}

// NewLifecycle creates a lifecycle and binds it as the taskbar's click target
func NewLifecycle(registry *Registry, focus *FocusManager, taskbar *Taskbar, bounds func() Viewport) *Lifecycle {
	l := &Lifecycle{
		registry: registry,
		focus:    focus,
		taskbar:  taskbar,
		bounds:   bounds,
	}
	taskbar.Bind(l)
	return l
}

// Open shows id, raises it and makes sure it has a taskbar entry.
// The record is created on first open.
func (l *Lifecycle) Open(id string) {
	l.registry.SetVisible(id, true)
	l.focus.Focus(id)
	l.taskbar.OnOpen(id)
}

// Close hides id and removes its taskbar entry. Geometry and maximize state
// are kept so a reopen resumes the previous layout.
func (l *Lifecycle) Close(id string) bool {
	if !l.registry.Has(id) {
		return false
	}
	l.registry.SetVisible(id, false)
	l.taskbar.OnClose(id)
	return true
}

// Minimize hides id and clears its taskbar highlight. The entry stays and
// the active window is not reassigned.
func (l *Lifecycle) Minimize(id string) bool {
	if !l.registry.Has(id) {
		return false
	}
	l.registry.SetVisible(id, false)
	l.taskbar.Deactivate(id)
	return true
}

// Maximize toggles id between the full viewport and its saved geometry,
// then raises it.
func (l *Lifecycle) Maximize(id string) bool {
	rec, ok := l.registry.Lookup(id)
	if !ok {
		return false
	}

	if rec.Maximized {
		l.registry.EndMaximize(id)
	} else {
		l.registry.BeginMaximize(id, l.bounds().Maximized())
	}
	l.focus.Focus(id)
	return true
}

// Toggle minimizes a visible window and shows a hidden one. Unlike Open it
// never creates a taskbar entry; it is reached from an existing entry.
func (l *Lifecycle) Toggle(id string) {
	rec, ok := l.registry.Lookup(id)
	if !ok {
		return
	}

	if rec.Visible {
		l.Minimize(id)
		return
	}
	l.registry.SetVisible(id, true)
	l.focus.Focus(id)
}
