package desktop

// WindowRecord holds the runtime state of one window
type WindowRecord struct {
	ID        string    `json:"id"`
	Visible   bool      `json:"visible"`
	ZOrder    int64     `json:"z_order"`
	Maximized bool      `json:"maximized"`
	Saved     *Geometry `json:"saved_geometry,omitempty"` // Set only while maximized
	Geometry  Geometry  `json:"geometry"`
}

// clone returns a copy that shares no memory with the record
func (r *WindowRecord) clone() WindowRecord {
	c := *r
	if r.Saved != nil {
		saved := *r.Saved
		c.Saved = &saved
	}
	return c
}

// Registry is the single source of truth for window state.
// Records are created on first access and never removed.
// Not safe for concurrent use; Desktop serialises access.
type Registry struct {
	records  map[string]*WindowRecord
	defaults map[string]Geometry
	fallback Geometry
}

// NewRegistry creates a registry. defaults holds the initial geometry of known
// windows; any other id starts at fallback.
func NewRegistry(fallback Geometry, defaults map[string]Geometry) *Registry {
	d := make(map[string]Geometry, len(defaults))
	for id, g := range defaults {
		d[id] = Sanitize(g)
	}
	return &Registry{
		records:  make(map[string]*WindowRecord),
		defaults: d,
		fallback: Sanitize(fallback),
	}
}

// record returns the live record for id, creating it if needed
func (r *Registry) record(id string) *WindowRecord {
	rec, ok := r.records[id]
	if ok {
		return rec
	}

	g, ok := r.defaults[id]
	if !ok {
		g = r.fallback
	}
	rec = &WindowRecord{ID: id, Geometry: g}
	r.records[id] = rec
	return rec
}

// Get returns a copy of the record for id, creating a default record on first access
func (r *Registry) Get(id string) WindowRecord {
	return r.record(id).clone()
}

// Lookup returns a copy of the record for id without creating one
func (r *Registry) Lookup(id string) (WindowRecord, bool) {
	rec, ok := r.records[id]
	if !ok {
		return WindowRecord{}, false
	}
	return rec.clone(), true
}

// Has reports whether a record exists for id
func (r *Registry) Has(id string) bool {
	_, ok := r.records[id]
	return ok
}

// IDs returns the ids of all records
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.records))
	for id := range r.records {
		ids = append(ids, id)
	}
	return ids
}

// SetVisible shows or hides a window
func (r *Registry) SetVisible(id string, visible bool) {
	r.record(id).Visible = visible
}

// SetGeometry replaces the live geometry of a window
func (r *Registry) SetGeometry(id string, g Geometry) {
	r.record(id).Geometry = Sanitize(g)
}

// SetZOrder sets the stacking position of a window
func (r *Registry) SetZOrder(id string, z int64) {
	r.record(id).ZOrder = z
}

// BeginMaximize saves the current geometry and switches the window to full.
// Returns false without changes if the window is already maximized.
func (r *Registry) BeginMaximize(id string, full Geometry) bool {
	rec := r.record(id)
	if rec.Maximized {
		return false
	}

	saved := rec.Geometry
	rec.Saved = &saved
	rec.Geometry = Sanitize(full)
	rec.Maximized = true
	return true
}

// EndMaximize restores the geometry saved by BeginMaximize.
// Returns false without changes if the window is not maximized.
func (r *Registry) EndMaximize(id string) bool {
	rec, ok := r.records[id]
	if !ok || !rec.Maximized {
		return false
	}

	if rec.Saved != nil {
		rec.Geometry = *rec.Saved
	}
	rec.Saved = nil
	rec.Maximized = false
	return true
}
