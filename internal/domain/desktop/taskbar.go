package desktop

// TaskbarEntry is the taskbar control representing one open window
type TaskbarEntry struct {
	WindowID string `json:"window_id"`
	Label    string `json:"label"`
	Active   bool   `json:"active"`
}

// Toggler receives clicks routed from taskbar entries
type Toggler interface {
	Toggle(id string)
}

// Taskbar keeps one entry per open window, in the order windows were opened
type Taskbar struct {
	entries []*TaskbarEntry
	index   map[string]*TaskbarEntry
	active  string
	toggler Toggler
}

// NewTaskbar creates an empty taskbar
func NewTaskbar() *Taskbar {
	return &Taskbar{
		index: make(map[string]*TaskbarEntry),
	}
}

// Bind sets the target for entry clicks
func (t *Taskbar) Bind(toggler Toggler) {
	t.toggler = toggler
}

// OnOpen adds an entry for id unless one already exists.
// A window that is already the active one starts highlighted.
func (t *Taskbar) OnOpen(id string) bool {
	if _, ok := t.index[id]; ok {
		return false
	}

	entry := &TaskbarEntry{
		WindowID: id,
		Label:    id,
		Active:   id != "" && id == t.active,
	}
	t.entries = append(t.entries, entry)
	t.index[id] = entry
	return true
}

// OnClose removes the entry for id
func (t *Taskbar) OnClose(id string) bool {
	if _, ok := t.index[id]; !ok {
		return false
	}

	delete(t.index, id)
	for i, e := range t.entries {
		if e.WindowID == id {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			break
		}
	}
	return true
}

// FocusChanged marks the entry for activeID active and every other entry inactive
func (t *Taskbar) FocusChanged(activeID string) {
	t.active = activeID
	for _, e := range t.entries {
		e.Active = e.WindowID == activeID
	}
}

// Deactivate removes the highlight from id's entry without changing the others
func (t *Taskbar) Deactivate(id string) {
	if e, ok := t.index[id]; ok {
		e.Active = false
	}
}

// Has reports whether an entry exists for id
func (t *Taskbar) Has(id string) bool {
	_, ok := t.index[id]
	return ok
}

// Click routes a click on id's entry to the bound toggler.
// Returns false if there is no entry for id.
func (t *Taskbar) Click(id string) bool {
	if !t.Has(id) || t.toggler == nil {
		return false
	}
	t.toggler.Toggle(id)
	return true
}

// Entries returns a copy of the entries in display order
func (t *Taskbar) Entries() []TaskbarEntry {
	out := make([]TaskbarEntry, len(t.entries))
	for i, e := range t.entries {
		out[i] = *e
	}
	return out
}
