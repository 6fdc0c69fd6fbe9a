package unit

import "sync"

// Table is a name-indexed collection of Units the interpreter consults to
// resolve class names for New, static-qualified calls, and $classname.
// Keyed case-insensitively, mirroring the teacher's registry keying.
type Table struct {
	mu    sync.RWMutex
	units map[string]*Unit
}

func NewTable() *Table {
	return &Table{units: make(map[string]*Unit)}
}

func (t *Table) Register(u *Unit) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.units[keyFor(u.ClassName)] = u
}

func (t *Table) Get(className string) (*Unit, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	u, ok := t.units[keyFor(className)]
	return u, ok
}

func (t *Table) All() []*Unit {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*Unit, 0, len(t.units))
	for _, u := range t.units {
		out = append(out, u)
	}
	return out
}
