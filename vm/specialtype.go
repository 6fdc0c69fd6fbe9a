package vm

import (
	"os"
	"strings"
	"sync"

	"github.com/wudi/intmud/object"
	"github.com/wudi/intmud/values"
)

// SpecialTypeFactory constructs the opaque handle backing a special-type
// Object, from the arguments passed to InitSpecialType.
type SpecialTypeFactory func(args []*values.Value) (any, error)

// SpecialTypeDispatcher forwards property and method access on a
// special-type Object to its host-provided implementation (§4.8, §9
// "Special types as external collaborators").
type SpecialTypeDispatcher interface {
	GetProperty(handle any, name string) (*values.Value, bool)
	SetProperty(handle any, name string, v *values.Value) bool
	CallMethod(handle any, name string, args []*values.Value) (*values.Value, bool)
}

type specialTypeEntry struct {
	factory    SpecialTypeFactory
	dispatcher SpecialTypeDispatcher
}

// SpecialTypeRegistry is the host's extension point, installed via
// register_special_type(name, factory, dispatcher). Lookup is
// case-insensitive, keyed by the tag the InitSpecialType opcode names.
type SpecialTypeRegistry struct {
	mu      sync.RWMutex
	entries map[string]specialTypeEntry
}

func NewSpecialTypeRegistry() *SpecialTypeRegistry {
	r := &SpecialTypeRegistry{entries: make(map[string]specialTypeEntry)}
	r.Register("arquivo", arquivoFactory, arquivoDispatcher{})
	r.Register("buffer", bufferFactory, bufferDispatcher{})
	return r
}

func (r *SpecialTypeRegistry) Register(name string, factory SpecialTypeFactory, dispatcher SpecialTypeDispatcher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[strings.ToLower(name)] = specialTypeEntry{factory: factory, dispatcher: dispatcher}
}

// disable removes a built-in reference dispatcher, used by Config's
// special_types toggles to keep a sandboxed VM from touching the
// filesystem via `arquivo` while still allowing `buffer`.
func (r *SpecialTypeRegistry) disable(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, strings.ToLower(name))
}

func (r *SpecialTypeRegistry) lookup(name string) (specialTypeEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[strings.ToLower(name)]
	return e, ok
}

// Construct runs InitSpecialType: finds the named tag's factory and
// returns a fresh special-type Object. If no dispatcher is registered for
// the tag (e.g. sockets/timers/telatxt, which ship with none per §9),
// the Object is still produced but every access on it yields Null.
func (r *SpecialTypeRegistry) Construct(tag string, args []*values.Value) (*object.Object, error) {
	e, ok := r.lookup(tag)
	if !ok {
		return object.NewSpecial(tag, nil), nil
	}
	handle, err := e.factory(args)
	if err != nil {
		return nil, err
	}
	return object.NewSpecial(tag, handle), nil
}

func (r *SpecialTypeRegistry) getProperty(o *object.Object, name string) *values.Value {
	e, ok := r.lookup(o.SpecialTag)
	if !ok {
		return values.Null()
	}
	if v, ok := e.dispatcher.GetProperty(o.SpecialHandle, name); ok {
		return v
	}
	return values.Null()
}

func (r *SpecialTypeRegistry) setProperty(o *object.Object, name string, v *values.Value) {
	e, ok := r.lookup(o.SpecialTag)
	if !ok {
		return
	}
	e.dispatcher.SetProperty(o.SpecialHandle, name, v)
}

func (r *SpecialTypeRegistry) callMethod(o *object.Object, name string, args []*values.Value) *values.Value {
	e, ok := r.lookup(o.SpecialTag)
	if !ok {
		return values.Null()
	}
	if v, ok := e.dispatcher.CallMethod(o.SpecialHandle, name, args); ok {
		return v
	}
	return values.Null()
}

// --- reference dispatcher: arquivo (file), backed by *os.File ---

type arquivoHandle struct {
	name string
	file *os.File
}

func arquivoFactory(args []*values.Value) (any, error) {
	name := ""
	if len(args) > 0 {
		name = args[0].AsString()
	}
	return &arquivoHandle{name: name}, nil
}

type arquivoDispatcher struct{}

func (arquivoDispatcher) GetProperty(handle any, name string) (*values.Value, bool) {
	h := handle.(*arquivoHandle)
	switch strings.ToLower(name) {
	case "nome":
		return values.String(h.name), true
	}
	return nil, false
}

func (arquivoDispatcher) SetProperty(handle any, name string, v *values.Value) bool {
	h := handle.(*arquivoHandle)
	if strings.ToLower(name) == "nome" {
		h.name = v.AsString()
		return true
	}
	return false
}

func (arquivoDispatcher) CallMethod(handle any, name string, args []*values.Value) (*values.Value, bool) {
	h := handle.(*arquivoHandle)
	switch strings.ToLower(name) {
	case "abrir":
		mode := os.O_RDWR | os.O_CREATE
		f, err := os.OpenFile(h.name, mode, 0644)
		if err != nil {
			return values.Bool(false), true
		}
		h.file = f
		return values.Bool(true), true
	case "ler":
		if h.file == nil {
			return values.String(""), true
		}
		buf := make([]byte, 4096)
		n, _ := h.file.Read(buf)
		return values.String(string(buf[:n])), true
	case "escrever":
		if h.file == nil || len(args) == 0 {
			return values.Bool(false), true
		}
		_, err := h.file.WriteString(args[0].AsString())
		return values.Bool(err == nil), true
	case "fechar":
		if h.file != nil {
			err := h.file.Close()
			h.file = nil
			return values.Bool(err == nil), true
		}
		return values.Bool(true), true
	}
	return nil, false
}

// --- reference dispatcher: buffer (in-memory text buffer) ---

type bufferHandle struct {
	sb strings.Builder
}

func bufferFactory(args []*values.Value) (any, error) {
	return &bufferHandle{}, nil
}

type bufferDispatcher struct{}

func (bufferDispatcher) GetProperty(handle any, name string) (*values.Value, bool) {
	return nil, false
}

func (bufferDispatcher) SetProperty(handle any, name string, v *values.Value) bool {
	return false
}

func (bufferDispatcher) CallMethod(handle any, name string, args []*values.Value) (*values.Value, bool) {
	h := handle.(*bufferHandle)
	switch strings.ToLower(name) {
	case "add":
		if len(args) > 0 {
			h.sb.WriteString(args[0].AsString())
		}
		return values.Null(), true
	case "obtem":
		return values.String(h.sb.String()), true
	case "limpa":
		h.sb.Reset()
		return values.Null(), true
	}
	return nil, false
}
