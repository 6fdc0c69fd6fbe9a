// Package object implements live class instances: field storage, resolved
// base-unit hierarchies (the MRO dispatch walks), and the process-wide
// per-class Registry exposed to the `$classname` primitive and the
// objantes/objdepois builtins.
package object

import (
	"strings"
	"sync/atomic"

	"github.com/wudi/intmud/unit"
	"github.com/wudi/intmud/values"
)

var nextIdentity uint64

// Object is a live instance of a Unit's class. Fields are keyed
// case-insensitively and initialized from the defining Unit's declared
// variable defaults. prev/next form the intrusive per-class doubly linked
// list the Registry maintains; an Object belongs to exactly one such list
// from creation to apagar.
type Object struct {
	Defining *unit.Unit
	// Hierarchy is the resolved MRO: Defining at index 0, then each base
	// transitively, depth-first, declaration-order, first-match, with
	// diamond bases flattened by first occurrence (§9 Inheritance MRO).
	Hierarchy []*unit.Unit

	fields map[string]*values.Value

	identity uint64

	prev *Object
	next *Object
	// class is the Registry key this Object currently lives under, used
	// by Unregister to find its list without a second lookup.
	class string

	// SpecialTag, when non-empty, marks this Object as an opaque external
	// collaborator (§4.8/§9): field and method access on it is forwarded
	// to a host-registered dispatcher instead of consulting fields/
	// Hierarchy. SpecialHandle is whatever payload that dispatcher's
	// factory produced (e.g. an *os.File wrapper).
	SpecialTag    string
	SpecialHandle any
}

// IsSpecial reports whether this Object is an opaque special-type
// collaborator rather than a user-defined-class instance.
func (o *Object) IsSpecial() bool { return o.SpecialTag != "" }

// New allocates an Object of the defining Unit's class, resolving its base-unit chain
// against table. It does not register the Object or invoke a constructor
// method — callers (the interpreter's New opcode, or criar) are
// responsible for that per the lifecycle in data-model §3.
func New(defining *unit.Unit, table *unit.Table) *Object {
	o := &Object{
		Defining:  defining,
		Hierarchy: ResolveHierarchy(defining, table),
		fields:    make(map[string]*values.Value),
		identity:  atomic.AddUint64(&nextIdentity, 1),
	}
	for _, u := range o.Hierarchy {
		for _, v := range u.Vars {
			key := fieldKey(v.Name)
			if _, exists := o.fields[key]; !exists {
				o.fields[key] = values.Null()
			}
		}
	}
	return o
}

func fieldKey(name string) string { return strings.ToLower(name) }

// NewSpecial allocates an opaque special-type Object (§4.8): no defining
// Unit, no hierarchy, no field map — all access is forwarded to the
// host dispatcher keyed by tag.
func NewSpecial(tag string, handle any) *Object {
	return &Object{
		SpecialTag:    tag,
		SpecialHandle: handle,
		identity:      atomic.AddUint64(&nextIdentity, 1),
	}
}

// ClassName and Identity satisfy values.ObjectRef.
func (o *Object) ClassName() string {
	if o.IsSpecial() {
		return o.SpecialTag
	}
	return o.Defining.ClassName
}
func (o *Object) Identity() uintptr { return uintptr(o.identity) }

// Field loads a field by case-insensitive name; absent fields yield Null,
// present (report true).
func (o *Object) Field(name string) (*values.Value, bool) {
	v, ok := o.fields[fieldKey(name)]
	if !ok {
		return values.Null(), false
	}
	return v, true
}

// SetField stores a field unconditionally, auto-creating it if absent.
// Narrow-integer clamping is the VM's responsibility (it knows the
// declared Variable type); this layer is a plain map.
func (o *Object) SetField(name string, v *values.Value) {
	o.fields[fieldKey(name)] = v
}

// HasField reports whether name exists on this Object, regardless of its
// current value — LoadDynamic/StoreDynamic (§4.5) must distinguish "field
// present but Null" from "field absent".
func (o *Object) HasField(name string) bool {
	_, ok := o.fields[fieldKey(name)]
	return ok
}

// VariableType looks up the declared type tag for name by walking the
// hierarchy, used by StoreField's narrow-integer clamping.
func (o *Object) VariableType(name string) (unit.VarType, bool) {
	for _, u := range o.Hierarchy {
		if v, ok := u.Variable(name); ok {
			return v.Type, true
		}
	}
	return 0, false
}

// ResolveMethod walks the hierarchy for the first Unit defining name,
// returning that Unit (whose string pool the call must execute against,
// per §4.3) and its Function.
func (o *Object) ResolveMethod(name string) (*unit.Unit, *unit.Function, bool) {
	for _, u := range o.Hierarchy {
		if f, ok := u.Function(name); ok {
			return u, f, true
		}
	}
	return nil, nil, false
}

// ResolveConstant mirrors ResolveMethod for constants, including
// expression constants promoted to callables under §4.3.
func (o *Object) ResolveConstant(name string) (*unit.Unit, *unit.Constant, bool) {
	for _, u := range o.Hierarchy {
		if c, ok := u.Constant(name); ok {
			return u, c, true
		}
	}
	return nil, nil, false
}

// IsInstanceOf implements InstanceOf: true iff className equals this
// Object's class or any base in its hierarchy, case-insensitively.
func (o *Object) IsInstanceOf(className string) bool {
	target := strings.ToLower(className)
	for _, u := range o.Hierarchy {
		if strings.ToLower(u.ClassName) == target {
			return true
		}
	}
	return false
}

// ResolveHierarchy computes the MRO for defining: itself first, then each
// base transitively in declaration order, depth-first, deduplicated by
// first occurrence (diamond flattening).
func ResolveHierarchy(defining *unit.Unit, table *unit.Table) []*unit.Unit {
	var order []*unit.Unit
	seen := make(map[string]bool)
	var walk func(u *unit.Unit)
	walk = func(u *unit.Unit) {
		key := strings.ToLower(u.ClassName)
		if seen[key] {
			return
		}
		seen[key] = true
		order = append(order, u)
		for _, baseName := range u.Bases {
			if base, ok := table.Get(baseName); ok {
				walk(base)
			}
		}
	}
	walk(defining)
	return order
}
