// Package runtime implements the builtin function surface (§6): text,
// numeric, array, type-introspection, object, I/O, substitution, time,
// and meta builtins, each a native Go closure in the teacher's
// GetXxxFunctions() table idiom.
package runtime

import (
	"github.com/wudi/intmud/object"
	"github.com/wudi/intmud/unit"
	"github.com/wudi/intmud/values"
)

// Context is the narrow surface a builtin needs from the interpreter,
// mirroring the teacher's registry.BuiltinCallContext split: this package
// never imports vm (which would cycle back to this package), it only
// depends on this interface, which the vm package's per-call frameContext
// implements.
type Context interface {
	This() *object.Object
	Args() []*values.Value

	Write(s string)
	ReadLine() string

	Registry() *object.Registry
	Table() *unit.Table

	NewObject(className string, args []*values.Value) (*values.Value, error)
	DeleteObject(target *values.Value) (*values.Value, error)
	CallMethodValue(target *values.Value, name string, args []*values.Value) (*values.Value, error)
	CallExpression(defining *unit.Unit, c *unit.Constant, this *object.Object, args []*values.Value) (*values.Value, error)
	ConstructSpecial(tag string, args []*values.Value) (*values.Value, error)

	RandomProbability() int
	RandomFloat() float64
	RandomInt(lo, hi int64) int64
}

// Builtin is one native function: its contract name and implementation.
type Builtin struct {
	Name string
	Fn   func(ctx Context, args []*values.Value) (*values.Value, error)
}

// arg returns args[i] or Null if out of range — out-of-range argument
// load is a silent Null per §7, not a fault, and builtins follow the same
// permissive contract.
func arg(args []*values.Value, i int) *values.Value {
	if i < 0 || i >= len(args) {
		return values.Null()
	}
	return args[i]
}
