package vm

import (
	"github.com/wudi/intmud/object"
	"github.com/wudi/intmud/unit"
	"github.com/wudi/intmud/values"
)

// CallFrame is the per-call record from data-model §3. Args is shared with
// the caller (or with whatever slice the caller passed) — stores to
// `arg i` mutate the backing array, which is how the language lets a
// callee observe mutations a caller made after the call was dispatched in
// some compiled patterns.
type CallFrame struct {
	Function     *unit.Function
	DefiningUnit *unit.Unit
	This         *object.Object
	Args         []*values.Value
	StackBase    int
}
