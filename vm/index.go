package vm

import (
	"github.com/wudi/intmud/object"
	"github.com/wudi/intmud/values"
)

// loadIndex implements LoadIndex: Array indexing (out-of-range reads as
// Null) and single-character String indexing; anything else is Null.
func loadIndex(target, idxVal *values.Value) *values.Value {
	idx := int(idxVal.AsInt())
	switch {
	case target.IsArray():
		return target.Array().Get(idx)
	case target.IsString():
		s := target.AsString()
		if idx < 0 || idx >= len(s) {
			return values.Null()
		}
		return values.String(string(s[idx]))
	default:
		return values.Null()
	}
}

// storeIndex implements StoreIndex: Array auto-grows with Null up to the
// write, String targets are immutable and silently discard the store.
func storeIndex(target, idxVal, v *values.Value) {
	if !target.IsArray() {
		return
	}
	idx := int(idxVal.AsInt())
	target.Array().Set(idx, v)
}

func isInstanceOf(v *values.Value, className string) bool {
	if !v.IsObject() {
		return false
	}
	o, ok := v.Object().(*object.Object)
	if !ok {
		return false
	}
	return o.IsInstanceOf(className)
}
