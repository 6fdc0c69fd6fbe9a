package vm

import "github.com/wudi/intmud/values"

// loadDynamic implements LoadDynamic (§4.5): a this-field named n wins even
// if its value is Null, otherwise fall back to the global map (absent
// globals read as Null without creating an entry).
func (vm *VirtualMachine) loadDynamic(frame *CallFrame, n string) *values.Value {
	if frame != nil && frame.This != nil && !frame.This.IsSpecial() && frame.This.HasField(n) {
		v, _ := frame.This.Field(n)
		return v
	}
	if v, ok := vm.globals[globalKey(n)]; ok {
		return v
	}
	return values.Null()
}

// storeDynamic implements StoreDynamic: same precedence as loadDynamic,
// but a store that lands on neither the this-object nor an existing
// global creates a new global entry (§4.5 closing rule).
func (vm *VirtualMachine) storeDynamic(frame *CallFrame, n string, v *values.Value) {
	if frame != nil && frame.This != nil && !frame.This.IsSpecial() && frame.This.HasField(n) {
		frame.This.SetField(n, v)
		return
	}
	vm.globals[globalKey(n)] = v
}
