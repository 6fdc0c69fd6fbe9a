package vm

import (
	"github.com/wudi/intmud/object"
	"github.com/wudi/intmud/runtime"
	"github.com/wudi/intmud/unit"
	"github.com/wudi/intmud/values"
)

// classRef adapts *unit.Unit to values.ClassRef. It can't implement the
// interface directly: Unit already has a ClassName field, and a method
// can't share that name with it.
type classRef struct{ u *unit.Unit }

func (c classRef) ClassName() string { return c.u.ClassName }

// loadClassRef implements `$classname` / LoadClass (§4.3): the first
// registered Object of that class, else a ClassReference to its Unit,
// else Null if the class itself is unregistered (permissive per §7).
func (vm *VirtualMachine) loadClassRef(className string) *values.Value {
	if o := vm.registry.GetFirstObject(className); o != nil {
		return values.FromObject(o)
	}
	if u, ok := vm.table.Get(className); ok {
		return values.FromClassRef(classRef{u})
	}
	return values.Null()
}

// resolveCall implements the unqualified Call opcode's resolution order
// (§4.3): this-method, this-expression-constant, current-unit-function,
// current-unit-expression-constant, builtin, else Null.
func (vm *VirtualMachine) resolveCall(frame *CallFrame, name string, args []*values.Value) (*values.Value, error) {
	if frame.This != nil {
		if defUnit, fn, ok := frame.This.ResolveMethod(name); ok {
			return vm.invokeFunction(defUnit, fn, frame.This, args)
		}
		if defUnit, c, ok := frame.This.ResolveConstant(name); ok && c.Kind == unit.ConstExpression {
			return vm.evalExpression(defUnit, c, frame.This, args)
		}
	}
	if fn, ok := frame.DefiningUnit.Function(name); ok {
		return vm.invokeFunction(frame.DefiningUnit, fn, nil, args)
	}
	if c, ok := frame.DefiningUnit.Constant(name); ok && c.Kind == unit.ConstExpression {
		return vm.evalExpression(frame.DefiningUnit, c, nil, args)
	}
	if b, ok := vm.builtins.Lookup(name); ok {
		return vm.callBuiltin(b, frame, args)
	}
	return values.Null(), nil
}

// dispatchCallMethod implements CallMethod: target may be an Object
// (normal hierarchy dispatch, possibly a special-type forward) or a
// ClassReference (static-qualified `classname:fn`, keeping the caller's
// this-object per §4.3 but switching to the named class's definition).
func (vm *VirtualMachine) dispatchCallMethod(frame *CallFrame, target *values.Value, name string, args []*values.Value) (*values.Value, error) {
	switch {
	case target.IsObject():
		o, ok := target.Object().(*object.Object)
		if !ok {
			return values.Null(), nil
		}
		if o.IsSpecial() {
			return vm.specials.callMethod(o, name, args), nil
		}
		defUnit, fn, ok := o.ResolveMethod(name)
		if !ok {
			if defUnit2, c, ok2 := o.ResolveConstant(name); ok2 && c.Kind == unit.ConstExpression {
				return vm.evalExpression(defUnit2, c, o, args)
			}
			return values.Null(), nil
		}
		return vm.invokeFunction(defUnit, fn, o, args)

	case target.IsClassRef():
		cr, ok := target.Class().(classRef)
		if !ok {
			return values.Null(), nil
		}
		var this *object.Object
		if frame != nil {
			this = frame.This
		}
		if fn, ok := cr.u.Function(name); ok {
			return vm.invokeFunction(cr.u, fn, this, args)
		}
		if c, ok := cr.u.Constant(name); ok && c.Kind == unit.ConstExpression {
			return vm.evalExpression(cr.u, c, this, args)
		}
		return values.Null(), nil

	default:
		return values.Null(), nil
	}
}

func (vm *VirtualMachine) callBuiltin(b *runtime.Builtin, frame *CallFrame, args []*values.Value) (*values.Value, error) {
	return b.Fn(frameContext{vm: vm, frame: frame}, args)
}

// createObject implements New / criar: resolve the class, build its
// hierarchy, register it, then invoke `ini` (falling back to
// `inicializar`) if present (§3 Lifecycle).
func (vm *VirtualMachine) createObject(className string, args []*values.Value) (*object.Object, error) {
	u, ok := vm.table.Get(className)
	if !ok {
		return nil, &Fault{Kind: ErrClassNotFound, Message: className}
	}
	o := object.New(u, vm.table)
	vm.registry.Register(u.ClassName, o)
	vm.profile.recordAlloc()

	ctor, fn, ok := o.ResolveMethod("ini")
	if !ok {
		ctor, fn, ok = o.ResolveMethod("inicializar")
	}
	if ok {
		if _, err := vm.invokeFunction(ctor, fn, o, args); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// deleteObject implements apagar: call `fim` on the hierarchy if present,
// then unregister. Returns Null always (the object handle itself is not
// consumed beyond this).
func (vm *VirtualMachine) deleteObject(target *values.Value) (*values.Value, error) {
	if !target.IsObject() {
		return values.Null(), nil
	}
	o, ok := target.Object().(*object.Object)
	if !ok {
		return values.Null(), nil
	}
	if o.IsSpecial() {
		vm.registry.Unregister(o)
		return values.Null(), nil
	}
	if defUnit, fn, ok := o.ResolveMethod("fim"); ok {
		if _, err := vm.invokeFunction(defUnit, fn, o, nil); err != nil {
			return nil, err
		}
	}
	vm.registry.Unregister(o)
	return values.Null(), nil
}
