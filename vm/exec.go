package vm

import (
	"github.com/wudi/intmud/opcodes"
	"github.com/wudi/intmud/values"
)

// executeInstruction runs exactly one already-fetched instruction (op was
// read at ip by the caller's Reader, which now sits just past it) and
// reports whether the frame is finished: done is true only for Return and
// ReturnValue; falling off the end of the bytecode is handled by the caller.
func (vm *VirtualMachine) executeInstruction(frame *CallFrame, r *opcodes.Reader, op opcodes.Opcode, ip int) (*values.Value, bool, error) {
	pool := frame.DefiningUnit

	fault := func(kind error, format string, args ...any) (*values.Value, bool, error) {
		return nil, false, newFault(kind, op, ip, format, args...)
	}

	switch op {
	case opcodes.Nop, opcodes.Debug:
		return nil, false, nil

	case opcodes.Line:
		r.ReadU16()
		return nil, false, nil

	case opcodes.Pop:
		if _, err := vm.pop(frame); err != nil {
			return nil, false, err
		}
		return nil, false, nil

	case opcodes.Dup:
		v, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		if err := vm.push(v); err != nil {
			return nil, false, err
		}
		if err := vm.push(v); err != nil {
			return nil, false, err
		}
		return nil, false, nil

	case opcodes.Swap:
		b, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		a, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		vm.push(b)
		vm.push(a)
		return nil, false, nil

	case opcodes.PushNull:
		return nil, false, vm.push(values.Null())
	case opcodes.PushTrue:
		return nil, false, vm.push(values.Bool(true))
	case opcodes.PushFalse:
		return nil, false, vm.push(values.Bool(false))
	case opcodes.PushInt:
		return nil, false, vm.push(values.Int(int64(r.ReadI32())))
	case opcodes.PushDouble:
		return nil, false, vm.push(values.Double(r.ReadF64()))
	case opcodes.PushString:
		return nil, false, vm.push(values.String(pool.PoolString(r.ReadU16())))

	case opcodes.LoadLocal:
		idx := r.ReadU16()
		if int(idx) >= vm.maxLocals || int(idx) >= len(vm.locals) {
			return fault(ErrUnknownOpcode, "local index %d out of range", idx)
		}
		v := vm.locals[idx]
		if v == nil {
			v = values.Null()
		}
		return nil, false, vm.push(v)

	case opcodes.StoreLocal:
		idx := r.ReadU16()
		v, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		if int(idx) < vm.maxLocals && int(idx) < len(vm.locals) {
			vm.locals[idx] = v
		}
		return nil, false, nil

	case opcodes.LoadGlobal:
		name := pool.PoolString(r.ReadU16())
		if v, ok := vm.globals[globalKey(name)]; ok {
			return nil, false, vm.push(v)
		}
		return nil, false, vm.push(values.Null())

	case opcodes.StoreGlobal:
		name := pool.PoolString(r.ReadU16())
		v, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		vm.globals[globalKey(name)] = v
		return nil, false, nil

	case opcodes.LoadField:
		name := pool.PoolString(r.ReadU16())
		target, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		return nil, false, vm.push(loadField(target, name, vm.specials))

	case opcodes.StoreField:
		name := pool.PoolString(r.ReadU16())
		v, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		target, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		storeField(target, name, v, vm.specials)
		return nil, false, nil

	case opcodes.LoadFieldDynamic:
		nameVal, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		target, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		return nil, false, vm.push(loadField(target, nameVal.AsString(), vm.specials))

	case opcodes.StoreFieldDynamic:
		v, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		nameVal, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		target, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		storeField(target, nameVal.AsString(), v, vm.specials)
		return nil, false, nil

	case opcodes.LoadArg:
		idx := int(r.ReadU8())
		if idx < 0 || idx >= len(frame.Args) {
			return nil, false, vm.push(values.Null())
		}
		return nil, false, vm.push(frame.Args[idx])

	case opcodes.StoreArg:
		idx := int(r.ReadU8())
		v, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		if idx >= 0 && idx < len(frame.Args) {
			frame.Args[idx] = v
		}
		return nil, false, nil

	case opcodes.LoadArgCount:
		return nil, false, vm.push(values.Int(int64(len(frame.Args))))

	case opcodes.LoadThis:
		if frame.This == nil {
			return nil, false, vm.push(values.Null())
		}
		return nil, false, vm.push(values.FromObject(frame.This))

	case opcodes.LoadIndex:
		idxVal, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		target, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		return nil, false, vm.push(loadIndex(target, idxVal))

	case opcodes.StoreIndex:
		v, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		idxVal, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		target, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		storeIndex(target, idxVal, v)
		return nil, false, nil

	case opcodes.LoadDynamic:
		nameVal, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		return nil, false, vm.push(vm.loadDynamic(frame, nameVal.AsString()))

	case opcodes.StoreDynamic:
		v, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		nameVal, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		vm.storeDynamic(frame, nameVal.AsString(), v)
		return nil, false, nil

	case opcodes.Concat:
		return nil, false, vm.binaryOp(frame, func(a, b *values.Value) *values.Value { return a.Concat(b) })

	case opcodes.Add:
		return nil, false, vm.binaryOp(frame, func(a, b *values.Value) *values.Value { return a.Add(b) })
	case opcodes.Sub:
		return nil, false, vm.binaryOp(frame, func(a, b *values.Value) *values.Value { return a.Sub(b) })
	case opcodes.Mul:
		return nil, false, vm.binaryOp(frame, func(a, b *values.Value) *values.Value { return a.Mul(b) })
	case opcodes.Div:
		return nil, false, vm.binaryOp(frame, func(a, b *values.Value) *values.Value { return a.Div(b) })
	case opcodes.Mod:
		return nil, false, vm.binaryOp(frame, func(a, b *values.Value) *values.Value { return a.Mod(b) })

	case opcodes.Neg:
		return nil, false, vm.unaryOp(frame, func(a *values.Value) *values.Value { return a.Neg() })
	case opcodes.Inc:
		return nil, false, vm.unaryOp(frame, func(a *values.Value) *values.Value { return a.Add(values.Int(1)) })
	case opcodes.Dec:
		return nil, false, vm.unaryOp(frame, func(a *values.Value) *values.Value { return a.Sub(values.Int(1)) })

	case opcodes.BitAnd:
		return nil, false, vm.binaryOp(frame, func(a, b *values.Value) *values.Value { return a.BitAnd(b) })
	case opcodes.BitOr:
		return nil, false, vm.binaryOp(frame, func(a, b *values.Value) *values.Value { return a.BitOr(b) })
	case opcodes.BitXor:
		return nil, false, vm.binaryOp(frame, func(a, b *values.Value) *values.Value { return a.BitXor(b) })
	case opcodes.BitNot:
		return nil, false, vm.unaryOp(frame, func(a *values.Value) *values.Value { return a.BitNot() })
	case opcodes.Shl:
		return nil, false, vm.binaryOp(frame, func(a, b *values.Value) *values.Value { return a.Shl(b) })
	case opcodes.Shr:
		return nil, false, vm.binaryOp(frame, func(a, b *values.Value) *values.Value { return a.Shr(b) })

	case opcodes.Eq:
		return nil, false, vm.boolOp(frame, func(a, b *values.Value) bool { return a.Eq(b) })
	case opcodes.Ne:
		return nil, false, vm.boolOp(frame, func(a, b *values.Value) bool { return !a.Eq(b) })
	case opcodes.Lt:
		return nil, false, vm.boolOp(frame, func(a, b *values.Value) bool { return a.Lt(b) })
	case opcodes.Le:
		return nil, false, vm.boolOp(frame, func(a, b *values.Value) bool { return a.Le(b) })
	case opcodes.Gt:
		return nil, false, vm.boolOp(frame, func(a, b *values.Value) bool { return a.Gt(b) })
	case opcodes.Ge:
		return nil, false, vm.boolOp(frame, func(a, b *values.Value) bool { return a.Ge(b) })
	case opcodes.StrictEq:
		return nil, false, vm.boolOp(frame, func(a, b *values.Value) bool { return a.StrictEq(b) })
	case opcodes.StrictNe:
		return nil, false, vm.boolOp(frame, func(a, b *values.Value) bool { return !a.StrictEq(b) })

	case opcodes.And:
		return nil, false, vm.boolOp(frame, func(a, b *values.Value) bool { return a.Truthy() && b.Truthy() })
	case opcodes.Or:
		return nil, false, vm.boolOp(frame, func(a, b *values.Value) bool { return a.Truthy() || b.Truthy() })
	case opcodes.Not:
		v, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		return nil, false, vm.push(values.Bool(!v.Truthy()))

	case opcodes.Jump:
		r.Jump(r.ReadI16())
		return nil, false, nil

	case opcodes.JumpIfTrue:
		offset := r.ReadI16()
		v, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		if v.Truthy() {
			r.Jump(offset)
		}
		return nil, false, nil

	case opcodes.JumpIfFalse:
		offset := r.ReadI16()
		v, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		if !v.Truthy() {
			r.Jump(offset)
		}
		return nil, false, nil

	case opcodes.JumpIfNull:
		offset := r.ReadI16()
		v, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		if v.IsNull() {
			r.Jump(offset)
		}
		return nil, false, nil

	case opcodes.JumpIfNotNull:
		offset := r.ReadI16()
		v, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		if !v.IsNull() {
			r.Jump(offset)
		}
		return nil, false, nil

	case opcodes.Call:
		name := pool.PoolString(r.ReadU16())
		argc := int(r.ReadU8())
		args, err := vm.popN(frame, argc)
		if err != nil {
			return nil, false, err
		}
		v, err := vm.resolveCall(frame, name, args)
		if err != nil {
			return nil, false, err
		}
		return nil, false, vm.push(v)

	case opcodes.CallMethod:
		name := pool.PoolString(r.ReadU16())
		argc := int(r.ReadU8())
		args, err := vm.popN(frame, argc)
		if err != nil {
			return nil, false, err
		}
		target, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		v, err := vm.dispatchCallMethod(frame, target, name, args)
		if err != nil {
			return nil, false, err
		}
		return nil, false, vm.push(v)

	case opcodes.CallMethodDynamic:
		argc := int(r.ReadU8())
		args, err := vm.popN(frame, argc)
		if err != nil {
			return nil, false, err
		}
		nameVal, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		target, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		v, err := vm.dispatchCallMethod(frame, target, nameVal.AsString(), args)
		if err != nil {
			return nil, false, err
		}
		return nil, false, vm.push(v)

	case opcodes.CallDynamic:
		argc := int(r.ReadU8())
		args, err := vm.popN(frame, argc)
		if err != nil {
			return nil, false, err
		}
		nameVal, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		v, err := vm.resolveCall(frame, nameVal.AsString(), args)
		if err != nil {
			return nil, false, err
		}
		return nil, false, vm.push(v)

	case opcodes.CallBuiltin:
		// Reserved: the numeric builtin id this opcode carries was never
		// wired up in the source runtime, which always pushed Null here.
		// Builtins are reached instead through the named Call opcode's
		// step-5 fallback (resolveCall), which is where real scripts
		// invoke them.
		r.ReadU16()
		argc := int(r.ReadU8())
		if _, err := vm.popN(frame, argc); err != nil {
			return nil, false, err
		}
		return nil, false, vm.push(values.Null())

	case opcodes.Return:
		vm.stack = vm.stack[:frame.StackBase]
		return values.Null(), true, nil

	case opcodes.ReturnValue:
		v, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		vm.stack = vm.stack[:frame.StackBase]
		return v, true, nil

	case opcodes.New:
		className := pool.PoolString(r.ReadU16())
		argc := int(r.ReadU8())
		args, err := vm.popN(frame, argc)
		if err != nil {
			return nil, false, err
		}
		o, err := vm.createObject(className, args)
		if err != nil {
			return nil, false, err
		}
		return nil, false, vm.push(values.FromObject(o))

	case opcodes.Delete:
		// apagar handles the actual lifecycle; this opcode only pops and
		// pushes Null, per §4.1's note.
		if _, err := vm.pop(frame); err != nil {
			return nil, false, err
		}
		return nil, false, vm.push(values.Null())

	case opcodes.TypeOf:
		v, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		return nil, false, vm.push(values.String(v.Kind().String()))

	case opcodes.InstanceOf:
		className := pool.PoolString(r.ReadU16())
		v, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		return nil, false, vm.push(values.Bool(isInstanceOf(v, className)))

	case opcodes.LoadClass:
		className := pool.PoolString(r.ReadU16())
		return nil, false, vm.push(vm.loadClassRef(className))

	case opcodes.LoadClassMember:
		className := pool.PoolString(r.ReadU16())
		member := pool.PoolString(r.ReadU16())
		key := globalKey(className + ":" + member)
		if v, ok := vm.globals[key]; ok {
			return nil, false, vm.push(v)
		}
		return nil, false, vm.push(values.Null())

	case opcodes.StoreClassMember:
		className := pool.PoolString(r.ReadU16())
		member := pool.PoolString(r.ReadU16())
		v, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		vm.globals[globalKey(className+":"+member)] = v
		return nil, false, nil

	case opcodes.LoadClassDynamic:
		nameVal, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		return nil, false, vm.push(vm.loadClassRef(nameVal.AsString()))

	case opcodes.LoadClassMemberDynamic:
		memberVal, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		classVal, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		key := globalKey(classVal.AsString() + ":" + memberVal.AsString())
		if v, ok := vm.globals[key]; ok {
			return nil, false, vm.push(v)
		}
		return nil, false, vm.push(values.Null())

	case opcodes.StoreClassMemberDynamic:
		v, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		memberVal, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		classVal, err := vm.pop(frame)
		if err != nil {
			return nil, false, err
		}
		vm.globals[globalKey(classVal.AsString()+":"+memberVal.AsString())] = v
		return nil, false, nil

	case opcodes.InitSpecialType:
		tag := pool.PoolString(r.ReadU16())
		o, err := vm.specials.Construct(tag, nil)
		if err != nil {
			return nil, false, err
		}
		vm.registry.Register(o.ClassName(), o)
		return nil, false, vm.push(values.FromObject(o))

	case opcodes.Terminate:
		return nil, false, newFault(ErrTerminate, op, ip, "")

	default:
		return fault(ErrUnknownOpcode, "opcode byte %d", byte(op))
	}
}

func (vm *VirtualMachine) binaryOp(frame *CallFrame, f func(a, b *values.Value) *values.Value) error {
	b, err := vm.pop(frame)
	if err != nil {
		return err
	}
	a, err := vm.pop(frame)
	if err != nil {
		return err
	}
	return vm.push(f(a, b))
}

func (vm *VirtualMachine) unaryOp(frame *CallFrame, f func(a *values.Value) *values.Value) error {
	a, err := vm.pop(frame)
	if err != nil {
		return err
	}
	return vm.push(f(a))
}

func (vm *VirtualMachine) boolOp(frame *CallFrame, f func(a, b *values.Value) bool) error {
	b, err := vm.pop(frame)
	if err != nil {
		return err
	}
	a, err := vm.pop(frame)
	if err != nil {
		return err
	}
	return vm.push(values.Bool(f(a, b)))
}
