package vm

import (
	"github.com/wudi/intmud/object"
	"github.com/wudi/intmud/unit"
	"github.com/wudi/intmud/values"
)

// frameContext adapts one VirtualMachine call to runtime.Context, bound to
// the frame a builtin is invoked from (frame is nil for top-level Execute
// calls, matching the no-this-object embedding entry point).
type frameContext struct {
	vm    *VirtualMachine
	frame *CallFrame
}

func (c frameContext) This() *object.Object {
	if c.frame == nil {
		return nil
	}
	return c.frame.This
}

func (c frameContext) Args() []*values.Value {
	if c.frame == nil {
		return nil
	}
	return c.frame.Args
}

func (c frameContext) Write(s string) {
	c.vm.capture.Write(s)
	c.vm.writeFn(s)
}

func (c frameContext) ReadLine() string { return c.vm.readFn() }

func (c frameContext) Registry() *object.Registry { return c.vm.registry }
func (c frameContext) Table() *unit.Table         { return c.vm.table }

func (c frameContext) NewObject(className string, args []*values.Value) (*values.Value, error) {
	o, err := c.vm.createObject(className, args)
	if err != nil {
		return nil, err
	}
	return values.FromObject(o), nil
}

func (c frameContext) DeleteObject(target *values.Value) (*values.Value, error) {
	return c.vm.deleteObject(target)
}

func (c frameContext) CallMethodValue(target *values.Value, name string, args []*values.Value) (*values.Value, error) {
	return c.vm.dispatchCallMethod(c.frame, target, name, args)
}

func (c frameContext) CallExpression(defining *unit.Unit, constant *unit.Constant, this *object.Object, args []*values.Value) (*values.Value, error) {
	return c.vm.evalExpression(defining, constant, this, args)
}

func (c frameContext) ConstructSpecial(tag string, args []*values.Value) (*values.Value, error) {
	o, err := c.vm.specials.Construct(tag, args)
	if err != nil {
		return nil, err
	}
	c.vm.registry.Register(o.ClassName(), o)
	return values.FromObject(o), nil
}

func (c frameContext) RandomProbability() int { return c.vm.rng.Intn(100) }
func (c frameContext) RandomFloat() float64   { return c.vm.rng.Float64() }
func (c frameContext) RandomInt(lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	return lo + c.vm.rng.Int63n(hi-lo+1)
}
