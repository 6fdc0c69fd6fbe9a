// Package vm implements the fetch-decode-execute loop, dispatch rules,
// field/dynamic-name resolution, and constant-expression evaluation that
// make up the interpreter component of the execution core (§4).
package vm

import (
	"math/rand"
	"strings"

	"github.com/wudi/intmud/config"
	"github.com/wudi/intmud/object"
	"github.com/wudi/intmud/opcodes"
	"github.com/wudi/intmud/runtime"
	"github.com/wudi/intmud/unit"
	"github.com/wudi/intmud/values"
)

// VirtualMachine is one interpreter instance: its own operand stack, call
// stack, locals, and globals. Only the Registry is process-wide (§5); all
// other state here is per-VM and must not be shared across goroutines.
type VirtualMachine struct {
	root    *unit.Unit
	table   *unit.Table
	registry *object.Registry
	globals map[string]*values.Value

	stack  []*values.Value
	frames []*CallFrame
	locals [opcodes.MaxLocals]*values.Value

	writeFn func(string)
	readFn  func() string
	capture captureBuffer

	profile  *profileState
	specials *SpecialTypeRegistry
	builtins *runtime.Table

	rng *rand.Rand

	maxStack     int
	maxCallDepth int
	maxLocals    int
}

// processRegistry is the Registry every VirtualMachine in the process
// shares (§5).
var processRegistry = object.NewRegistry()

// NewVM wires a fresh interpreter around root (the entry unit Execute
// resolves top-level function names against) and table (every unit
// reachable for New/static-qualified calls/$classname, including root
// itself — callers must register root in table too), using the
// permissive default limits (§4.1's hard caps, unshrunk).
func NewVM(root *unit.Unit, table *unit.Table) *VirtualMachine {
	return NewVMWithConfig(root, table, config.Default())
}

// NewVMWithConfig is NewVM with a host-supplied Config: its Limits may
// shrink the hard caps (e.g. for a sandboxed script) but never grow past
// them — Config.clamp enforces that at load time, and a limit outside
// (0, hard cap] in a Config built by hand is reset to the hard cap here.
func NewVMWithConfig(root *unit.Unit, table *unit.Table, cfg config.Config) *VirtualMachine {
	if cfg.Limits.MaxStackSize <= 0 || cfg.Limits.MaxStackSize > opcodes.MaxStackSize {
		cfg.Limits.MaxStackSize = opcodes.MaxStackSize
	}
	if cfg.Limits.MaxCallDepth <= 0 || cfg.Limits.MaxCallDepth > opcodes.MaxCallDepth {
		cfg.Limits.MaxCallDepth = opcodes.MaxCallDepth
	}
	if cfg.Limits.MaxLocals <= 0 || cfg.Limits.MaxLocals > opcodes.MaxLocals {
		cfg.Limits.MaxLocals = opcodes.MaxLocals
	}
	vm := &VirtualMachine{
		root:         root,
		table:        table,
		registry:     processRegistry,
		globals:      make(map[string]*values.Value),
		profile:      newProfileState(),
		specials:     NewSpecialTypeRegistry(),
		builtins:     runtime.NewTable(),
		rng:          rand.New(rand.NewSource(1)),
		writeFn:      func(string) {},
		readFn:       func() string { return "" },
		maxStack:     cfg.Limits.MaxStackSize,
		maxCallDepth: cfg.Limits.MaxCallDepth,
		maxLocals:    cfg.Limits.MaxLocals,
	}
	if !cfg.Special.EnableArquivo {
		vm.specials.disable("arquivo")
	}
	if !cfg.Special.EnableBuffer {
		vm.specials.disable("buffer")
	}
	return vm
}

func (vm *VirtualMachine) SetWrite(fn func(string)) { vm.writeFn = fn }
func (vm *VirtualMachine) SetRead(fn func() string)  { vm.readFn = fn }

// Globals exposes the process-... actually VM-instance-lifetime globals
// map (§9: "process-wide, case-insensitive, lifetime = VM instance").
func (vm *VirtualMachine) Globals() map[string]*values.Value { return vm.globals }

func (vm *VirtualMachine) Registry() *object.Registry { return vm.registry }
func (vm *VirtualMachine) Table() *unit.Table          { return vm.table }

func (vm *VirtualMachine) RegisterSpecialType(name string, factory SpecialTypeFactory, dispatcher SpecialTypeDispatcher) {
	vm.specials.Register(name, factory, dispatcher)
}

// Report renders the diagnostics/profiling summary (§2 ADD).
func (vm *VirtualMachine) Report() string { return vm.profile.render() }

func globalKey(name string) string { return strings.ToLower(name) }

// Execute is the top-level embedding entry point (§6): resolve fn against
// the root unit's Functions, falling back to an expression constant, then
// a builtin, then FunctionNotFound — mirroring the Call opcode's
// resolution order (§4.3) with no bound this-object.
func (vm *VirtualMachine) Execute(fn string, args []*values.Value) (*values.Value, error) {
	if f, ok := vm.root.Function(fn); ok {
		return vm.invokeFunction(vm.root, f, nil, args)
	}
	if c, ok := vm.root.Constant(fn); ok && c.Kind == unit.ConstExpression {
		return vm.evalExpression(vm.root, c, nil, args)
	}
	if b, ok := vm.builtins.Lookup(fn); ok {
		return vm.callBuiltin(b, nil, args)
	}
	return nil, &Fault{Kind: ErrFunctionNotFound, Message: fn}
}

func (vm *VirtualMachine) invokeFunction(defining *unit.Unit, fn *unit.Function, this *object.Object, args []*values.Value) (*values.Value, error) {
	frame := &CallFrame{
		Function:     fn,
		DefiningUnit: defining,
		This:         this,
		Args:         args,
		StackBase:    len(vm.stack),
	}
	saved := vm.locals
	vm.locals = [opcodes.MaxLocals]*values.Value{}
	result, err := vm.runFrame(frame)
	vm.locals = saved
	return result, err
}

func (vm *VirtualMachine) push(v *values.Value) error {
	if len(vm.stack) >= vm.maxStack {
		return &Fault{Kind: ErrStackOverflow}
	}
	vm.stack = append(vm.stack, v)
	return nil
}

func (vm *VirtualMachine) pop(frame *CallFrame) (*values.Value, error) {
	if len(vm.stack) <= frame.StackBase {
		return nil, &Fault{Kind: ErrStackUnderflow}
	}
	v := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return v, nil
}

func (vm *VirtualMachine) popN(frame *CallFrame, n int) ([]*values.Value, error) {
	out := make([]*values.Value, n)
	for i := n - 1; i >= 0; i-- {
		v, err := vm.pop(frame)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (vm *VirtualMachine) currentFrame() *CallFrame {
	if len(vm.frames) == 0 {
		return nil
	}
	return vm.frames[len(vm.frames)-1]
}

// runFrame pushes frame onto the call stack and runs its bytecode until
// Return/ReturnValue or falling off the end (§4.2). Nested calls recurse
// into runFrame directly, so the Go call stack mirrors the interpreter's
// call stack and CallStackOverflow is just a depth check here.
func (vm *VirtualMachine) runFrame(frame *CallFrame) (*values.Value, error) {
	if len(vm.frames) >= vm.maxCallDepth {
		return nil, &Fault{Kind: ErrCallStackOverflow}
	}
	vm.frames = append(vm.frames, frame)
	defer func() { vm.frames = vm.frames[:len(vm.frames)-1] }()

	reader := opcodes.NewReader(frame.Function.Bytecode)

	for {
		if reader.AtEnd() {
			vm.stack = vm.stack[:frame.StackBase]
			return values.Null(), nil
		}

		ip := reader.IP
		op := reader.ReadOpcode()
		vm.profile.observe(op)

		result, done, err := vm.executeInstruction(frame, reader, op, ip)
		if err != nil {
			return nil, err
		}
		if done {
			return result, nil
		}
	}
}
