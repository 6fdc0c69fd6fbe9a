package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wudi/intmud/config"
	"github.com/wudi/intmud/opcodes"
	"github.com/wudi/intmud/unit"
	"github.com/wudi/intmud/values"
)

func newUnitWithPool(name string, bases []string, pool []string) *unit.Unit {
	return unit.New(name, bases, pool)
}

// TestArithmeticAndCoercionScenarioS1 exercises PushInt/PushDouble/Add and
// the source language's Integer+Double promotion to Double (§3 Coercion).
func TestArithmeticAndCoercionScenarioS1(t *testing.T) {
	u := newUnitWithPool("Calc", nil, nil)
	code := (&opcodes.Writer{}).
		Op(opcodes.PushInt).I32(7).
		Op(opcodes.PushDouble).F64(0.5).
		Op(opcodes.Add).
		Op(opcodes.ReturnValue).
		Bytes()
	u.AddFunction(&unit.Function{Name: "soma", Bytecode: code})

	table := unit.NewTable()
	table.Register(u)
	machine := NewVM(u, table)

	result, err := machine.Execute("soma", nil)
	require.NoError(t, err)
	assert.True(t, result.IsDouble())
	assert.Equal(t, 7.5, result.AsDouble())
}

// TestInheritanceDispatchScenarioS2 builds a two-level hierarchy and
// confirms CallMethod resolves to the most-derived override, executing
// against the defining unit's own string pool (§4.3).
func TestInheritanceDispatchScenarioS2(t *testing.T) {
	base := newUnitWithPool("Animal", nil, []string{"generico"})
	base.AddFunction(&unit.Function{Name: "som", Bytecode: (&opcodes.Writer{}).
		Op(opcodes.PushString).U16(0).
		Op(opcodes.ReturnValue).Bytes()})

	derived := newUnitWithPool("Cachorro", []string{"Animal"}, []string{"au au"})
	derived.AddFunction(&unit.Function{Name: "som", Bytecode: (&opcodes.Writer{}).
		Op(opcodes.PushString).U16(0).
		Op(opcodes.ReturnValue).Bytes()})

	table := unit.NewTable()
	table.Register(base)
	table.Register(derived)

	machine := NewVM(derived, table)
	o, err := machine.createObject("Cachorro", nil)
	require.NoError(t, err)

	result, err := machine.dispatchCallMethod(nil, values.FromObject(o), "som", nil)
	require.NoError(t, err)
	assert.Equal(t, "au au", result.AsString())

	// An instance whose class never overrides the method falls back to
	// the base's pool and implementation.
	noOverride := newUnitWithPool("Gato", []string{"Animal"}, nil)
	table.Register(noOverride)
	cat, err := machine.createObject("Gato", nil)
	require.NoError(t, err)
	result2, err := machine.dispatchCallMethod(nil, values.FromObject(cat), "som", nil)
	require.NoError(t, err)
	assert.Equal(t, "generico", result2.AsString())
}

// TestNarrowIntegerClampScenarioS4 checks that storing to an int8 field
// saturates instead of wrapping (§4.4 clamp table).
func TestNarrowIntegerClampScenarioS4(t *testing.T) {
	u := newUnitWithPool("Contador", nil, nil)
	u.AddVariable(&unit.Variable{Name: "vida", Type: unit.VarInt8})

	table := unit.NewTable()
	table.Register(u)
	machine := NewVM(u, table)

	o, err := machine.createObject("Contador", nil)
	require.NoError(t, err)

	storeField(values.FromObject(o), "vida", values.Int(9000), machine.specials)
	v, _ := o.Field("vida")
	assert.Equal(t, int64(127), v.AsInt())

	storeField(values.FromObject(o), "vida", values.Int(-9000), machine.specials)
	v, _ = o.Field("vida")
	assert.Equal(t, int64(-128), v.AsInt())
}

// TestDynamicResolutionScenarioS6 checks LoadDynamic/StoreDynamic: a
// this-field wins even when Null, otherwise the global map is consulted,
// and stores to neither create a fresh global (§4.5).
func TestDynamicResolutionScenarioS6(t *testing.T) {
	u := newUnitWithPool("Jogador", nil, nil)
	u.AddVariable(&unit.Variable{Name: "nome", Type: unit.VarTxt})

	table := unit.NewTable()
	table.Register(u)
	machine := NewVM(u, table)

	o, err := machine.createObject("Jogador", nil)
	require.NoError(t, err)
	frame := &CallFrame{This: o, DefiningUnit: u}

	assert.True(t, machine.loadDynamic(frame, "nome").IsNull())

	machine.storeDynamic(frame, "nome", values.String("Ana"))
	got, ok := o.Field("nome")
	require.True(t, ok)
	assert.Equal(t, "Ana", got.AsString())

	machine.storeDynamic(frame, "pontuacao", values.Int(10))
	assert.False(t, o.HasField("pontuacao"))
	assert.Equal(t, int64(10), machine.globals["pontuacao"].AsInt())
}

// TestCallStackOverflowFaults exercises the call-depth hard cap (§4.1/§8):
// a function that calls itself indefinitely must fault, never hang.
func TestCallStackOverflowFaults(t *testing.T) {
	u := newUnitWithPool("Recursao", nil, []string{"auto"})
	code := (&opcodes.Writer{}).
		Op(opcodes.Call).U16(0).U8(0).
		Op(opcodes.ReturnValue).
		Bytes()
	u.AddFunction(&unit.Function{Name: "auto", Bytecode: code})

	table := unit.NewTable()
	table.Register(u)
	machine := NewVM(u, table)

	_, err := machine.Execute("auto", nil)
	require.Error(t, err)
	var fault *Fault
	require.ErrorAs(t, err, &fault)
	assert.ErrorIs(t, fault, ErrCallStackOverflow)
}

// TestStackOverflowFaults verifies the operand-stack hard cap (§4.1/§8):
// pushing past MaxStackSize faults deterministically.
func TestStackOverflowFaults(t *testing.T) {
	u := newUnitWithPool("Empilha", nil, nil)
	w := &opcodes.Writer{}
	for i := 0; i < opcodes.MaxStackSize+1; i++ {
		w.Op(opcodes.PushNull)
	}
	w.Op(opcodes.ReturnValue)
	u.AddFunction(&unit.Function{Name: "empilha", Bytecode: w.Bytes()})

	table := unit.NewTable()
	table.Register(u)
	machine := NewVM(u, table)

	_, err := machine.Execute("empilha", nil)
	require.Error(t, err)
	var fault *Fault
	require.ErrorAs(t, err, &fault)
	assert.ErrorIs(t, fault, ErrStackOverflow)
}

// TestConfigShrinksStackLimit confirms a host-supplied Config can tighten
// the stack cap below its compiled-in maximum.
func TestConfigShrinksStackLimit(t *testing.T) {
	u := newUnitWithPool("Empilha", nil, nil)
	w := &opcodes.Writer{}
	for i := 0; i < 5; i++ {
		w.Op(opcodes.PushNull)
	}
	w.Op(opcodes.ReturnValue)
	u.AddFunction(&unit.Function{Name: "empilha", Bytecode: w.Bytes()})

	table := unit.NewTable()
	table.Register(u)

	cfg := config.Default()
	cfg.Limits.MaxStackSize = 3
	machine := NewVMWithConfig(u, table, cfg)

	_, err := machine.Execute("empilha", nil)
	require.Error(t, err)
	var fault *Fault
	require.ErrorAs(t, err, &fault)
	assert.ErrorIs(t, fault, ErrStackOverflow)
}

// TestObjectIdentityEquality confirms Eq on Object values compares
// identity: two distinct instances of one class are not equal (§3 glossary).
func TestObjectIdentityEquality(t *testing.T) {
	u := newUnitWithPool("Ponto", nil, nil)
	table := unit.NewTable()
	table.Register(u)
	machine := NewVM(u, table)

	a, err := machine.createObject("Ponto", nil)
	require.NoError(t, err)
	b, err := machine.createObject("Ponto", nil)
	require.NoError(t, err)

	va, vb := values.FromObject(a), values.FromObject(b)
	assert.False(t, va.Eq(vb))
	assert.True(t, va.Eq(values.FromObject(a)))
}

// TestRegistryLifecycle exercises criar/apagar through the object package
// Registry exposed on VirtualMachine.
func TestRegistryLifecycle(t *testing.T) {
	u := newUnitWithPool("Item", nil, nil)
	table := unit.NewTable()
	table.Register(u)
	machine := NewVM(u, table)

	o, err := machine.createObject("Item", nil)
	require.NoError(t, err)
	assert.Len(t, machine.Registry().GetObjects("Item"), 1)

	_, err = machine.deleteObject(values.FromObject(o))
	require.NoError(t, err)
	assert.Len(t, machine.Registry().GetObjects("Item"), 0)
}

// TestSpecialTypeBufferDispatch exercises the buffer reference dispatcher
// end to end through InitSpecialType-equivalent construction.
func TestSpecialTypeBufferDispatch(t *testing.T) {
	u := newUnitWithPool("Anything", nil, nil)
	table := unit.NewTable()
	table.Register(u)
	machine := NewVM(u, table)

	o, err := machine.specials.Construct("buffer", nil)
	require.NoError(t, err)

	result, err := machine.dispatchCallMethod(nil, values.FromObject(o), "add", []*values.Value{values.String("oi")})
	require.NoError(t, err)
	assert.True(t, result.IsNull())

	got, err := machine.dispatchCallMethod(nil, values.FromObject(o), "obtem", nil)
	require.NoError(t, err)
	assert.Equal(t, "oi", got.AsString())
}
