// Package unit implements the immutable compiled-artifact representation
// (class name, bases, string pool, variables, functions, constants) that
// the interpreter executes, plus a name-indexed table of units and the
// container format used to decode them from bytes.
package unit

import "strings"

// VarType is the declared narrow-integer (or other) type tag carried by a
// Variable, consulted by StoreField for clamping.
type VarType byte

const (
	VarInt1 VarType = iota
	VarInt8
	VarUint8
	VarInt16
	VarUint16
	VarInt32
	VarUint32
	VarReal
	VarReal2
	VarTxt
	VarRef
	VarVetor
	VarObjeto
)

// Variable is a declared field slot: a name and its type tag.
type Variable struct {
	Name string
	Type VarType
}

// Function is bytecode plus its declared argument count.
type Function struct {
	Name     string
	Bytecode []byte
	Argc     byte
}

// ConstKind discriminates a Constant's payload.
type ConstKind byte

const (
	ConstInt ConstKind = iota
	ConstDouble
	ConstString
	ConstExpression
)

// Constant is a named compile-time value; Expression constants carry their
// own bytecode and are promoted to callables by dispatch (see §4.3).
type Constant struct {
	Name     string
	Kind     ConstKind
	Int      int64
	Double   float64
	Str      string
	Bytecode []byte
}

// Unit is the immutable compiled class: name, bases (in declaration/
// resolution order), string pool, and the three member tables. Ordered
// slices are retained alongside the lookup maps because vartroca's
// candidate walk (§4.6/§9) must observe declaration order, which a Go map
// cannot provide.
type Unit struct {
	ClassName string
	Bases     []string
	Pool      []string

	Vars   []*Variable
	Funcs  []*Function
	Consts []*Constant

	varIndex   map[string]*Variable
	funcIndex  map[string]*Function
	constIndex map[string]*Constant
}

func keyFor(name string) string { return strings.ToLower(name) }

// New constructs an empty Unit ready to have members appended via
// AddVariable/AddFunction/AddConstant, each of which also updates the
// matching lookup index.
func New(className string, bases []string, pool []string) *Unit {
	return &Unit{
		ClassName:  className,
		Bases:      bases,
		Pool:       pool,
		varIndex:   make(map[string]*Variable),
		funcIndex:  make(map[string]*Function),
		constIndex: make(map[string]*Constant),
	}
}

func (u *Unit) AddVariable(v *Variable) {
	u.Vars = append(u.Vars, v)
	u.varIndex[keyFor(v.Name)] = v
}

func (u *Unit) AddFunction(f *Function) {
	u.Funcs = append(u.Funcs, f)
	u.funcIndex[keyFor(f.Name)] = f
}

func (u *Unit) AddConstant(c *Constant) {
	u.Consts = append(u.Consts, c)
	u.constIndex[keyFor(c.Name)] = c
}

// Finalize rebuilds the lookup indices from the ordered slices, for callers
// that append to Vars/Funcs/Consts directly instead of through the Add*
// methods.
func (u *Unit) Finalize() {
	u.varIndex = make(map[string]*Variable, len(u.Vars))
	for _, v := range u.Vars {
		u.varIndex[keyFor(v.Name)] = v
	}
	u.funcIndex = make(map[string]*Function, len(u.Funcs))
	for _, f := range u.Funcs {
		u.funcIndex[keyFor(f.Name)] = f
	}
	u.constIndex = make(map[string]*Constant, len(u.Consts))
	for _, c := range u.Consts {
		u.constIndex[keyFor(c.Name)] = c
	}
}

func (u *Unit) Variable(name string) (*Variable, bool) {
	v, ok := u.varIndex[keyFor(name)]
	return v, ok
}

func (u *Unit) Function(name string) (*Function, bool) {
	f, ok := u.funcIndex[keyFor(name)]
	return f, ok
}

func (u *Unit) Constant(name string) (*Constant, bool) {
	c, ok := u.constIndex[keyFor(name)]
	return c, ok
}

// PoolString resolves a 16-bit string-pool index used by PushString and
// similar opcodes. Out-of-range indices yield an empty string rather than
// panicking — bytecode is trusted but not infallible.
func (u *Unit) PoolString(index uint16) string {
	if int(index) >= len(u.Pool) {
		return ""
	}
	return u.Pool[index]
}
