package runtime

import "strings"

// Table is the flat name → Builtin lookup the interpreter consults for the
// Call opcode's step-5 builtin fallback and for Execute's last fallback
// (the CallBuiltin opcode does not use it). Unknown names yield
// (nil, false); the caller is responsible
// for the "unknown builtin yields Null" contract (§7).
type Table struct {
	byName map[string]*Builtin
}

func NewTable() *Table {
	t := &Table{byName: make(map[string]*Builtin)}
	for _, group := range [][]*Builtin{
		GetTextFunctions(),
		GetMathFunctions(),
		GetArrayFunctions(),
		GetTypeFunctions(),
		GetObjectFunctions(),
		GetIOFunctions(),
		GetTimeFunctions(),
		GetMetaFunctions(),
		GetSubstitutionFunctions(),
	} {
		for _, b := range group {
			t.byName[strings.ToLower(b.Name)] = b
		}
	}
	return t
}

func (t *Table) Lookup(name string) (*Builtin, bool) {
	b, ok := t.byName[strings.ToLower(name)]
	return b, ok
}
