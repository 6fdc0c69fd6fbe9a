package vm

import (
	"strconv"
	"strings"

	"github.com/wudi/intmud/object"
	"github.com/wudi/intmud/unit"
	"github.com/wudi/intmud/values"
)

// loadField implements LoadField (§4.4) for every target kind a field
// access can land on: user-defined Object (field map), special-type
// Object (delegated property), Array (numeric index or named length/
// first/last), String (numeric index or named length/case transform).
// Anything else yields Null.
func loadField(target *values.Value, name string, specials *SpecialTypeRegistry) *values.Value {
	switch {
	case target.IsObject():
		o, ok := target.Object().(*object.Object)
		if !ok {
			return values.Null()
		}
		if o.IsSpecial() {
			return specials.getProperty(o, name)
		}
		v, _ := o.Field(name)
		return v

	case target.IsArray():
		a := target.Array()
		if idx, ok := parseIndex(name); ok {
			return a.Get(idx)
		}
		switch strings.ToLower(name) {
		case "tamanho", "tam", "total":
			return values.Int(int64(a.Len()))
		case "ini", "primeiro", "first":
			return a.Get(0)
		case "fim", "ultimo", "last":
			return a.Get(a.Len() - 1)
		}
		return values.Null()

	case target.IsString():
		s := target.AsString()
		if idx, ok := parseIndex(name); ok {
			if idx < 0 || idx >= len(s) {
				return values.Null()
			}
			return values.String(string(s[idx]))
		}
		switch strings.ToLower(name) {
		case "tamanho", "tam":
			return values.Int(int64(len(s)))
		case "maiusculo", "mai":
			return values.String(strings.ToUpper(s))
		case "minusculo", "min":
			return values.String(strings.ToLower(s))
		}
		return values.Null()

	default:
		return values.Null()
	}
}

// storeField implements StoreField: only Object targets are writable
// (Array/String field-syntax access is read-only per §4.4), auto-creating
// plain fields and clamping narrow-integer-typed ones.
func storeField(target *values.Value, name string, v *values.Value, specials *SpecialTypeRegistry) {
	if !target.IsObject() {
		return
	}
	o, ok := target.Object().(*object.Object)
	if !ok {
		return
	}
	if o.IsSpecial() {
		specials.setProperty(o, name, v)
		return
	}
	if t, ok := o.VariableType(name); ok && t != unit.VarTxt && t != unit.VarRef && t != unit.VarVetor && t != unit.VarObjeto {
		v = clampToType(v, t)
	}
	o.SetField(name, v)
}

func parseIndex(name string) (int, bool) {
	n, err := strconv.Atoi(name)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
