package runtime

import (
	"github.com/wudi/intmud/object"
	"github.com/wudi/intmud/values"
)

func GetObjectFunctions() []*Builtin {
	return []*Builtin{
		{Name: "criar", Fn: criar}, {Name: "new", Fn: criar},
		{Name: "apagar", Fn: apagar}, {Name: "delete", Fn: apagar},
		{Name: "ref", Fn: func(ctx Context, args []*values.Value) (*values.Value, error) {
			return arg(args, 0), nil
		}},
		{Name: "objantes", Fn: objAntes},
		{Name: "objdepois", Fn: objDepois},
	}
}

func criar(ctx Context, args []*values.Value) (*values.Value, error) {
	if len(args) == 0 {
		return values.Null(), nil
	}
	className := args[0].AsString()
	return ctx.NewObject(className, args[1:])
}

func apagar(ctx Context, args []*values.Value) (*values.Value, error) {
	return ctx.DeleteObject(arg(args, 0))
}

func objAntes(ctx Context, args []*values.Value) (*values.Value, error) {
	o, ok := asObject(arg(args, 0))
	if !ok {
		return values.Null(), nil
	}
	if prev := o.Prev(); prev != nil {
		return values.FromObject(prev), nil
	}
	return values.Null(), nil
}

func objDepois(ctx Context, args []*values.Value) (*values.Value, error) {
	o, ok := asObject(arg(args, 0))
	if !ok {
		return values.Null(), nil
	}
	if next := o.Next(); next != nil {
		return values.FromObject(next), nil
	}
	return values.Null(), nil
}

func asObject(v *values.Value) (*object.Object, bool) {
	if !v.IsObject() {
		return nil, false
	}
	o, ok := v.Object().(*object.Object)
	return o, ok
}
