package runtime

import "github.com/wudi/intmud/values"

func GetTypeFunctions() []*Builtin {
	return []*Builtin{
		{Name: "isnull", Fn: func(ctx Context, args []*values.Value) (*values.Value, error) {
			return values.Bool(arg(args, 0).IsNull()), nil
		}},
		{Name: "isnum", Fn: func(ctx Context, args []*values.Value) (*values.Value, error) {
			return values.Bool(arg(args, 0).IsNumeric()), nil
		}},
		{Name: "istext", Fn: func(ctx Context, args []*values.Value) (*values.Value, error) {
			return values.Bool(arg(args, 0).IsString()), nil
		}},
		{Name: "isarray", Fn: func(ctx Context, args []*values.Value) (*values.Value, error) {
			return values.Bool(arg(args, 0).IsArray()), nil
		}},
		{Name: "isobject", Fn: func(ctx Context, args []*values.Value) (*values.Value, error) {
			return values.Bool(arg(args, 0).IsObject()), nil
		}},
		{Name: "typeof", Fn: typeOf}, {Name: "tipode", Fn: typeOf},
	}
}

func typeOf(ctx Context, args []*values.Value) (*values.Value, error) {
	return values.String(arg(args, 0).Kind().String()), nil
}
