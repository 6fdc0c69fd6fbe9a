package runtime

import "github.com/wudi/intmud/values"

func GetIOFunctions() []*Builtin {
	return []*Builtin{
		{Name: "escreva", Fn: escreva}, {Name: "print", Fn: escreva},
		{Name: "escrevaln", Fn: escrevaln}, {Name: "println", Fn: escrevaln},
		{Name: "leia", Fn: leia}, {Name: "read", Fn: leia},
	}
}

func escreva(ctx Context, args []*values.Value) (*values.Value, error) {
	s := arg(args, 0).AsString()
	ctx.Write(s)
	return values.Null(), nil
}

func escrevaln(ctx Context, args []*values.Value) (*values.Value, error) {
	s := arg(args, 0).AsString() + "\n"
	ctx.Write(s)
	return values.Null(), nil
}

func leia(ctx Context, args []*values.Value) (*values.Value, error) {
	return values.String(ctx.ReadLine()), nil
}
