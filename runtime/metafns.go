package runtime

import "github.com/wudi/intmud/values"

func GetMetaFunctions() []*Builtin {
	return []*Builtin{
		{Name: "args", Fn: func(ctx Context, args []*values.Value) (*values.Value, error) {
			a := values.NewSharedArray()
			for _, v := range ctx.Args() {
				a.Push(v)
			}
			return values.FromArray(a), nil
		}},
	}
}
