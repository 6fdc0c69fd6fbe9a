package runtime

import "github.com/wudi/intmud/values"

func GetArrayFunctions() []*Builtin {
	return []*Builtin{
		{Name: "vetor", Fn: makeArray}, {Name: "array", Fn: makeArray},
		{Name: "arrlen", Fn: arrLen}, {Name: "count", Fn: arrLen},
		{Name: "arrpush", Fn: arrPush},
		{Name: "arrpop", Fn: arrPop},
		{Name: "arrshift", Fn: arrShift},
		{Name: "arrunshift", Fn: arrUnshift},
		{Name: "arrindexof", Fn: arrIndexOf},
		{Name: "arrcontains", Fn: arrContains},
		{Name: "arrclear", Fn: arrClear},
		{Name: "arrreverse", Fn: arrReverse},
	}
}

func makeArray(ctx Context, args []*values.Value) (*values.Value, error) {
	a := values.NewSharedArray()
	for _, v := range args {
		a.Push(v)
	}
	return values.FromArray(a), nil
}

func arrLen(ctx Context, args []*values.Value) (*values.Value, error) {
	v := arg(args, 0)
	if !v.IsArray() {
		return values.Int(0), nil
	}
	return values.Int(int64(v.Array().Len())), nil
}

func arrPush(ctx Context, args []*values.Value) (*values.Value, error) {
	v := arg(args, 0)
	if !v.IsArray() {
		return values.Null(), nil
	}
	for _, x := range args[1:] {
		v.Array().Push(x)
	}
	return values.Int(int64(v.Array().Len())), nil
}

func arrPop(ctx Context, args []*values.Value) (*values.Value, error) {
	v := arg(args, 0)
	if !v.IsArray() {
		return values.Null(), nil
	}
	return v.Array().Pop(), nil
}

func arrShift(ctx Context, args []*values.Value) (*values.Value, error) {
	v := arg(args, 0)
	if !v.IsArray() || v.Array().Len() == 0 {
		return values.Null(), nil
	}
	a := v.Array()
	first := a.Get(0)
	a.Elems = a.Elems[1:]
	return first, nil
}

func arrUnshift(ctx Context, args []*values.Value) (*values.Value, error) {
	v := arg(args, 0)
	if !v.IsArray() {
		return values.Null(), nil
	}
	a := v.Array()
	prefix := append([]*values.Value{}, args[1:]...)
	a.Elems = append(prefix, a.Elems...)
	return values.Int(int64(a.Len())), nil
}

func arrIndexOf(ctx Context, args []*values.Value) (*values.Value, error) {
	v := arg(args, 0)
	needle := arg(args, 1)
	if !v.IsArray() {
		return values.Int(-1), nil
	}
	a := v.Array()
	for i := 0; i < a.Len(); i++ {
		if a.Get(i).Eq(needle) {
			return values.Int(int64(i)), nil
		}
	}
	return values.Int(-1), nil
}

func arrContains(ctx Context, args []*values.Value) (*values.Value, error) {
	idx, _ := arrIndexOf(ctx, args)
	return values.Bool(idx.AsInt() >= 0), nil
}

func arrClear(ctx Context, args []*values.Value) (*values.Value, error) {
	v := arg(args, 0)
	if v.IsArray() {
		v.Array().Elems = nil
	}
	return values.Null(), nil
}

func arrReverse(ctx Context, args []*values.Value) (*values.Value, error) {
	v := arg(args, 0)
	if !v.IsArray() {
		return values.Null(), nil
	}
	a := v.Array()
	for i, j := 0, a.Len()-1; i < j; i, j = i+1, j-1 {
		a.Elems[i], a.Elems[j] = a.Elems[j], a.Elems[i]
	}
	return v, nil
}
