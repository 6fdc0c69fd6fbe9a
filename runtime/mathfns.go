package runtime

import (
	"math"

	"github.com/wudi/intmud/values"
)

func GetMathFunctions() []*Builtin {
	return []*Builtin{
		{Name: "num", Fn: func(ctx Context, args []*values.Value) (*values.Value, error) {
			return values.Int(arg(args, 0).AsInt()), nil
		}},
		{Name: "real", Fn: func(ctx Context, args []*values.Value) (*values.Value, error) {
			return values.Double(arg(args, 0).AsDouble()), nil
		}},
		{Name: "intabs", Fn: intAbs}, {Name: "abs", Fn: intAbs},
		{Name: "intmax", Fn: intMax}, {Name: "intmin", Fn: intMin},
		{Name: "intdiv", Fn: intDiv},
		{Name: "intmod", Fn: intMod},
		{Name: "intmedia", Fn: intMedia},
		{Name: "intsoma", Fn: intSoma},
		{Name: "matsin", Fn: mat1(math.Sin)}, {Name: "matcos", Fn: mat1(math.Cos)},
		{Name: "mattan", Fn: mat1(math.Tan)}, {Name: "matasin", Fn: mat1(math.Asin)},
		{Name: "matacos", Fn: mat1(math.Acos)}, {Name: "matatan", Fn: mat1(math.Atan)},
		{Name: "matatan2", Fn: func(ctx Context, args []*values.Value) (*values.Value, error) {
			return values.Double(math.Atan2(arg(args, 0).AsDouble(), arg(args, 1).AsDouble())), nil
		}},
		{Name: "matsqrt", Fn: mat1(math.Sqrt)},
		{Name: "matpow", Fn: func(ctx Context, args []*values.Value) (*values.Value, error) {
			return values.Double(math.Pow(arg(args, 0).AsDouble(), arg(args, 1).AsDouble())), nil
		}},
		{Name: "matlog", Fn: mat1(math.Log)}, {Name: "matlog10", Fn: mat1(math.Log10)},
		{Name: "matexp", Fn: mat1(math.Exp)},
		{Name: "matfloor", Fn: mat1(math.Floor)}, {Name: "matceil", Fn: mat1(math.Ceil)},
		{Name: "matround", Fn: mat1(math.Round)},
		{Name: "matrad", Fn: mat1(func(d float64) float64 { return d * math.Pi / 180 })},
		{Name: "matdeg", Fn: mat1(func(r float64) float64 { return r * 180 / math.Pi })},
		{Name: "matpi", Fn: func(ctx Context, args []*values.Value) (*values.Value, error) {
			return values.Double(math.Pi), nil
		}},
		{Name: "mate", Fn: func(ctx Context, args []*values.Value) (*values.Value, error) {
			return values.Double(math.E), nil
		}},
		{Name: "matrand", Fn: func(ctx Context, args []*values.Value) (*values.Value, error) {
			return values.Double(ctx.RandomFloat()), nil
		}},
		{Name: "rand", Fn: func(ctx Context, args []*values.Value) (*values.Value, error) {
			return values.Double(ctx.RandomFloat()), nil
		}},
		{Name: "matrandint", Fn: func(ctx Context, args []*values.Value) (*values.Value, error) {
			return values.Int(ctx.RandomInt(arg(args, 0).AsInt(), arg(args, 1).AsInt())), nil
		}},
		{Name: "randint", Fn: func(ctx Context, args []*values.Value) (*values.Value, error) {
			return values.Int(ctx.RandomInt(arg(args, 0).AsInt(), arg(args, 1).AsInt())), nil
		}},
	}
}

func mat1(f func(float64) float64) func(Context, []*values.Value) (*values.Value, error) {
	return func(ctx Context, args []*values.Value) (*values.Value, error) {
		return values.Double(f(arg(args, 0).AsDouble())), nil
	}
}

func intAbs(ctx Context, args []*values.Value) (*values.Value, error) {
	v := arg(args, 0).AsInt()
	if v < 0 {
		v = -v
	}
	return values.Int(v), nil
}

func intMax(ctx Context, args []*values.Value) (*values.Value, error) {
	best := arg(args, 0).AsInt()
	for i := 1; i < len(args); i++ {
		if v := args[i].AsInt(); v > best {
			best = v
		}
	}
	return values.Int(best), nil
}

func intMin(ctx Context, args []*values.Value) (*values.Value, error) {
	best := arg(args, 0).AsInt()
	for i := 1; i < len(args); i++ {
		if v := args[i].AsInt(); v < best {
			best = v
		}
	}
	return values.Int(best), nil
}

func intDiv(ctx Context, args []*values.Value) (*values.Value, error) {
	d := arg(args, 1).AsInt()
	if d == 0 {
		return values.Int(0), nil
	}
	return values.Int(arg(args, 0).AsInt() / d), nil
}

func intMod(ctx Context, args []*values.Value) (*values.Value, error) {
	d := arg(args, 1).AsInt()
	if d == 0 {
		return values.Int(0), nil
	}
	return values.Int(arg(args, 0).AsInt() % d), nil
}

func intMedia(ctx Context, args []*values.Value) (*values.Value, error) {
	if len(args) == 0 {
		return values.Int(0), nil
	}
	var sum int64
	for _, a := range args {
		sum += a.AsInt()
	}
	return values.Int(sum / int64(len(args))), nil
}

func intSoma(ctx Context, args []*values.Value) (*values.Value, error) {
	var sum int64
	for _, a := range args {
		sum += a.AsInt()
	}
	return values.Int(sum), nil
}
