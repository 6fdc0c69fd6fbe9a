package runtime

import (
	"strconv"

	"github.com/wudi/intmud/object"
	"github.com/wudi/intmud/unit"
	"github.com/wudi/intmud/values"
	"github.com/wudi/intmud/vartroca"
)

// GetSubstitutionFunctions wires the vartroca package's scan-and-replace
// algorithm to the this-object's member hierarchy (§4.6). vartrocacod is
// a pure alias here: its documented "encoded" flag is reserved for future
// use and both variants share this implementation (§4.6 closing note).
func GetSubstitutionFunctions() []*Builtin {
	return []*Builtin{
		{Name: "vartroca", Fn: vartrocaFn},
		{Name: "vartrocacod", Fn: vartrocaFn},
	}
}

func vartrocaFn(ctx Context, args []*values.Value) (*values.Value, error) {
	text := arg(args, 0).AsString()
	pattern := arg(args, 1).AsString()
	prefix := arg(args, 2).AsString()

	probability := 100
	if len(args) > 3 {
		probability = int(arg(args, 3).AsInt())
	}
	spacing := 0
	if len(args) > 4 {
		spacing = int(arg(args, 4).AsInt())
	}

	this := ctx.This()
	if this == nil {
		return values.String(text), nil
	}

	names := collectMemberNames(this)
	candidates := vartroca.BuildCandidates(names, prefix)

	resolve := func(c vartroca.Candidate, matchedSuffix string) string {
		return resolveCandidate(ctx, this, c, matchedSuffix)
	}

	out := vartroca.Substitute(text, pattern, prefix, probability, spacing, candidates, resolve, ctx.RandomProbability)
	return values.String(out), nil
}

func collectMemberNames(o *object.Object) []struct {
	Name string
	Kind vartroca.Kind
} {
	var names []struct {
		Name string
		Kind vartroca.Kind
	}
	for _, u := range o.Hierarchy {
		for _, v := range u.Vars {
			names = append(names, struct {
				Name string
				Kind vartroca.Kind
			}{v.Name, vartroca.KindVariable})
		}
		for _, f := range u.Funcs {
			names = append(names, struct {
				Name string
				Kind vartroca.Kind
			}{f.Name, vartroca.KindFunction})
		}
		for _, c := range u.Consts {
			names = append(names, struct {
				Name string
				Kind vartroca.Kind
			}{c.Name, vartroca.KindConstant})
		}
	}
	return names
}

func resolveCandidate(ctx Context, this *object.Object, c vartroca.Candidate, matchedSuffix string) string {
	switch c.Kind {
	case vartroca.KindVariable:
		v, _ := this.Field(c.Original)
		return v.AsString()
	case vartroca.KindConstant:
		defUnit, constant, ok := this.ResolveConstant(c.Original)
		if !ok {
			return ""
		}
		switch constant.Kind {
		case unit.ConstInt:
			return strconv.FormatInt(constant.Int, 10)
		case unit.ConstDouble:
			return values.Double(constant.Double).AsString()
		case unit.ConstString:
			return constant.Str
		case unit.ConstExpression:
			result, err := ctx.CallExpression(defUnit, constant, this, nil)
			if err != nil {
				return ""
			}
			return result.AsString()
		}
		return ""
	case vartroca.KindFunction:
		result, err := ctx.CallMethodValue(values.FromObject(this), c.Original, []*values.Value{values.String(matchedSuffix)})
		if err != nil {
			return ""
		}
		return result.AsString()
	default:
		return ""
	}
}
