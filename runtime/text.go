package runtime

import (
	"strconv"
	"strings"

	"github.com/wudi/intmud/values"
)

func GetTextFunctions() []*Builtin {
	return []*Builtin{
		{Name: "txt", Fn: func(ctx Context, args []*values.Value) (*values.Value, error) {
			return values.String(arg(args, 0).AsString()), nil
		}},
		{Name: "txtlen", Fn: txtLen}, {Name: "len", Fn: txtLen}, {Name: "length", Fn: txtLen},
		{Name: "txtsub", Fn: txtSub}, {Name: "substr", Fn: txtSub},
		{Name: "txtmai", Fn: txtUpper}, {Name: "upper", Fn: txtUpper},
		{Name: "txtmin", Fn: txtLower}, {Name: "lower", Fn: txtLower},
		{Name: "txttrim", Fn: txtTrim}, {Name: "ltrim", Fn: txtLTrim}, {Name: "rtrim", Fn: txtRTrim},
		{Name: "txtpos", Fn: txtPos}, {Name: "indexof", Fn: txtPos},
		{Name: "txtreplace", Fn: txtReplace},
		{Name: "txtsplit", Fn: txtSplit},
		{Name: "txtjoin", Fn: txtJoin},
		{Name: "txtrepeat", Fn: txtRepeat},
		{Name: "txtreverse", Fn: txtReverse},
		{Name: "txtpadleft", Fn: txtPadLeft},
		{Name: "txtpadright", Fn: txtPadRight},
		{Name: "txtchar", Fn: txtChar}, {Name: "chr", Fn: txtChar},
		{Name: "txtord", Fn: txtOrd}, {Name: "asc", Fn: txtOrd},
		{Name: "txthex", Fn: txtHex},
		{Name: "txtdec", Fn: txtDec},
		{Name: "txtnulo", Fn: func(ctx Context, args []*values.Value) (*values.Value, error) {
			return values.Bool(arg(args, 0).AsString() == ""), nil
		}},
		{Name: "txtremove", Fn: txtRemove},
	}
}

func txtLen(ctx Context, args []*values.Value) (*values.Value, error) {
	return values.Int(int64(len([]rune(arg(args, 0).AsString())))), nil
}

func txtSub(ctx Context, args []*values.Value) (*values.Value, error) {
	r := []rune(arg(args, 0).AsString())
	start := int(arg(args, 1).AsInt())
	length := len(r) - start
	if len(args) > 2 {
		length = int(arg(args, 2).AsInt())
	}
	if start < 0 {
		start = 0
	}
	if start > len(r) {
		start = len(r)
	}
	end := start + length
	if length < 0 || end > len(r) {
		end = len(r)
	}
	if end < start {
		end = start
	}
	return values.String(string(r[start:end])), nil
}

func txtUpper(ctx Context, args []*values.Value) (*values.Value, error) {
	return values.String(strings.ToUpper(arg(args, 0).AsString())), nil
}

func txtLower(ctx Context, args []*values.Value) (*values.Value, error) {
	return values.String(strings.ToLower(arg(args, 0).AsString())), nil
}

func txtTrim(ctx Context, args []*values.Value) (*values.Value, error) {
	return values.String(strings.TrimSpace(arg(args, 0).AsString())), nil
}

func txtLTrim(ctx Context, args []*values.Value) (*values.Value, error) {
	return values.String(strings.TrimLeft(arg(args, 0).AsString(), " \t\r\n")), nil
}

func txtRTrim(ctx Context, args []*values.Value) (*values.Value, error) {
	return values.String(strings.TrimRight(arg(args, 0).AsString(), " \t\r\n")), nil
}

func txtPos(ctx Context, args []*values.Value) (*values.Value, error) {
	haystack := arg(args, 0).AsString()
	needle := arg(args, 1).AsString()
	return values.Int(int64(strings.Index(haystack, needle))), nil
}

func txtReplace(ctx Context, args []*values.Value) (*values.Value, error) {
	s := arg(args, 0).AsString()
	old := arg(args, 1).AsString()
	newS := arg(args, 2).AsString()
	return values.String(strings.ReplaceAll(s, old, newS)), nil
}

func txtSplit(ctx Context, args []*values.Value) (*values.Value, error) {
	s := arg(args, 0).AsString()
	sep := arg(args, 1).AsString()
	var parts []string
	if sep == "" {
		parts = strings.Split(s, "")
	} else {
		parts = strings.Split(s, sep)
	}
	arr := values.NewSharedArray()
	for _, p := range parts {
		arr.Push(values.String(p))
	}
	return values.FromArray(arr), nil
}

func txtJoin(ctx Context, args []*values.Value) (*values.Value, error) {
	sep := arg(args, 1).AsString()
	v := arg(args, 0)
	if !v.IsArray() {
		return values.String(""), nil
	}
	a := v.Array()
	parts := make([]string, a.Len())
	for i := 0; i < a.Len(); i++ {
		parts[i] = a.Get(i).AsString()
	}
	return values.String(strings.Join(parts, sep)), nil
}

func txtRepeat(ctx Context, args []*values.Value) (*values.Value, error) {
	s := arg(args, 0).AsString()
	n := int(arg(args, 1).AsInt())
	if n < 0 {
		n = 0
	}
	return values.String(strings.Repeat(s, n)), nil
}

func txtReverse(ctx Context, args []*values.Value) (*values.Value, error) {
	r := []rune(arg(args, 0).AsString())
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return values.String(string(r)), nil
}

func txtPadLeft(ctx Context, args []*values.Value) (*values.Value, error) {
	return values.String(pad(arg(args, 0).AsString(), int(arg(args, 1).AsInt()), padChar(args), true)), nil
}

func txtPadRight(ctx Context, args []*values.Value) (*values.Value, error) {
	return values.String(pad(arg(args, 0).AsString(), int(arg(args, 1).AsInt()), padChar(args), false)), nil
}

func padChar(args []*values.Value) string {
	if len(args) > 2 {
		s := arg(args, 2).AsString()
		if s != "" {
			return s[:1]
		}
	}
	return " "
}

func pad(s string, width int, ch string, left bool) string {
	if len(s) >= width {
		return s
	}
	filler := strings.Repeat(ch, width-len(s))
	if left {
		return filler + s
	}
	return s + filler
}

func txtChar(ctx Context, args []*values.Value) (*values.Value, error) {
	code := arg(args, 0).AsInt()
	return values.String(string(rune(code))), nil
}

func txtOrd(ctx Context, args []*values.Value) (*values.Value, error) {
	s := arg(args, 0).AsString()
	if s == "" {
		return values.Int(0), nil
	}
	return values.Int(int64([]rune(s)[0])), nil
}

func txtHex(ctx Context, args []*values.Value) (*values.Value, error) {
	return values.String(strconv.FormatInt(arg(args, 0).AsInt(), 16)), nil
}

func txtDec(ctx Context, args []*values.Value) (*values.Value, error) {
	n, _ := strconv.ParseInt(arg(args, 0).AsString(), 16, 64)
	return values.Int(n), nil
}

func txtRemove(ctx Context, args []*values.Value) (*values.Value, error) {
	s := arg(args, 0).AsString()
	target := arg(args, 1).AsString()
	return values.String(strings.ReplaceAll(s, target, "")), nil
}
