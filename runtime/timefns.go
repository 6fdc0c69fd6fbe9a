package runtime

import (
	"time"

	"github.com/ncruces/go-strftime"

	"github.com/wudi/intmud/values"
)

func GetTimeFunctions() []*Builtin {
	return []*Builtin{
		{Name: "tempo", Fn: func(ctx Context, args []*values.Value) (*values.Value, error) {
			return values.Int(time.Now().Unix()), nil
		}},
		{Name: "tempoms", Fn: func(ctx Context, args []*values.Value) (*values.Value, error) {
			return values.Int(time.Now().UnixMilli()), nil
		}},
		{Name: "data", Fn: func(ctx Context, args []*values.Value) (*values.Value, error) {
			format := "%d/%m/%Y"
			if len(args) > 0 {
				format = args[0].AsString()
			}
			return values.String(strftime.Format(format, time.Now())), nil
		}},
		{Name: "hora", Fn: timeField(func(t time.Time) int { return t.Hour() })},
		{Name: "minuto", Fn: timeField(func(t time.Time) int { return t.Minute() })},
		{Name: "segundo", Fn: timeField(func(t time.Time) int { return t.Second() })},
		{Name: "dia", Fn: timeField(func(t time.Time) int { return t.Day() })},
		{Name: "mes", Fn: timeField(func(t time.Time) int { return int(t.Month()) })},
		{Name: "ano", Fn: timeField(func(t time.Time) int { return t.Year() })},
		{Name: "diasemana", Fn: timeField(func(t time.Time) int { return int(t.Weekday()) })},
	}
}

func timeField(f func(time.Time) int) func(Context, []*values.Value) (*values.Value, error) {
	return func(ctx Context, args []*values.Value) (*values.Value, error) {
		return values.Int(int64(f(time.Now()))), nil
	}
}
