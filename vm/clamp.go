package vm

import (
	"github.com/wudi/intmud/unit"
	"github.com/wudi/intmud/values"
)

// clampToType applies the narrow-integer clamping table from §4.4 to an
// incoming store. Types outside the narrow-integer/real set (txt, ref,
// vetor, objeto) pass the value through unchanged.
func clampToType(v *values.Value, t unit.VarType) *values.Value {
	switch t {
	case unit.VarInt1:
		if v.Truthy() {
			return values.Int(1)
		}
		return values.Int(0)
	case unit.VarInt8:
		return values.Int(clampInt64(v.AsInt(), -128, 127))
	case unit.VarUint8:
		return values.Int(clampInt64(v.AsInt(), 0, 255))
	case unit.VarInt16:
		return values.Int(clampInt64(v.AsInt(), -32768, 32767))
	case unit.VarUint16:
		return values.Int(clampInt64(v.AsInt(), 0, 65535))
	case unit.VarInt32:
		return values.Int(clampInt64(v.AsInt(), -2147483648, 2147483647))
	case unit.VarUint32:
		d := v.AsDouble()
		if d < 0 {
			d = 0
		}
		if d > 4294967295 {
			d = 4294967295
		}
		return values.Int(int64(d))
	case unit.VarReal:
		return values.Double(float64(float32(v.AsDouble())))
	case unit.VarReal2:
		return values.Double(v.AsDouble())
	default:
		return v
	}
}

func clampInt64(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
