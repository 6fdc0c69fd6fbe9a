package values

import "testing"

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    *Value
		want bool
	}{
		{Null(), false},
		{Int(0), false},
		{Int(5), true},
		{Double(0), false},
		{Double(0.1), true},
		{Bool(false), false},
		{Bool(true), true},
		{String(""), false},
		{String("x"), true},
		{FromArray(NewSharedArray()), false},
	}
	for _, c := range cases {
		if got := c.v.Truthy(); got != c.want {
			t.Errorf("Truthy(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestStrictEqRequiresSameKind(t *testing.T) {
	if Int(1).StrictEq(Double(1)) {
		t.Error("StrictEq should not cross Integer/Double")
	}
	if !Int(1).StrictEq(Int(1)) {
		t.Error("StrictEq should hold for equal Integers")
	}
	if !Null().StrictEq(Null()) {
		t.Error("StrictEq should hold for two Nulls")
	}
}

func TestEqCrossesIntDouble(t *testing.T) {
	if !Int(3).Eq(Double(3.0)) {
		t.Error("Eq should treat Integer 3 and Double 3.0 as equal")
	}
	if Int(3).Eq(Double(3.5)) {
		t.Error("Eq should not treat 3 and 3.5 as equal")
	}
}

func TestIntegerDivByZero(t *testing.T) {
	if got := Int(7).Div(Int(0)); got.AsInt() != 0 {
		t.Errorf("Integer Div by zero = %d, want 0", got.AsInt())
	}
	if got := Int(7).Mod(Int(0)); got.AsInt() != 0 {
		t.Errorf("Integer Mod by zero = %d, want 0", got.AsInt())
	}
}

func TestConcatVsAdd(t *testing.T) {
	if got := String("12").Add(String("3")).AsInt(); got != 15 {
		t.Errorf("Add on numeric strings = %d, want 15", got)
	}
	if got := String("ab").Concat(String("cd")).AsString(); got != "abcd" {
		t.Errorf("Concat = %q, want abcd", got)
	}
}

func TestAddPromotesToDouble(t *testing.T) {
	v := Int(1).Add(Double(0.5))
	if !v.IsDouble() || v.AsDouble() != 1.5 {
		t.Errorf("Integer+Double = %v, want Double 1.5", v)
	}
}

func TestArrayAutoExtend(t *testing.T) {
	a := NewSharedArray()
	a.Set(3, Int(9))
	if a.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", a.Len())
	}
	if !a.Get(0).IsNull() {
		t.Error("auto-extended slot should be Null")
	}
	if a.Get(3).AsInt() != 9 {
		t.Error("explicit slot should hold stored value")
	}
	if !a.Get(99).IsNull() {
		t.Error("out-of-range Get should yield Null, not panic")
	}
}

func TestCompareNotOrderableKinds(t *testing.T) {
	a := FromArray(NewSharedArray())
	b := FromArray(NewSharedArray())
	if a.Lt(b) || a.Gt(b) || a.Le(b) || a.Ge(b) {
		t.Error("Array values should never be orderable")
	}
}
