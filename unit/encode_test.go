package unit

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	u := New("Monstro", []string{"Ser"}, []string{"ola", "tchau"})
	u.AddVariable(&Variable{Name: "vida", Type: VarInt32})
	u.AddFunction(&Function{Name: "ataca", Argc: 1, Bytecode: []byte{0x01, 0x02, 0x03}})
	u.AddConstant(&Constant{Name: "MAX_VIDA", Kind: ConstInt, Int: 100})
	u.AddConstant(&Constant{Name: "PI_APROX", Kind: ConstDouble, Double: 3.14})
	u.AddConstant(&Constant{Name: "SAUDACAO", Kind: ConstString, Str: "ola"})
	u.AddConstant(&Constant{Name: "CALC", Kind: ConstExpression, Bytecode: []byte{0x10, 0x20}})

	var buf bytes.Buffer
	if err := EncodeUnit(&buf, u); err != nil {
		t.Fatalf("EncodeUnit: %v", err)
	}

	got, err := DecodeUnit(&buf)
	if err != nil {
		t.Fatalf("DecodeUnit: %v", err)
	}

	if got.ClassName != "Monstro" {
		t.Errorf("ClassName = %q", got.ClassName)
	}
	if len(got.Bases) != 1 || got.Bases[0] != "Ser" {
		t.Errorf("Bases = %v", got.Bases)
	}
	if len(got.Pool) != 2 || got.Pool[1] != "tchau" {
		t.Errorf("Pool = %v", got.Pool)
	}

	v, ok := got.Variable("VIDA")
	if !ok || v.Type != VarInt32 {
		t.Errorf("Variable lookup (case-insensitive) failed: %v %v", v, ok)
	}

	f, ok := got.Function("ataca")
	if !ok || f.Argc != 1 || !bytes.Equal(f.Bytecode, []byte{0x01, 0x02, 0x03}) {
		t.Errorf("Function round-trip failed: %+v", f)
	}

	c, ok := got.Constant("max_vida")
	if !ok || c.Int != 100 {
		t.Errorf("Int constant round-trip failed: %+v", c)
	}
	c2, _ := got.Constant("PI_APROX")
	if c2.Double != 3.14 {
		t.Errorf("Double constant round-trip failed: %v", c2.Double)
	}
	c3, _ := got.Constant("SAUDACAO")
	if c3.Str != "ola" {
		t.Errorf("String constant round-trip failed: %v", c3.Str)
	}
	c4, _ := got.Constant("CALC")
	if !bytes.Equal(c4.Bytecode, []byte{0x10, 0x20}) {
		t.Errorf("Expression constant round-trip failed: %v", c4.Bytecode)
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	_, err := DecodeUnit(bytes.NewReader([]byte("XXXX\x01")))
	if err == nil {
		t.Error("expected error for bad magic")
	}
}
