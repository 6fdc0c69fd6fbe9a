package opcodes

import "testing"

func TestWriterReaderRoundTrip(t *testing.T) {
	w := &Writer{}
	w.Op(PushInt).I32(2).Op(PushString).U16(0).Op(Add).Op(ReturnValue)

	r := NewReader(w.Bytes())
	if op := r.ReadOpcode(); op != PushInt {
		t.Fatalf("op = %v, want PushInt", op)
	}
	if v := r.ReadI32(); v != 2 {
		t.Fatalf("i32 = %d, want 2", v)
	}
	if op := r.ReadOpcode(); op != PushString {
		t.Fatalf("op = %v, want PushString", op)
	}
	if v := r.ReadU16(); v != 0 {
		t.Fatalf("u16 = %d, want 0", v)
	}
	if op := r.ReadOpcode(); op != Add {
		t.Fatalf("op = %v, want Add", op)
	}
	if op := r.ReadOpcode(); op != ReturnValue {
		t.Fatalf("op = %v, want ReturnValue", op)
	}
	if !r.AtEnd() {
		t.Fatal("expected reader to be at end")
	}
}

func TestJumpOffsetAppliedAfterOperand(t *testing.T) {
	w := &Writer{}
	w.Op(Jump).I16(3)
	r := NewReader(w.Bytes())
	r.ReadOpcode()
	offset := r.ReadI16()
	before := r.IP
	r.Jump(offset)
	if r.IP != before+3 {
		t.Fatalf("IP = %d, want %d", r.IP, before+3)
	}
}
