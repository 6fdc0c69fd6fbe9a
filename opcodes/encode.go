package opcodes

import (
	"encoding/binary"
	"math"
)

// Reader decodes a bytecode stream one operand at a time, tracking the
// instruction pointer. The interpreter and the constant-expression
// evaluator (§4.7) share this type so operand encoding never drifts
// between the two loops.
type Reader struct {
	Code []byte
	IP   int
}

func NewReader(code []byte) *Reader {
	return &Reader{Code: code}
}

func (r *Reader) AtEnd() bool { return r.IP >= len(r.Code) }

func (r *Reader) ReadOpcode() Opcode {
	op := Opcode(r.Code[r.IP])
	r.IP++
	return op
}

func (r *Reader) ReadU8() byte {
	v := r.Code[r.IP]
	r.IP++
	return v
}

func (r *Reader) ReadU16() uint16 {
	v := binary.LittleEndian.Uint16(r.Code[r.IP:])
	r.IP += 2
	return v
}

func (r *Reader) ReadI16() int16 {
	return int16(r.ReadU16())
}

func (r *Reader) ReadI32() int32 {
	v := binary.LittleEndian.Uint32(r.Code[r.IP:])
	r.IP += 4
	return int32(v)
}

func (r *Reader) ReadF64() float64 {
	v := binary.LittleEndian.Uint64(r.Code[r.IP:])
	r.IP += 8
	return math.Float64frombits(v)
}

// Jump applies a relative offset read by ReadI16, which is added to the
// instruction pointer *after* the offset itself has been consumed (§4.1).
func (r *Reader) Jump(offset int16) {
	r.IP += int(offset)
}

// Writer assembles bytecode; tests use it to build literal instruction
// sequences (scenarios S1/S2 and the like).
type Writer struct {
	Code []byte
}

func (w *Writer) Op(op Opcode) *Writer {
	w.Code = append(w.Code, byte(op))
	return w
}

func (w *Writer) U8(v byte) *Writer {
	w.Code = append(w.Code, v)
	return w
}

func (w *Writer) U16(v uint16) *Writer {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	w.Code = append(w.Code, buf[:]...)
	return w
}

func (w *Writer) I16(v int16) *Writer {
	return w.U16(uint16(v))
}

func (w *Writer) I32(v int32) *Writer {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	w.Code = append(w.Code, buf[:]...)
	return w
}

func (w *Writer) F64(v float64) *Writer {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	w.Code = append(w.Code, buf[:]...)
	return w
}

func (w *Writer) Bytes() []byte { return w.Code }
