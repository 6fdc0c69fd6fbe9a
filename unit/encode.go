package unit

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

var containerMagic = [4]byte{'I', 'M', 'U', 'D'}

const containerVersion = 1

// DecodeUnit reads the container format documented in SPEC_FULL.md §3: a
// little-endian binary encoding of a Unit's class name, bases, string
// pool, variables, functions, and constants. It is the only format this
// package understands — not a source-level compiler's output, just a
// serialization of the Unit struct itself.
func DecodeUnit(r io.Reader) (*Unit, error) {
	br := &byteReader{r: r}

	var magic [4]byte
	br.read(magic[:])
	if br.err == nil && magic != containerMagic {
		return nil, fmt.Errorf("unit: bad magic %q", magic)
	}

	version := br.readU8()
	if br.err == nil && version != containerVersion {
		return nil, fmt.Errorf("unit: unsupported container version %d", version)
	}

	className := br.readString()

	baseCount := br.readU16()
	bases := make([]string, 0, baseCount)
	for i := uint16(0); i < baseCount; i++ {
		bases = append(bases, br.readString())
	}

	poolCount := br.readU16()
	pool := make([]string, 0, poolCount)
	for i := uint16(0); i < poolCount; i++ {
		pool = append(pool, br.readString())
	}

	u := New(className, bases, pool)

	varCount := br.readU16()
	for i := uint16(0); i < varCount; i++ {
		name := br.readString()
		typeTag := VarType(br.readU8())
		u.AddVariable(&Variable{Name: name, Type: typeTag})
	}

	funcCount := br.readU16()
	for i := uint16(0); i < funcCount; i++ {
		name := br.readString()
		argc := br.readU8()
		codeLen := br.readU32()
		code := make([]byte, codeLen)
		br.read(code)
		u.AddFunction(&Function{Name: name, Bytecode: code, Argc: argc})
	}

	constCount := br.readU16()
	for i := uint16(0); i < constCount; i++ {
		name := br.readString()
		kind := ConstKind(br.readU8())
		c := &Constant{Name: name, Kind: kind}
		switch kind {
		case ConstInt:
			c.Int = int64(br.readU64())
		case ConstDouble:
			c.Double = br.readF64()
		case ConstString:
			c.Str = br.readString()
		case ConstExpression:
			codeLen := br.readU32()
			code := make([]byte, codeLen)
			br.read(code)
			c.Bytecode = code
		default:
			if br.err == nil {
				br.err = fmt.Errorf("unit: unknown constant kind %d for %q", kind, name)
			}
		}
		u.AddConstant(c)
	}

	if br.err != nil {
		return nil, br.err
	}
	return u, nil
}

// EncodeUnit serializes u in the same container format DecodeUnit reads.
func EncodeUnit(w io.Writer, u *Unit) error {
	buf := &bytes.Buffer{}
	buf.Write(containerMagic[:])
	buf.WriteByte(containerVersion)

	writeString(buf, u.ClassName)

	writeU16(buf, uint16(len(u.Bases)))
	for _, b := range u.Bases {
		writeString(buf, b)
	}

	writeU16(buf, uint16(len(u.Pool)))
	for _, s := range u.Pool {
		writeString(buf, s)
	}

	writeU16(buf, uint16(len(u.Vars)))
	for _, v := range u.Vars {
		writeString(buf, v.Name)
		buf.WriteByte(byte(v.Type))
	}

	writeU16(buf, uint16(len(u.Funcs)))
	for _, f := range u.Funcs {
		writeString(buf, f.Name)
		buf.WriteByte(f.Argc)
		writeU32(buf, uint32(len(f.Bytecode)))
		buf.Write(f.Bytecode)
	}

	writeU16(buf, uint16(len(u.Consts)))
	for _, c := range u.Consts {
		writeString(buf, c.Name)
		buf.WriteByte(byte(c.Kind))
		switch c.Kind {
		case ConstInt:
			writeU64(buf, uint64(c.Int))
		case ConstDouble:
			writeF64(buf, c.Double)
		case ConstString:
			writeString(buf, c.Str)
		case ConstExpression:
			writeU32(buf, uint32(len(c.Bytecode)))
			buf.Write(c.Bytecode)
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// byteReader accumulates the first error encountered so callers can chain
// reads without checking after every field, mirroring a common decoder
// idiom.
type byteReader struct {
	r   io.Reader
	err error
}

func (b *byteReader) read(p []byte) {
	if b.err != nil {
		return
	}
	_, b.err = io.ReadFull(b.r, p)
}

func (b *byteReader) readU8() byte {
	var buf [1]byte
	b.read(buf[:])
	return buf[0]
}

func (b *byteReader) readU16() uint16 {
	var buf [2]byte
	b.read(buf[:])
	return binary.LittleEndian.Uint16(buf[:])
}

func (b *byteReader) readU32() uint32 {
	var buf [4]byte
	b.read(buf[:])
	return binary.LittleEndian.Uint32(buf[:])
}

func (b *byteReader) readU64() uint64 {
	var buf [8]byte
	b.read(buf[:])
	return binary.LittleEndian.Uint64(buf[:])
}

func (b *byteReader) readF64() float64 {
	return math.Float64frombits(b.readU64())
}

func (b *byteReader) readString() string {
	n := b.readU16()
	buf := make([]byte, n)
	b.read(buf)
	return string(buf)
}

func writeString(buf *bytes.Buffer, s string) {
	writeU16(buf, uint16(len(s)))
	buf.WriteString(s)
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	buf.Write(tmp[:])
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	buf.Write(tmp[:])
}

func writeU64(buf *bytes.Buffer, v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	buf.Write(tmp[:])
}

func writeF64(buf *bytes.Buffer, f float64) {
	writeU64(buf, math.Float64bits(f))
}
