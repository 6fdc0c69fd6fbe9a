package vm

import (
	"errors"
	"fmt"

	"github.com/wudi/intmud/opcodes"
)

// Sentinel fault kinds (§7). Each is a distinct, wrappable error so hosts
// can branch with errors.Is without parsing messages.
var (
	ErrStackOverflow     = errors.New("vm: stack overflow")
	ErrStackUnderflow    = errors.New("vm: stack underflow")
	ErrCallStackOverflow = errors.New("vm: call stack overflow")
	ErrUnknownOpcode     = errors.New("vm: unknown opcode")
	ErrClassNotFound     = errors.New("vm: class not found")
	ErrFunctionNotFound  = errors.New("vm: function not found")
	ErrTerminate         = errors.New("vm: terminate")
)

// Fault wraps a sentinel error with the execution context it occurred in,
// in the teacher's VMError idiom: a typed, wrapped error carrying opcode
// and instruction-pointer context instead of a bare string.
type Fault struct {
	Kind    error
	Message string
	Opcode  opcodes.Opcode
	IP      int
}

func (f *Fault) Error() string {
	if f.Message != "" {
		return fmt.Sprintf("%s (op=%s ip=%d): %s", f.Kind, f.Opcode, f.IP, f.Message)
	}
	return fmt.Sprintf("%s (op=%s ip=%d)", f.Kind, f.Opcode, f.IP)
}

func (f *Fault) Unwrap() error { return f.Kind }

func (f *Fault) Is(target error) bool {
	return errors.Is(f.Kind, target)
}

func newFault(kind error, op opcodes.Opcode, ip int, format string, args ...any) *Fault {
	return &Fault{Kind: kind, Message: fmt.Sprintf(format, args...), Opcode: op, IP: ip}
}
