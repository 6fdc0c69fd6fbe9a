package vm

import (
	"github.com/wudi/intmud/object"
	"github.com/wudi/intmud/unit"
	"github.com/wudi/intmud/values"
)

// evalExpression implements constant-expression evaluation (§4.7): an
// Expression-kind Constant carries its own bytecode, sharing the same
// opcode encoding as ordinary Functions, so it is run through the exact
// same runFrame loop wrapped in a synthetic, argument-less Function
// rather than a second, hand-rolled restricted interpreter.
func (vm *VirtualMachine) evalExpression(defining *unit.Unit, c *unit.Constant, this *object.Object, args []*values.Value) (*values.Value, error) {
	synthetic := &unit.Function{
		Name:     c.Name,
		Bytecode: c.Bytecode,
		Argc:     byte(len(args)),
	}
	return vm.invokeFunction(defining, synthetic, this, args)
}
