package bytecode

import (
	"fmt"
	"strconv"

	"github.com/blackrooksoftware/rookscript/internal/value"
)

// Command is one executable bytecode operation (spec §4.3). Operand1 and
// Operand2 hold whatever the opcode needs: a literal value.Value, a string
// (a variable/host-function name or, for jump and call opcodes, a label
// name), or an int (an element count for PUSH_LIST_INIT). Jump and call
// targets are symbolic label names rather than resolved indices, so the
// optimizer (§4.5) only ever needs to remap the label table when commands
// shift — it never rewrites an operand.
type Command struct {
	Op       Opcode
	Operand1 any
	Operand2 any
}

func New(op Opcode) Command { return Command{Op: op} }

func New1(op Opcode, operand1 any) Command { return Command{Op: op, Operand1: operand1} }

func New2(op Opcode, operand1, operand2 any) Command {
	return Command{Op: op, Operand1: operand1, Operand2: operand2}
}

// Label returns Operand1 as a label name for jump/call opcodes. It panics
// if Operand1 is not a string, which would indicate a compiler bug.
func (c Command) Label() string {
	return c.Operand1.(string)
}

// FalseLabel returns Operand2 as the false-branch label of a JUMP_BRANCH
// command.
func (c Command) FalseLabel() string {
	return c.Operand2.(string)
}

// Literal returns Operand1 as a value.Value for PUSH/SET.
func (c Command) Literal() value.Value {
	return c.Operand1.(value.Value)
}

// Name returns Operand1 as a variable or host-function name.
func (c Command) Name() string {
	return c.Operand1.(string)
}

// SetValue returns Operand2 as a value.Value for SET(name, literal).
func (c Command) SetValue() value.Value {
	return c.Operand2.(value.Value)
}

// Namespace returns Operand2 as an optional host-function namespace,
// empty if none was given.
func (c Command) Namespace() string {
	if c.Operand2 == nil {
		return ""
	}
	return c.Operand2.(string)
}

// Count returns Operand1 as an element count for PUSH_LIST_INIT.
func (c Command) Count() int {
	return c.Operand1.(int)
}

func formatOperand(o any) string {
	if o == nil {
		return ""
	}
	switch v := o.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case value.Value:
		if v.Kind() == value.String {
			return strconv.Quote(v.AsString())
		}
		return v.AsString()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// String renders the command in the disassembly text format of spec
// §6.4: "OPCODE [operand1] [operand2]".
func (c Command) String() string {
	s := c.Op.String()
	if c.Operand1 != nil {
		s += " " + formatOperand(c.Operand1)
	}
	if c.Operand2 != nil {
		s += " " + formatOperand(c.Operand2)
	}
	return s
}
