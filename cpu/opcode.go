package cpu

import (
	"github.com/ezrec/intcode/memory"
)

// Opcode is the operation selector, the low two decimal digits of an
// instruction cell.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_UNSET = Opcode(0)  // unset
	OP_ADD   = Opcode(1)  // add
	OP_MUL   = Opcode(2)  // mul
	OP_IN    = Opcode(3)  // in
	OP_OUT   = Opcode(4)  // out
	OP_JNZ   = Opcode(5)  // jnz
	OP_JZ    = Opcode(6)  // jz
	OP_LT    = Opcode(7)  // lt
	OP_EQ    = Opcode(8)  // eq
	OP_ARB   = Opcode(9)  // arb
	OP_HALT  = Opcode(99) // halt
)

// Opcodes lists every valid opcode, in numeric order.
var Opcodes = []Opcode{
	OP_ADD, OP_MUL, OP_IN, OP_OUT, OP_JNZ, OP_JZ, OP_LT, OP_EQ, OP_ARB, OP_HALT,
}

// MAX_OPERANDS is the largest operand count of any opcode.
const MAX_OPERANDS = 3

// Operands returns the operand count of the opcode, or -1 if the opcode
// is not valid.
func (op Opcode) Operands() int {
	switch op {
	case OP_ADD, OP_MUL, OP_LT, OP_EQ:
		return 3
	case OP_JNZ, OP_JZ:
		return 2
	case OP_IN, OP_OUT, OP_ARB:
		return 1
	case OP_HALT:
		return 0
	default:
		return -1
	}
}

// Width returns the number of cells the instruction occupies.
func (op Opcode) Width() int {
	return op.Operands() + 1
}

// Writes returns the index of the operand written by the opcode, or -1.
func (op Opcode) Writes() int {
	switch op {
	case OP_ADD, OP_MUL, OP_LT, OP_EQ:
		return 2
	case OP_IN:
		return 0
	default:
		return -1
	}
}

// Mode is the addressing mode of an operand.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_POSITIONAL = Mode(0) // positional
	MODE_IMMEDIATE  = Mode(1) // immediate
	MODE_RELATIVE   = Mode(2) // relative
)

// Prefix returns the assembler operand prefix for the mode.
func (mode Mode) Prefix() string {
	switch mode {
	case MODE_IMMEDIATE:
		return "#"
	case MODE_RELATIVE:
		return "%"
	default:
		return ""
	}
}

// Instruction is a decoded instruction cell.
type Instruction struct {
	Cell   memory.Value       // Raw instruction cell.
	Opcode Opcode             // Decoded opcode.
	Modes  [MAX_OPERANDS]Mode // Modes of the operands, unused entries are positional.
}

// Decode splits an instruction cell into its opcode and operand modes.
// Only the mode digits of the opcode's operands are examined.
func Decode(cell memory.Value) (inst Instruction, err error) {
	inst.Cell = cell

	if cell < 0 {
		err = ErrInvalidOpcode
		return
	}

	inst.Opcode = Opcode(cell % 100)

	switch {
	case inst.Opcode == OP_UNSET:
		err = ErrFinishedWithoutTerminating
		return
	case inst.Opcode.Operands() < 0:
		err = ErrInvalidOpcode
		return
	}

	modes := cell / 100
	for n := range inst.Opcode.Operands() {
		mode := Mode(modes % 10)
		if mode > MODE_RELATIVE {
			err = ErrIllegalMode
			return
		}
		inst.Modes[n] = mode
		modes /= 10
	}

	return
}

// Encode builds an instruction cell from an opcode and operand modes.
func Encode(op Opcode, modes ...Mode) (cell memory.Value) {
	cell = memory.Value(op)

	scale := memory.Value(100)
	for _, mode := range modes {
		cell += memory.Value(mode) * scale
		scale *= 10
	}

	return
}
