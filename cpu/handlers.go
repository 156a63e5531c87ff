package cpu

import (
	"errors"

	"github.com/ezrec/intcode/memory"
)

// param returns the address of operand n of the current instruction.
func (p *Processor) param(n int) memory.Address {
	return p.ip + memory.Address(1+n)
}

// pointer converts a value used as an operand address.
func pointer(value memory.Value) (addr memory.Address, err error) {
	addr, err = memory.AddressOf(value)
	if err != nil {
		err = errors.Join(ErrIllegalPositionalArgument, err)
	}
	return
}

// read resolves read operand n through its addressing mode.
func (p *Processor) read(inst *Instruction, n int) (value memory.Value, err error) {
	raw, err := p.memory.Read(p.param(n))
	if err != nil {
		return
	}

	var addr memory.Address
	switch inst.Modes[n] {
	case MODE_IMMEDIATE:
		value = raw
		return
	case MODE_POSITIONAL:
		addr, err = pointer(raw)
	case MODE_RELATIVE:
		addr, err = pointer(p.relativeBase + raw)
	default:
		err = ErrIllegalMode
	}
	if err != nil {
		return
	}

	return p.memory.Read(addr)
}

// target resolves the destination address of write operand n.
//
// Unlike reads, a positional write uses the operand cell as the address
// itself, and an immediate write lands on the operand cell.
func (p *Processor) target(inst *Instruction, n int) (addr memory.Address, err error) {
	if inst.Modes[n] == MODE_IMMEDIATE {
		addr = p.param(n)
		return
	}

	raw, err := p.memory.Read(p.param(n))
	if err != nil {
		return
	}

	switch inst.Modes[n] {
	case MODE_POSITIONAL:
		addr, err = pointer(raw)
	case MODE_RELATIVE:
		addr, err = pointer(p.relativeBase + raw)
	default:
		err = ErrIllegalMode
	}

	return
}

// jump resolves operand n as a jump destination.
func (p *Processor) jump(inst *Instruction, n int) (addr memory.Address, err error) {
	value, err := p.read(inst, n)
	if err != nil {
		return
	}

	return pointer(value)
}

// binary applies op to the two read operands and stores into the third.
func (p *Processor) binary(inst *Instruction, op func(a, b memory.Value) memory.Value) (err error) {
	a, err := p.read(inst, 0)
	if err != nil {
		return
	}
	b, err := p.read(inst, 1)
	if err != nil {
		return
	}
	out, err := p.target(inst, 2)
	if err != nil {
		return
	}

	p.memory.Write(out, op(a, b))
	p.ip += 4
	return
}

func (p *Processor) add(inst *Instruction) error {
	return p.binary(inst, func(a, b memory.Value) memory.Value { return a + b })
}

func (p *Processor) multiply(inst *Instruction) error {
	return p.binary(inst, func(a, b memory.Value) memory.Value { return a * b })
}

func (p *Processor) lessThan(inst *Instruction) error {
	return p.binary(inst, func(a, b memory.Value) memory.Value {
		if a < b {
			return 1
		}
		return 0
	})
}

func (p *Processor) equals(inst *Instruction) error {
	return p.binary(inst, func(a, b memory.Value) memory.Value {
		if a == b {
			return 1
		}
		return 0
	})
}

func (p *Processor) in(inst *Instruction) (err error) {
	out, err := p.target(inst, 0)
	if err != nil {
		return
	}

	value, ok := p.input.Pop()
	if !ok {
		err = ErrInputRead
		return
	}

	p.memory.Write(out, value)
	p.ip += 2
	return
}

func (p *Processor) out(inst *Instruction) (value memory.Value, err error) {
	value, err = p.read(inst, 0)
	if err != nil {
		return
	}

	p.ip += 2
	return
}

func (p *Processor) jumpIfTrue(inst *Instruction) (err error) {
	cond, err := p.read(inst, 0)
	if err != nil {
		return
	}
	to, err := p.jump(inst, 1)
	if err != nil {
		return
	}

	if cond != 0 {
		p.ip = to
	} else {
		p.ip += 3
	}
	return
}

func (p *Processor) jumpIfFalse(inst *Instruction) (err error) {
	cond, err := p.read(inst, 0)
	if err != nil {
		return
	}
	to, err := p.jump(inst, 1)
	if err != nil {
		return
	}

	if cond == 0 {
		p.ip = to
	} else {
		p.ip += 3
	}
	return
}

func (p *Processor) adjustRelativeBase(inst *Instruction) (err error) {
	value, err := p.read(inst, 0)
	if err != nil {
		return
	}

	p.relativeBase += value
	p.ip += 2
	return
}
