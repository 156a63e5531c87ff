package cpu

import (
	"errors"
	"fmt"
	"log"

	"github.com/ezrec/intcode/memory"
)

// Processor is the execution context of one Intcode machine.
//
// A Processor exclusively owns its Memory for the lifetime of execution.
// It is not safe for concurrent use; independent processors may run on
// separate goroutines.
type Processor struct {
	Verbose bool // Set to enable verbose logging.

	ip           memory.Address // Address of the next instruction.
	relativeBase memory.Value   // Base of relative mode operands.
	memory       *memory.Memory // Machine memory.
	input        Queue          // Pending input values.
	ticks        int            // Completed steps.
	fault        error          // Set once a step has failed.
	hooks        []Hook         // Step observers.
}

// NewProcessor creates a processor executing mem from address 0.
func NewProcessor(mem *memory.Memory) (p *Processor) {
	p = &Processor{
		memory: mem,
	}

	return
}

// Ip returns the program counter.
func (p *Processor) Ip() memory.Address {
	return p.ip
}

// RelativeBase returns the relative base register.
func (p *Processor) RelativeBase() memory.Value {
	return p.relativeBase
}

// Memory returns the memory owned by the processor. It must not be
// modified while the processor is in use.
func (p *Processor) Memory() *memory.Memory {
	return p.memory
}

// Ticks returns the number of completed steps.
func (p *Processor) Ticks() int {
	return p.ticks
}

// Inputs returns the number of pending input values.
func (p *Processor) Inputs() int {
	return p.input.Len()
}

// Fault returns the error that stopped the processor, if any.
func (p *Processor) Fault() error {
	return p.fault
}

// Halted reports whether the next instruction is halt.
func (p *Processor) Halted() bool {
	inst, err := p.fetch()
	return err == nil && inst.Opcode == OP_HALT
}

// NeedsInput reports whether the next instruction is an input with
// nothing queued.
func (p *Processor) NeedsInput() bool {
	if p.fault != nil || !p.input.Empty() {
		return false
	}

	inst, err := p.fetch()
	return err == nil && inst.Opcode == OP_IN
}

// PushInput appends values to the back of the input queue.
func (p *Processor) PushInput(values ...memory.Value) {
	p.input.Push(values...)
}

// String returns the current processor state as a string.
func (p *Processor) String() (text string) {
	regs := []string{"ip", "rb", "ticks", "input", "fault"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "ip":
			strval = fmt.Sprintf("%04d", p.ip)
			if dis, _, err := Disassemble(p.memory, p.ip); err == nil {
				strval += " " + dis
			}
		case "rb":
			strval = fmt.Sprintf("%d", p.relativeBase)
		case "ticks":
			strval = fmt.Sprintf("%d", p.ticks)
		case "input":
			if p.input.Empty() {
				strval = "----"
			} else {
				strval = fmt.Sprintf("%v", p.input.Data[p.input.head:])
			}
		case "fault":
			strval = "none"
			if p.fault != nil {
				strval = p.fault.Error()
			}
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// fetch decodes the instruction at the program counter.
func (p *Processor) fetch() (inst Instruction, err error) {
	cell, err := p.memory.Read(p.ip)
	if err != nil {
		inst.Cell = cell
		return
	}

	return Decode(cell)
}

// ExecuteOnce performs exactly one instruction.
//
// After a STATE_ERROR result the processor is faulted, and every further
// call returns the same error without executing anything.
func (p *Processor) ExecuteOnce() (state State) {
	if p.fault != nil {
		state = State{Kind: STATE_ERROR, Err: p.fault}
		return
	}

	ip := p.ip
	tick := p.ticks
	inst, err := p.fetch()

	if len(p.hooks) != 0 {
		p.invokeHook(HookCtx{Domain: p, Pos: HOOK_POS_BEFORE_STEP, Tick: tick, Ip: ip, Instruction: inst})
		defer func() {
			p.invokeHook(HookCtx{Domain: p, Pos: HOOK_POS_AFTER_STEP, Tick: tick, Ip: ip, Instruction: inst, State: state})
		}()
	}

	if p.Verbose {
		dis, _, _ := Disassemble(p.memory, ip)
		log.Printf("%04d: %v", ip, dis)
	}

	switch {
	case err != nil:
		// fall through to fault
	case inst.Opcode == OP_HALT:
		state.Kind = STATE_TERMINATE
		return
	default:
		state.Output, state.HasOutput, err = p.dispatch(&inst)
	}

	if err != nil {
		p.fault = errors.Join(ErrOpcode{Ip: ip, Cell: inst.Cell}, err)
		if p.Verbose {
			log.Printf("%04d: %v", ip, p.fault)
		}
		state = State{Kind: STATE_ERROR, Err: p.fault}
		return
	}

	p.ticks++
	state.Kind = STATE_CONTINUE
	return
}

// dispatch executes a decoded instruction.
func (p *Processor) dispatch(inst *Instruction) (output memory.Value, ok bool, err error) {
	switch inst.Opcode {
	case OP_ADD:
		err = p.add(inst)
	case OP_MUL:
		err = p.multiply(inst)
	case OP_IN:
		err = p.in(inst)
	case OP_OUT:
		output, err = p.out(inst)
		ok = err == nil
	case OP_JNZ:
		err = p.jumpIfTrue(inst)
	case OP_JZ:
		err = p.jumpIfFalse(inst)
	case OP_LT:
		err = p.lessThan(inst)
	case OP_EQ:
		err = p.equals(inst)
	case OP_ARB:
		err = p.adjustRelativeBase(inst)
	default:
		err = ErrInvalidOpcode
	}

	return
}

// Execute runs until the program halts or fails. Outputs are discarded.
func (p *Processor) Execute() (err error) {
	for {
		state := p.ExecuteOnce()
		switch state.Kind {
		case STATE_TERMINATE:
			return
		case STATE_ERROR:
			err = state.Err
			return
		}
	}
}

// ExecuteUntilOutput runs until the next output value, which is returned.
// If the program halts first, done is set. If a step fails, its error is
// returned.
func (p *Processor) ExecuteUntilOutput() (output memory.Value, done bool, err error) {
	for {
		state := p.ExecuteOnce()
		switch state.Kind {
		case STATE_CONTINUE:
			if state.HasOutput {
				output = state.Output
				return
			}
		case STATE_TERMINATE:
			done = true
			return
		case STATE_ERROR:
			err = state.Err
			return
		}
	}
}
