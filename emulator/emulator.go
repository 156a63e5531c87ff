// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"iter"
	"log"

	"github.com/rs/xid"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/io"
	"github.com/ezrec/intcode/memory"
)

// Emulator state. Processor + program listing + IO channels.
type Emulator struct {
	Verbose   bool           // If set, enables verbose logging.
	ID        string         // Unique identifier, used in log lines.
	Processor *cpu.Processor // Processor running the program.
	Program   *cpu.Program   // Program listing loaded on Reset.

	Input  io.Channel // Source of input values.
	Output io.Channel // Destination of output values.

	options []memory.Option
	hooks   []cpu.Hook

	next func() (memory.Value, bool)
	stop func()
}

// NewEmulator creates an emulator for a program, reset and ready to run.
// Input and Output default to empty queues.
func NewEmulator(program *cpu.Program, opts ...memory.Option) (emu *Emulator) {
	emu = &Emulator{
		ID:      xid.New().String(),
		Program: program,
		Input:   &io.Queue{},
		Output:  &io.Queue{},
		options: opts,
	}

	emu.Reset()

	return
}

// AcceptHook registers a hook on the processor, now and after every Reset.
func (emu *Emulator) AcceptHook(hook cpu.Hook) {
	emu.hooks = append(emu.hooks, hook)
	emu.Processor.AcceptHook(hook)
}

// Close releases any pending input iteration.
func (emu *Emulator) Close() (err error) {
	emu.stopInput()

	return
}

// Reset rebuilds the processor from the program image, and rewinds the
// channels.
func (emu *Emulator) Reset() {
	emu.stopInput()

	if emu.Program == nil {
		emu.Program = &cpu.Program{}
	}

	emu.Processor = cpu.NewProcessor(emu.Program.Memory(emu.options...))
	emu.Processor.Verbose = emu.Verbose
	for _, hook := range emu.hooks {
		emu.Processor.AcceptHook(hook)
	}

	if emu.Input != nil {
		emu.Input.Rewind()
	}
	if emu.Output != nil {
		emu.Output.Rewind()
	}
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Processor.Ticks()
}

// Ip returns current instruction pointer.
func (emu *Emulator) Ip() memory.Address {
	return emu.Processor.Ip()
}

// LineNo returns the source line number of the cell at ip, or 0 if unknown.
func (emu *Emulator) LineNo(ip memory.Address) int {
	dbg := emu.Program.Debug(ip)
	if dbg.Line == nil {
		return 0
	}

	return dbg.LineNo
}

func (emu *Emulator) stopInput() {
	if emu.stop != nil {
		emu.stop()
	}
	emu.next = nil
	emu.stop = nil
}

// pull lazily fetches the next value from the input channel.
func (emu *Emulator) pull() (value memory.Value, ok bool) {
	if emu.Input == nil {
		return
	}

	if emu.next == nil {
		emu.next, emu.stop = iter.Pull(emu.Input.Receive())
	}

	value, ok = emu.next()
	if !ok {
		// Retry the channel on the next request.
		emu.stopInput()
	}

	return
}

// Tick performs a single step of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	p := emu.Processor
	p.Verbose = emu.Verbose

	ip := p.Ip()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Ip: ip, LineNo: emu.LineNo(ip), Err: err}
		}
	}()

	if p.NeedsInput() {
		value, ok := emu.pull()
		if !ok {
			err = errors.Join(ErrInputExhausted, cpu.ErrInputRead)
			return
		}
		p.PushInput(value)
	}

	state := p.ExecuteOnce()
	switch state.Kind {
	case cpu.STATE_TERMINATE:
		done = true
		if emu.Verbose {
			log.Printf("%v: halted after %d ticks", emu.ID, p.Ticks())
		}
	case cpu.STATE_ERROR:
		err = state.Err
	case cpu.STATE_CONTINUE:
		if state.HasOutput && emu.Output != nil {
			if emu.Verbose {
				log.Printf("%v: output %d", emu.ID, state.Output)
			}
			err = emu.Output.Send(state.Output)
		}
	}

	return
}

// Run ticks until the program halts or fails.
// If limit is positive, at most limit steps are performed.
func (emu *Emulator) Run(limit int) (err error) {
	for steps := 0; limit <= 0 || steps < limit; steps++ {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}

	ip := emu.Ip()
	err = &ErrRuntime{Ip: ip, LineNo: emu.LineNo(ip), Err: ErrStepLimit}
	return
}
