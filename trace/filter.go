// Package trace provides processor hooks that observe execution: a SQLite
// step recorder, an opcode counter, and a step logger.
package trace

import (
	"slices"

	"github.com/ezrec/intcode/cpu"
)

// StepFilter selects the hook invocations to observe.
type StepFilter func(ctx cpu.HookCtx) bool

// AfterStep selects invocations made once a step has completed.
func AfterStep(ctx cpu.HookCtx) bool {
	return ctx.Pos == cpu.HOOK_POS_AFTER_STEP
}

// OpcodeFilter selects completed steps of the listed opcodes.
func OpcodeFilter(ops ...cpu.Opcode) StepFilter {
	return func(ctx cpu.HookCtx) bool {
		return AfterStep(ctx) && slices.Contains(ops, ctx.Instruction.Opcode)
	}
}

// FilteredHook forwards the invocations selected by Filter to Hook.
// A nil Filter forwards everything.
type FilteredHook struct {
	Filter StepFilter
	Hook   cpu.Hook
}

var _ cpu.Hook = FilteredHook{}

func (fh FilteredHook) Func(ctx cpu.HookCtx) {
	if fh.Filter == nil || fh.Filter(ctx) {
		fh.Hook.Func(ctx)
	}
}
