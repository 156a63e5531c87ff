package cpu

import (
	"github.com/ezrec/intcode/memory"
)

// HookPos is the point of a step at which a hook is invoked.
type HookPos int

//go:generate go tool stringer -linecomment -type=HookPos
const (
	HOOK_POS_BEFORE_STEP = HookPos(0) // before
	HOOK_POS_AFTER_STEP  = HookPos(1) // after
)

// HookCtx describes the step a hook is invoked for.
type HookCtx struct {
	Domain      *Processor     // Processor executing the step.
	Pos         HookPos        // Position of the invocation.
	Tick        int            // Completed steps before this one.
	Ip          memory.Address // Address of the instruction.
	Instruction Instruction    // Decoded instruction, opcode unset if undecodable.
	State       State          // Result of the step, only for HOOK_POS_AFTER_STEP.
}

// Hook observes the steps of a Processor. Hooks must not mutate the
// processor they observe.
//
//go:generate go tool mockgen -destination mock_hook_test.go -package cpu -write_package_comment=false github.com/ezrec/intcode/cpu Hook
type Hook interface {
	Func(ctx HookCtx)
}

// HookFunc adapts a function to a Hook.
type HookFunc func(ctx HookCtx)

func (hf HookFunc) Func(ctx HookCtx) {
	hf(ctx)
}

// AcceptHook registers a hook.
func (p *Processor) AcceptHook(hook Hook) {
	p.hooks = append(p.hooks, hook)
}

func (p *Processor) invokeHook(ctx HookCtx) {
	for _, hook := range p.hooks {
		hook.Func(ctx)
	}
}
