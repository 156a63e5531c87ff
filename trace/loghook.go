package trace

import (
	"log"
	"strconv"

	"github.com/ezrec/intcode/cpu"
)

// LogHook logs a line per completed step.
type LogHook struct {
	Logger *log.Logger // Destination, or the standard logger if nil.
	Name   string      // Prefix identifying the processor.

	text string
}

var _ cpu.Hook = (*LogHook)(nil)

func (lh *LogHook) Func(ctx cpu.HookCtx) {
	switch ctx.Pos {
	case cpu.HOOK_POS_BEFORE_STEP:
		// Operands may be overwritten by the step itself.
		lh.text, _, _ = cpu.Disassemble(ctx.Domain.Memory(), ctx.Ip)
		return
	case cpu.HOOK_POS_AFTER_STEP:
	default:
		return
	}

	var result string
	switch state := ctx.State; {
	case state.Kind == cpu.STATE_ERROR:
		result = "error: " + state.Err.Error()
	case state.HasOutput:
		result = "output " + strconv.FormatInt(int64(state.Output), 10)
	default:
		result = state.Kind.String()
	}

	logf := log.Printf
	if lh.Logger != nil {
		logf = lh.Logger.Printf
	}
	logf("%v %6d %04d %-24s rb=%d %v", lh.Name, ctx.Tick, ctx.Ip, lh.text, ctx.Domain.RelativeBase(), result)
}
