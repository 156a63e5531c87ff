package trace

import (
	"fmt"
	"io"
	"sync"

	"github.com/ezrec/intcode/cpu"
)

// OpcodeCounter counts the completed steps of each opcode.
// It may be shared by processors running on separate goroutines.
type OpcodeCounter struct {
	filter StepFilter
	lock   sync.Mutex
	names  []string
	count  map[string]uint64
}

var _ cpu.Hook = (*OpcodeCounter)(nil)

// NewOpcodeCounter creates a counter of the steps selected by filter.
// A nil filter counts every completed step.
func NewOpcodeCounter(filter StepFilter) *OpcodeCounter {
	if filter == nil {
		filter = AfterStep
	}

	return &OpcodeCounter{
		filter: filter,
		count:  make(map[string]uint64),
	}
}

// Func counts a step. Failed steps are not counted.
func (oc *OpcodeCounter) Func(ctx cpu.HookCtx) {
	if !AfterStep(ctx) || !oc.filter(ctx) || ctx.State.Kind == cpu.STATE_ERROR {
		return
	}

	name := ctx.Instruction.Opcode.String()

	oc.lock.Lock()
	defer oc.lock.Unlock()

	_, ok := oc.count[name]
	if !ok {
		oc.names = append(oc.names, name)
	}
	oc.count[name]++
}

// Names returns the opcode names seen, in order of first execution.
func (oc *OpcodeCounter) Names() []string {
	oc.lock.Lock()
	defer oc.lock.Unlock()

	return append([]string(nil), oc.names...)
}

// Count returns the number of steps of the named opcode.
func (oc *OpcodeCounter) Count(name string) uint64 {
	oc.lock.Lock()
	defer oc.lock.Unlock()

	return oc.count[name]
}

// Total returns the number of steps counted.
func (oc *OpcodeCounter) Total() (total uint64) {
	oc.lock.Lock()
	defer oc.lock.Unlock()

	for _, count := range oc.count {
		total += count
	}

	return
}

// WriteTo writes one line per opcode, in order of first execution.
func (oc *OpcodeCounter) WriteTo(w io.Writer) (n int64, err error) {
	for _, name := range oc.Names() {
		var written int
		written, err = fmt.Fprintf(w, "%-5s %d\n", name, oc.Count(name))
		n += int64(written)
		if err != nil {
			return
		}
	}

	return
}
