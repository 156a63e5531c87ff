package cpu

import (
	"iter"
	"strconv"
	"strings"

	"github.com/ezrec/intcode/memory"
)

// Disassemble renders the instruction at ip in assembler syntax, and
// returns the number of cells it occupies. Cells that do not decode are
// rendered as .data.
func Disassemble(mem *memory.Memory, ip memory.Address) (text string, width int, err error) {
	cell, err := mem.Read(ip)
	if err != nil {
		return
	}

	inst, derr := Decode(cell)
	if derr != nil {
		text = ".data " + strconv.FormatInt(int64(cell), 10)
		width = 1
		return
	}

	words := make([]string, 0, 1+MAX_OPERANDS)
	words = append(words, inst.Opcode.String())
	for n := range inst.Opcode.Operands() {
		var raw memory.Value
		raw, err = mem.Read(ip + memory.Address(1+n))
		if err != nil {
			return
		}
		words = append(words, inst.Modes[n].Prefix()+strconv.FormatInt(int64(raw), 10))
	}

	text = strings.Join(words, " ")
	width = inst.Opcode.Width()
	return
}

// Listing disassembles the written cells of mem in address order. Gaps
// between written cells are skipped.
func Listing(mem *memory.Memory) iter.Seq2[memory.Address, string] {
	return func(yield func(memory.Address, string) bool) {
		next := memory.Address(0)
		for addr := range mem.Cells() {
			if addr < next {
				continue
			}
			text, width, err := Disassemble(mem, addr)
			if err != nil {
				text, width = "", 1
			}
			if !yield(addr, text) {
				return
			}
			next = addr + memory.Address(width)
		}
	}
}
