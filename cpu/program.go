package cpu

import (
	"iter"
	"slices"

	"github.com/ezrec/intcode/memory"
)

// Link is a label reference to resolve into a cell of a Line.
type Link struct {
	Index int    // Index of the cell in Line.Cells.
	Label string // Label whose address is added to the cell.
}

// Line represents a line of assembled code with its source location and generated cells.
type Line struct {
	LineNo int
	Ip     memory.Address
	Words  []string
	Cells  []memory.Value
	Links  []Link
}

// Program is an assembled program listing.
type Program struct {
	Lines []Line
}

// NewProgram wraps a bare memory image as a Program with a single
// line of data and no source line numbers.
func NewProgram(image []memory.Value) (prog *Program) {
	prog = &Program{}
	if len(image) != 0 {
		prog.Lines = []Line{{Cells: slices.Clone(image)}}
	}

	return
}

// Debug locates the Line of a cell, and the index of the cell in it.
type Debug struct {
	*Line
	Index int
}

// Debug finds the line that generated the cell at ip.
func (prog *Program) Debug(ip memory.Address) (dbg Debug) {
	for n, line := range prog.Lines {
		if ip >= line.Ip && ip < line.Ip+memory.Address(len(line.Cells)) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: int(ip - line.Ip),
			}
			break
		}
	}

	return
}

// Cells iterates over the assembled cells in program order.
func (prog *Program) Cells() iter.Seq2[memory.Address, memory.Value] {
	return func(yield func(ip memory.Address, cell memory.Value) bool) {
		for _, line := range prog.Lines {
			for n, cell := range line.Cells {
				if !yield(line.Ip+memory.Address(n), cell) {
					return
				}
			}
		}
	}
}

// Memory builds the initial memory image of the program.
func (prog *Program) Memory(opts ...memory.Option) (mem *memory.Memory) {
	mem = memory.New(nil, opts...)
	for ip, cell := range prog.Cells() {
		mem.Write(ip, cell)
	}

	return
}

// Image returns the program as a dense cell slice starting at address 0.
// Gaps left by .org are zero filled.
func (prog *Program) Image() (image []memory.Value) {
	for ip, cell := range prog.Cells() {
		for memory.Address(len(image)) <= ip {
			image = append(image, 0)
		}
		image[ip] = cell
	}

	return
}
