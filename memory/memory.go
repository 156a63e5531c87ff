// Package memory implements the sparse cell memory of the Intcode machine.
//
// Memory maps non-negative addresses to signed 64-bit values. Only written
// addresses are stored, so programs may address far beyond their initial
// image without cost.
package memory

import (
	"iter"
	"maps"
	"slices"
)

// Value is a single memory cell.
type Value int64

// Address is an index into Memory.
type Address uint64

// AddressOf converts a Value to an Address. Negative values are rejected.
func AddressOf(value Value) (addr Address, err error) {
	if value < 0 {
		err = ErrAddressRange(value)
		return
	}

	addr = Address(value)
	return
}

// Offset returns the address displaced by a signed value.
func (addr Address) Offset(value Value) (Address, error) {
	return AddressOf(Value(addr) + value)
}

// Option configures a Memory at construction.
type Option func(mem *Memory)

// Strict makes reads of never-written addresses fail with ErrEmptyRead
// instead of returning zero.
func Strict() Option {
	return func(mem *Memory) {
		mem.strict = true
	}
}

// Memory is a sparse mapping of Address to Value.
type Memory struct {
	cells  map[Address]Value
	strict bool
}

// New creates a Memory holding a copy of cells.
func New(cells map[Address]Value, opts ...Option) (mem *Memory) {
	mem = &Memory{
		cells: maps.Clone(cells),
	}
	if mem.cells == nil {
		mem.cells = make(map[Address]Value)
	}

	for _, opt := range opts {
		opt(mem)
	}

	return
}

// FromSlice creates a Memory with values stored from address 0 onward.
func FromSlice(values []Value, opts ...Option) (mem *Memory) {
	mem = New(nil, opts...)
	for n, value := range values {
		mem.cells[Address(n)] = value
	}

	return
}

// Strict reports the read policy of the memory.
func (mem *Memory) Strict() bool {
	return mem.strict
}

// Read returns the value stored at addr. A never-written address reads as
// zero, unless the memory is strict.
func (mem *Memory) Read(addr Address) (value Value, err error) {
	value, ok := mem.cells[addr]
	if !ok && mem.strict {
		err = ErrEmptyRead(addr)
	}

	return
}

// Write stores value at addr.
func (mem *Memory) Write(addr Address, value Value) {
	mem.cells[addr] = value
}

// Len returns the number of written cells.
func (mem *Memory) Len() int {
	return len(mem.cells)
}

// Cells iterates over the written cells in ascending address order.
func (mem *Memory) Cells() iter.Seq2[Address, Value] {
	return func(yield func(Address, Value) bool) {
		for _, addr := range slices.Sorted(maps.Keys(mem.cells)) {
			if !yield(addr, mem.cells[addr]) {
				return
			}
		}
	}
}

// Clone returns an independent copy of the memory, with the same policy.
func (mem *Memory) Clone() *Memory {
	return &Memory{
		cells:  maps.Clone(mem.cells),
		strict: mem.strict,
	}
}

// Equal reports whether both memories hold exactly the same cells.
func (mem *Memory) Equal(other *Memory) bool {
	return maps.Equal(mem.cells, other.cells)
}
