// Package io provides value channels that feed and drain Intcode processors.
// It includes an in-memory FIFO (Queue), a stream adapter for readers and
// writers (Tape), and a read only program image (Rom).
package io

import (
	"iter"

	"github.com/ezrec/intcode/memory"
)

// Channel defines the interface for all I/O channels.
// Channels carry whole Intcode values, in order.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Receive returns an iterator that yields values from the channel.
	Receive() iter.Seq[memory.Value]
	// Send writes a single value to the channel.
	Send(value memory.Value) error
}
