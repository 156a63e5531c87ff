package io

import (
	"iter"

	"github.com/ezrec/intcode/memory"
)

// Queue is an in-memory FIFO of values.
// Receiving drains the queue; Send appends to it.
type Queue struct {
	Capacity int // Maximum values held, or 0 for unbounded.

	Data      []memory.Value
	ReadIndex int
}

var _ Channel = (*Queue)(nil)

// Rewind empties the queue.
func (queue *Queue) Rewind() {
	queue.Data = queue.Data[:0]
	queue.ReadIndex = 0
}

// Len returns the number of values waiting in the queue.
func (queue *Queue) Len() int {
	return len(queue.Data) - queue.ReadIndex
}

// Receive returns an iterator that yields values until the queue is empty.
// Values sent while iterating are also yielded.
func (queue *Queue) Receive() iter.Seq[memory.Value] {
	return func(yield func(value memory.Value) bool) {
		for queue.ReadIndex < len(queue.Data) {
			value := queue.Data[queue.ReadIndex]
			queue.ReadIndex++
			if queue.ReadIndex == len(queue.Data) {
				queue.Rewind()
			}
			if !yield(value) {
				return
			}
		}
	}
}

// Send appends a value to the queue.
func (queue *Queue) Send(value memory.Value) (err error) {
	if queue.Capacity > 0 && queue.Len() >= queue.Capacity {
		err = ErrChannelFull
		return
	}

	queue.Data = append(queue.Data, value)
	return
}
