package cpu

import (
	"github.com/ezrec/intcode/memory"
)

// Queue is the FIFO of pending input values.
type Queue struct {
	Data []memory.Value

	head int
}

// Push appends values to the tail.
func (q *Queue) Push(values ...memory.Value) {
	q.Data = append(q.Data, values...)
}

// Pop removes and returns the head value, if any.
func (q *Queue) Pop() (value memory.Value, ok bool) {
	value, ok = q.Peek()
	if ok {
		q.head++
		if q.head == len(q.Data) {
			q.Reset()
		}
	}
	return
}

// Empty reports whether no values are pending.
func (q *Queue) Empty() bool {
	return q.Len() == 0
}

// Len returns the number of pending values.
func (q *Queue) Len() int {
	return len(q.Data) - q.head
}

// Peek returns the head value without removing it.
func (q *Queue) Peek() (value memory.Value, ok bool) {
	if q.Empty() {
		return
	}

	return q.Data[q.head], true
}

// Reset discards all pending values.
func (q *Queue) Reset() {
	q.head = 0
	if len(q.Data) > 0 {
		q.Data = q.Data[:0]
	}
}
