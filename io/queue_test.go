package io

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/intcode/memory"
)

func TestQueue_SendReceive(t *testing.T) {
	assert := assert.New(t)

	queue := &Queue{}
	assert.Equal(0, queue.Len())

	assert.NoError(SendValues(queue, 1, 2, 3))
	assert.Equal(3, queue.Len())

	var values []memory.Value
	for value := range queue.Receive() {
		values = append(values, value)
	}
	assert.Equal([]memory.Value{1, 2, 3}, values)
	assert.Equal(0, queue.Len())

	// Drained queue yields nothing.
	count := 0
	for range queue.Receive() {
		count++
	}
	assert.Equal(0, count)
}

func TestQueue_EarlyStop(t *testing.T) {
	assert := assert.New(t)

	queue := &Queue{}
	assert.NoError(SendValues(queue, 10, 20, 30))

	for value := range queue.Receive() {
		assert.Equal(memory.Value(10), value)
		break
	}
	assert.Equal(2, queue.Len())

	var values []memory.Value
	for value := range queue.Receive() {
		values = append(values, value)
	}
	assert.Equal([]memory.Value{20, 30}, values)
}

func TestQueue_SendWhileReceiving(t *testing.T) {
	assert := assert.New(t)

	queue := &Queue{}
	assert.NoError(queue.Send(1))

	var values []memory.Value
	for value := range queue.Receive() {
		values = append(values, value)
		if value < 4 {
			assert.NoError(queue.Send(value + 1))
		}
	}
	assert.Equal([]memory.Value{1, 2, 3, 4}, values)
}

func TestQueue_Capacity(t *testing.T) {
	assert := assert.New(t)

	queue := &Queue{Capacity: 2}
	assert.NoError(queue.Send(1))
	assert.NoError(queue.Send(2))
	assert.ErrorIs(queue.Send(3), ErrChannelFull)

	for range queue.Receive() {
		break
	}
	assert.NoError(queue.Send(3))
	assert.Equal(2, queue.Len())
}

func TestQueue_Rewind(t *testing.T) {
	assert := assert.New(t)

	queue := &Queue{}
	assert.NoError(SendValues(queue, 1, 2))
	queue.Rewind()
	assert.Equal(0, queue.Len())
}
