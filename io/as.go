package io

import (
	"iter"
	"strconv"
	"strings"

	"github.com/ezrec/intcode/memory"
)

// SendValues sends each value to the channel in order.
func SendValues(ch Channel, values ...memory.Value) (err error) {
	for _, value := range values {
		err = ch.Send(value)
		if err != nil {
			return
		}
	}
	return
}

// SendText sends each byte of the text to the channel as a value.
func SendText(ch Channel, text string) (err error) {
	for n := range len(text) {
		err = ch.Send(memory.Value(text[n]))
		if err != nil {
			return
		}
	}
	return
}

// ReceiveLines returns an iterator that reads values from the channel and
// yields newline terminated lines of text, without the newline.
// Values outside of ASCII are rendered in decimal. A trailing partial line
// is yielded when the channel is exhausted.
func ReceiveLines(ch Channel) iter.Seq[string] {
	return func(yield func(line string) bool) {
		var line strings.Builder
		for value := range ch.Receive() {
			switch {
			case value == '\n':
				if !yield(line.String()) {
					return
				}
				line.Reset()
			case value >= 0 && value <= 127:
				line.WriteByte(byte(value))
			default:
				line.WriteString(strconv.FormatInt(int64(value), 10))
			}
		}
		if line.Len() != 0 {
			yield(line.String())
		}
	}
}
