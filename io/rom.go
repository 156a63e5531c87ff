package io

import (
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/ezrec/intcode/memory"
)

// Rom is a read only program image.
type Rom struct {
	Data []memory.Value
}

var _ Channel = (*Rom)(nil)
var _ io.ReaderFrom = (*Rom)(nil)

// Rewind does nothing; a Rom is always read from the start.
func (rc *Rom) Rewind() {
}

// Receive yields the image cells in order.
func (rc *Rom) Receive() iter.Seq[memory.Value] {
	return func(yield func(value memory.Value) bool) {
		for _, value := range rc.Data {
			if !yield(value) {
				return
			}
		}
	}
}

// Send always fails.
func (rc *Rom) Send(value memory.Value) error {
	return ErrChannelFull
}

// ReadFrom replaces the image with a comma separated list of decimal cells.
// Whitespace around cells and a trailing comma or newline are ignored.
func (rc *Rom) ReadFrom(r io.Reader) (n int64, err error) {
	text, err := io.ReadAll(r)
	n = int64(len(text))
	if err != nil {
		return
	}

	rc.Data = rc.Data[:0]

	words := strings.Split(strings.TrimSpace(string(text)), ",")
	for index, word := range words {
		word = strings.TrimSpace(word)
		if len(word) == 0 && index == len(words)-1 {
			break
		}
		var v64 int64
		v64, err = strconv.ParseInt(word, 10, 64)
		if err != nil {
			err = ErrRomSyntax{Index: index, Text: word}
			return
		}
		rc.Data = append(rc.Data, memory.Value(v64))
	}

	return
}

// Memory builds the initial memory of the image.
func (rc *Rom) Memory(opts ...memory.Option) *memory.Memory {
	return memory.FromSlice(rc.Data, opts...)
}
