package io

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/ezrec/intcode/memory"
)

// Tape provides sequential I/O of values over byte streams.
// It wraps an io.Reader for input and an io.Writer for output.
//
// In decimal mode input values are separated by commas or whitespace, and
// each output value is written as a decimal line. In ASCII mode every input
// byte is a value, and output values 0 to 127 are written as bytes while any
// other value is written as a decimal line.
type Tape struct {
	Input  io.Reader
	Output io.Writer
	Ascii  bool

	reader *bufio.Reader
	err    error
}

var _ Channel = (*Tape)(nil)

// Rewind is not possible on a tape.
func (tc *Tape) Rewind() {
}

// Err returns the first malformed input seen, if any.
func (tc *Tape) Err() error {
	return tc.err
}

func isSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// token reads the next separated word of the input.
func (tc *Tape) token() (word string, err error) {
	var text []byte
	for {
		var r rune
		r, _, err = tc.reader.ReadRune()
		if err != nil {
			if err == io.EOF && len(text) != 0 {
				err = nil
				break
			}
			return
		}
		if isSeparator(r) {
			if len(text) == 0 {
				continue
			}
			break
		}
		text = utf8.AppendRune(text, r)
	}

	word = string(text)
	return
}

// Receive returns an iterator that yields values from the input stream,
// reading as needed. Malformed input ends the stream.
func (tc *Tape) Receive() iter.Seq[memory.Value] {
	return func(yield func(value memory.Value) bool) {
		if tc.Input == nil || tc.err != nil {
			return
		}
		if tc.reader == nil {
			tc.reader = bufio.NewReader(tc.Input)
		}

		for {
			var value memory.Value
			if tc.Ascii {
				b, err := tc.reader.ReadByte()
				if err != nil {
					return
				}
				value = memory.Value(b)
			} else {
				word, err := tc.token()
				if err != nil {
					return
				}
				v64, err := strconv.ParseInt(word, 10, 64)
				if err != nil {
					tc.err = ErrTapeSyntax(word)
					return
				}
				value = memory.Value(v64)
			}
			if !yield(value) {
				return
			}
		}
	}
}

// Send writes a value to the output stream.
func (tc *Tape) Send(value memory.Value) (err error) {
	if tc.Output == nil {
		err = ErrChannelFull
		return
	}

	if tc.Ascii && value >= 0 && value <= 127 {
		_, err = tc.Output.Write([]byte{byte(value)})
		return
	}

	_, err = fmt.Fprintf(tc.Output, "%d\n", value)
	return
}
