package io

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelFull = errors.New(f("channel full"))
)

// ErrRomSyntax reports a cell of a program image that is not a number.
type ErrRomSyntax struct {
	Index int    // Index of the cell in the image.
	Text  string // Offending text.
}

func (err ErrRomSyntax) Error() string {
	return f("cell %d: '%v' is not a number", err.Index, err.Text)
}

// ErrTapeSyntax reports tape input that is not a number.
type ErrTapeSyntax string

func (err ErrTapeSyntax) Error() string {
	return f("tape: '%v' is not a number", string(err))
}
