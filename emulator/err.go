package emulator

import (
	"errors"

	"github.com/ezrec/intcode/memory"
	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrStepLimit      = errors.New(f("step limit reached"))
	ErrInputExhausted = errors.New(f("input exhausted"))
	ErrNetworkSilent  = errors.New(f("network produced no output"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Ip     memory.Address
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("ip %04d %v", err.Ip, err.Err)
	}
	return f("line %d ip %04d %v", err.LineNo, err.Ip, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
