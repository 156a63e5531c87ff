package trace

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrRecorderClosed = errors.New(f("trace recorder closed"))
)

// ErrTraceExists refuses to overwrite an existing trace database.
type ErrTraceExists string

func (err ErrTraceExists) Error() string {
	return f("trace file %v already exists", string(err))
}
