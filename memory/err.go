package memory

import (
	"github.com/ezrec/intcode/translate"
)

var f = translate.From

// ErrEmptyRead is returned by a strict Memory when reading an address that
// was never written.
type ErrEmptyRead Address

func (err ErrEmptyRead) Error() string {
	return f("empty read at %v", uint64(err))
}

// Is matches any ErrEmptyRead, regardless of address.
func (err ErrEmptyRead) Is(target error) (ok bool) {
	_, ok = target.(ErrEmptyRead)
	return
}

// ErrAddressRange is returned when a Value cannot be used as an Address.
type ErrAddressRange Value

func (err ErrAddressRange) Error() string {
	return f("value %v is not an address", int64(err))
}

// Is matches any ErrAddressRange, regardless of value.
func (err ErrAddressRange) Is(target error) (ok bool) {
	_, ok = target.(ErrAddressRange)
	return
}
