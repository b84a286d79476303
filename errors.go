package rxport

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a payload-carrying publish is given a nil payload.
	ErrInvalidArgument = errors.New("rxport: invalid argument")

	// ErrPrecondition is carried by the panic raised on programmer errors:
	// opening an open port, opening an invalid port, or subscribing before
	// the bus has a lifetime.
	ErrPrecondition = errors.New("rxport: precondition violated")

	// ErrUnavailable is the precondition failure raised when a stream is
	// requested from a bus that has no teardown signal attached.
	ErrUnavailable = fmt.Errorf("%w: teardown signal unavailable", ErrPrecondition)
)

// violate panics with an error wrapping ErrPrecondition.
// Precondition failures are bugs in the caller and are never recovered here.
func violate(format string, args ...any) {
	panic(fmt.Errorf("%w: "+format, append([]any{ErrPrecondition}, args...)...))
}
