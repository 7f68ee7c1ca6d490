package transport

import "fmt"

// Op names the phase of an exchange.
type Op string

const (
	OpDial  Op = "dial"
	OpWrite Op = "write"
	OpRead  Op = "read"
)

// Error records the failing phase of an exchange together with the engine
// address, in the spirit of net.OpError. Framing and truncation errors from
// the wire package pass through untouched; everything else an exchange can
// fail with arrives wrapped in one of these.
type Error struct {
	Op   Op
	Addr string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("transport: %s %s: %v", e.Op, e.Addr, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
