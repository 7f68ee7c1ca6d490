package wire

import "fmt"

// FramingError reports bytes that could not be parsed as a Content-Length
// framed HTTP/1.1 response: a missing blank-line boundary in the first read,
// an unparseable status line, or a malformed Content-Length value.
type FramingError struct {
	Reason string
}

func (e *FramingError) Error() string {
	return "wire: invalid response framing: " + e.Reason
}

// TruncatedBodyError reports a connection that ended before the number of
// body bytes promised by Content-Length arrived.
type TruncatedBodyError struct {
	Got  int
	Want int
	Err  error
}

func (e *TruncatedBodyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("wire: body truncated after %d of %d bytes: %v", e.Got, e.Want, e.Err)
	}
	return fmt.Sprintf("wire: body truncated after %d of %d bytes", e.Got, e.Want)
}

func (e *TruncatedBodyError) Unwrap() error { return e.Err }
