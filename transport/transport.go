// Package transport dials a local container engine socket and performs
// one-shot HTTP/1.1 exchanges over it. Every exchange is strictly
// sequential: one fresh connection, one request written in full, one
// Content-Length framed response read back, connection closed. There is no
// keep-alive, no pipelining and no retrying.
package transport

import (
	"context"
	"errors"
	"io"
	"net"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/enginewire/enginewire/wire"
)

// DefaultTimeout bounds both dialing and the read/write phases of a single
// exchange when the caller configures nothing else.
const DefaultTimeout = 30 * time.Second

// Transport performs exchanges against one engine address.
type Transport struct {
	network     string
	address     string
	hostHeader  string
	bufferSize  int
	dialTimeout time.Duration
	ioTimeout   time.Duration
	log         logrus.FieldLogger
}

// New builds a Transport for the given engine address. See ParseAddr for
// the accepted address forms.
func New(addr string, opts ...Option) (*Transport, error) {
	network, address, err := ParseAddr(addr)
	if err != nil {
		return nil, err
	}
	t := &Transport{
		network:     network,
		address:     address,
		hostHeader:  wire.DefaultHost,
		bufferSize:  wire.DefaultBufferSize,
		dialTimeout: DefaultTimeout,
		ioTimeout:   DefaultTimeout,
		log:         discardLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Network returns the dial network, "unix" or "tcp".
func (t *Transport) Network() string { return t.network }

// Addr returns the dial address: a socket path or a host:port.
func (t *Transport) Addr() string { return t.address }

// Do performs a complete exchange: dial, write the rendered request, read
// one framed response, close. The response carries exactly the status and
// body the engine sent; Do never interprets status codes. Dial failures,
// write failures and plain read failures come back as *Error; malformed or
// cut-off responses come back as *wire.FramingError or
// *wire.TruncatedBodyError.
func (t *Transport) Do(ctx context.Context, req *wire.Request) (*wire.Response, error) {
	dialer := net.Dialer{Timeout: t.dialTimeout}
	conn, err := dialer.DialContext(ctx, t.network, t.address)
	if err != nil {
		return nil, &Error{Op: OpDial, Addr: t.address, Err: err}
	}
	defer conn.Close()

	if deadline, ok := t.deadline(ctx); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, &Error{Op: OpDial, Addr: t.address, Err: err}
		}
	}
	return t.exchange(conn, req)
}

// DoConn performs one exchange on a caller-supplied stream. The caller keeps
// ownership: no deadline is applied and the stream is not closed. Useful for
// testing and for callers that manage their own connections.
func (t *Transport) DoConn(conn io.ReadWriter, req *wire.Request) (*wire.Response, error) {
	return t.exchange(conn, req)
}

func (t *Transport) exchange(conn io.ReadWriter, req *wire.Request) (*wire.Response, error) {
	payload := req.Render(t.hostHeader)
	if err := writeFull(conn, payload); err != nil {
		return nil, &Error{Op: OpWrite, Addr: t.address, Err: err}
	}
	t.log.WithFields(logrus.Fields{
		"method": req.Method(),
		"target": req.URL().String(),
		"bytes":  len(payload),
	}).Debug("request written")

	resp, err := wire.ReadResponse(conn, t.bufferSize)
	if err != nil {
		var framing *wire.FramingError
		var truncated *wire.TruncatedBodyError
		if errors.As(err, &framing) || errors.As(err, &truncated) {
			return nil, err
		}
		return nil, &Error{Op: OpRead, Addr: t.address, Err: err}
	}
	t.log.WithFields(logrus.Fields{
		"status": resp.Status,
		"bytes":  len(resp.Body),
	}).Debug("response read")
	return resp, nil
}

// deadline picks the earlier of the context deadline and the configured
// exchange timeout.
func (t *Transport) deadline(ctx context.Context) (time.Time, bool) {
	deadline, ok := ctx.Deadline()
	if t.ioTimeout > 0 {
		if limit := time.Now().Add(t.ioTimeout); !ok || limit.Before(deadline) {
			return limit, true
		}
	}
	return deadline, ok
}

// writeFull writes all of p, retrying short writes until the payload is on
// the wire or the connection errors out.
func writeFull(w io.Writer, p []byte) error {
	for len(p) > 0 {
		n, err := w.Write(p)
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
		p = p[n:]
	}
	return nil
}

func discardLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
