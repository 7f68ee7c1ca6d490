package transport

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Option customises a Transport.
type Option func(*Transport)

// WithHostHeader sets the Host header value rendered into every request.
// The engine ignores it on Unix sockets, but a TCP peer behind a proxy may
// route on it.
func WithHostHeader(host string) Option {
	return func(t *Transport) {
		if host != "" {
			t.hostHeader = host
		}
	}
}

// WithBufferSize sets the read buffer capacity. The whole response header
// block must fit into the first read, so raise this when talking to peers
// with unusually large headers.
func WithBufferSize(size int) Option {
	return func(t *Transport) {
		if size > 0 {
			t.bufferSize = size
		}
	}
}

// WithDialTimeout bounds connection establishment. Zero disables the bound.
func WithDialTimeout(d time.Duration) Option {
	return func(t *Transport) {
		t.dialTimeout = d
	}
}

// WithTimeout bounds the write-and-read phase of each exchange. Zero
// disables the bound; the context passed to Do still applies either way.
func WithTimeout(d time.Duration) Option {
	return func(t *Transport) {
		t.ioTimeout = d
	}
}

// WithLogger routes debug logging for each exchange to log. The default
// discards everything.
func WithLogger(log logrus.FieldLogger) Option {
	return func(t *Transport) {
		if log != nil {
			t.log = log
		}
	}
}
