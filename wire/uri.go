// Package wire renders and parses the raw HTTP/1.1 messages exchanged with a
// local container engine socket. It deliberately implements only the subset
// of the protocol the engine speaks on its control socket: Content-Length
// framed messages over a dedicated connection, no chunked encoding, no TLS.
package wire

import (
	"net/url"
	"strings"
)

// URI is an immutable request target: an absolute path plus an optional set
// of query parameters. Build one with Path and Parameter.
type URI struct {
	path   string
	params Header
}

// URIBuilder accumulates a path and query parameters for a URI.
type URIBuilder struct {
	path   string
	params Header
}

// Path starts a URI builder for the given absolute path, e.g. "/containers/json".
func Path(path string) *URIBuilder {
	return &URIBuilder{path: path, params: make(Header)}
}

// Parameter adds a query parameter. Setting a key twice keeps the last value.
func (b *URIBuilder) Parameter(key, value string) *URIBuilder {
	b.params[key] = value
	return b
}

// Build returns the finished URI. The builder can keep being used afterwards
// without affecting already built values.
func (b *URIBuilder) Build() URI {
	return URI{path: b.path, params: b.params.clone()}
}

// Path returns the path component.
func (u URI) Path() string { return u.path }

// Parameters returns a copy of the query parameters.
func (u URI) Parameters() Header {
	return u.params.clone()
}

// String renders the URI as a request target. Query keys and values are
// percent-encoded; a URI without parameters renders as the bare path. The
// order of parameters follows map iteration order and is not stable.
func (u URI) String() string {
	if len(u.params) == 0 {
		return u.path
	}
	var sb strings.Builder
	sb.WriteString(u.path)
	sb.WriteByte('?')
	first := true
	for k, v := range u.params {
		if !first {
			sb.WriteByte('&')
		}
		first = false
		sb.WriteString(url.QueryEscape(k))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(v))
	}
	return sb.String()
}
