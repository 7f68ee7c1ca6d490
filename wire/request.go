package wire

import (
	"fmt"
	"strings"
)

// Method is an HTTP request method. The engine socket protocol only ever
// needs the three below.
type Method string

const (
	Get    Method = "GET"
	Post   Method = "POST"
	Delete Method = "DELETE"
)

// DefaultHost is the Host header value used when the caller does not
// configure one. The engine ignores it for Unix sockets but HTTP/1.1
// requires the header to be present.
const DefaultHost = "127.0.0.1"

// Request is an immutable HTTP/1.1 request ready to be rendered onto a
// connection. Build one with NewRequest or the GetRequest, PostRequest and
// DeleteRequest shortcuts.
type Request struct {
	method  Method
	uri     URI
	headers Header
	content string
}

// RequestBuilder accumulates the parts of a Request.
type RequestBuilder struct {
	method  Method
	uri     URI
	headers Header
	content string
}

// NewRequest starts a request builder. The method defaults to GET.
func NewRequest() *RequestBuilder {
	return &RequestBuilder{method: Get, headers: make(Header)}
}

// GetRequest starts a builder for a GET request to the given URI.
func GetRequest(uri URI) *RequestBuilder {
	return NewRequest().Method(Get).URL(uri)
}

// PostRequest starts a builder for a POST request to the given URI.
func PostRequest(uri URI) *RequestBuilder {
	return NewRequest().Method(Post).URL(uri)
}

// DeleteRequest starts a builder for a DELETE request to the given URI.
func DeleteRequest(uri URI) *RequestBuilder {
	return NewRequest().Method(Delete).URL(uri)
}

// Method sets the request method.
func (b *RequestBuilder) Method(m Method) *RequestBuilder {
	b.method = m
	return b
}

// URL sets the request target.
func (b *RequestBuilder) URL(uri URI) *RequestBuilder {
	b.uri = uri
	return b
}

// Header sets a header. Setting the same key twice keeps the last value.
// Header names are emitted exactly as given; the engine matches them
// case-sensitively on some code paths, so use canonical spelling.
func (b *RequestBuilder) Header(key, value string) *RequestBuilder {
	b.headers[key] = value
	return b
}

// Content sets the request body. Only POST requests advertise the body with
// Content-Length and Content-Type headers; do not attach content to GET or
// DELETE requests.
func (b *RequestBuilder) Content(content string) *RequestBuilder {
	b.content = content
	return b
}

// Build returns the finished request. The builder can keep being used
// afterwards without affecting already built requests.
func (b *RequestBuilder) Build() *Request {
	return &Request{method: b.method, uri: b.uri, headers: b.headers.clone(), content: b.content}
}

// Method returns the request method.
func (r *Request) Method() Method { return r.method }

// URL returns the request target.
func (r *Request) URL() URI { return r.uri }

// Headers returns a copy of the custom headers. Host, Content-Length and
// Content-Type are added at render time and are not included.
func (r *Request) Headers() Header {
	return r.headers.clone()
}

// Content returns the request body.
func (r *Request) Content() string { return r.content }

// Render serialises the request as a complete HTTP/1.1 message. An empty
// host falls back to DefaultHost. Custom headers are emitted in map
// iteration order, then Host, then for a POST with a non-empty body a
// Content-Length and a Content-Type of application/json. The body follows
// the blank line for every method, but only POST advertises its length, so
// a body on GET or DELETE is ignored by the peer.
func (r *Request) Render(host string) []byte {
	if host == "" {
		host = DefaultHost
	}
	var sb strings.Builder
	sb.WriteString(string(r.method))
	sb.WriteByte(' ')
	sb.WriteString(r.uri.String())
	sb.WriteString(" HTTP/1.1\r\n")
	for k, v := range r.headers {
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(v)
		sb.WriteString("\r\n")
	}
	sb.WriteString("Host: ")
	sb.WriteString(host)
	sb.WriteString("\r\n")
	if r.method == Post && len(r.content) > 0 {
		fmt.Fprintf(&sb, "Content-Length: %d\r\n", len(r.content))
		sb.WriteString("Content-Type: application/json\r\n")
	}
	sb.WriteString("\r\n")
	sb.WriteString(r.content)
	return []byte(sb.String())
}

// String renders the request with the default host. Useful for debugging.
func (r *Request) String() string {
	return string(r.Render(""))
}
