package wire

import (
	"bytes"
	"io"
	"strconv"
	"strings"
)

// DefaultBufferSize is the read buffer capacity used when the caller does
// not configure one. 1 KiB comfortably holds the header block of every
// response the engine sends.
const DefaultBufferSize = 1024

// boundary separates the header block from the body.
var boundary = []byte("\r\n\r\n")

// Response is a decoded HTTP/1.1 response.
type Response struct {
	// Status is the numeric status code from the status line.
	Status int
	// Body holds the raw body bytes. It may be shorter than ContentLength
	// only for 204 responses, and may be longer if the peer sent more bytes
	// than it declared.
	Body []byte
	// ContentLength is the value of the Content-Length header, or 0 when
	// the header is absent.
	ContentLength int
}

// BodyString returns the body as a string.
func (r *Response) BodyString() string { return string(r.Body) }

// ReadResponse decodes a single response from r. bufSize sets the capacity
// of the read buffer; zero or negative means DefaultBufferSize.
//
// Decoding happens in two phases. The first read must contain the complete
// header block: the bytes are split on the first blank-line boundary, the
// status code is taken from the second field of the status line, and the
// header lines are scanned for a case-sensitive "Content-Length:" substring.
// Whatever followed the boundary in that first read becomes the start of the
// body. The second phase keeps reading until ContentLength body bytes have
// arrived. A 204 response returns immediately after the first phase.
//
// Unparseable framing yields a *FramingError; a connection that ends early
// yields a *TruncatedBodyError. Other read errors are returned as-is.
func ReadResponse(r io.Reader, bufSize int) (*Response, error) {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	buf := make([]byte, bufSize)

	n, err := r.Read(buf)
	if n == 0 {
		if err == nil || err == io.EOF {
			return nil, &FramingError{Reason: "connection closed before status line"}
		}
		return nil, err
	}

	idx := bytes.Index(buf[:n], boundary)
	if idx < 0 {
		return nil, &FramingError{Reason: "no header boundary in first read"}
	}
	head := string(buf[:idx])
	body := append([]byte(nil), buf[idx+len(boundary):n]...)

	lines := strings.Split(head, "\r\n")
	status, err := parseStatusLine(lines[0])
	if err != nil {
		return nil, err
	}

	contentLength := 0
	for _, line := range lines[1:] {
		if !strings.Contains(line, "Content-Length:") {
			continue
		}
		value := strings.TrimSpace(strings.SplitN(line, ":", 2)[1])
		length, err := strconv.Atoi(value)
		if err != nil || length < 0 {
			return nil, &FramingError{Reason: "malformed Content-Length " + strconv.Quote(value)}
		}
		contentLength = length
	}

	resp := &Response{Status: status, Body: body, ContentLength: contentLength}
	if status == 204 {
		// No Content: the engine promises no body regardless of headers.
		return resp, nil
	}

	for len(resp.Body) < contentLength {
		n, err := r.Read(buf)
		if n > 0 {
			resp.Body = append(resp.Body, buf[:n]...)
			continue
		}
		if err == nil {
			err = io.ErrNoProgress
		}
		return nil, &TruncatedBodyError{Got: len(resp.Body), Want: contentLength, Err: err}
	}
	return resp, nil
}

// parseStatusLine extracts the status code from a line of the form
// "HTTP/1.1 200 OK".
func parseStatusLine(line string) (int, error) {
	fields := strings.Split(line, " ")
	if len(fields) < 2 || !strings.HasPrefix(fields[0], "HTTP/") {
		return 0, &FramingError{Reason: "malformed status line " + strconv.Quote(line)}
	}
	status, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, &FramingError{Reason: "malformed status code " + strconv.Quote(fields[1])}
	}
	return status, nil
}
