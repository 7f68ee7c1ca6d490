package wire

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkReader returns one scripted chunk per Read call, then io.EOF. It
// stands in for a socket that delivers a response in several pieces.
type chunkReader struct {
	chunks []string
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(c.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, c.chunks[0])
	if n == len(c.chunks[0]) {
		c.chunks = c.chunks[1:]
	} else {
		c.chunks[0] = c.chunks[0][n:]
	}
	return n, nil
}

// stuckReader models a peer that stays connected but never sends anything.
type stuckReader struct{}

func (stuckReader) Read([]byte) (int, error) { return 0, nil }

func TestReadResponseSingleRead(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\nContent-Type: application/json\r\nContent-Length: 2\r\n\r\n[]"

	resp, err := ReadResponse(strings.NewReader(raw), 0)
	require.NoError(t, err)

	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, 2, resp.ContentLength)
	assert.Equal(t, "[]", resp.BodyString())
}

func TestReadResponseBodyAcrossReads(t *testing.T) {
	r := &chunkReader{chunks: []string{
		"HTTP/1.1 200 OK\r\nContent-Length: 11\r\n\r\nhel",
		"lo ",
		"world",
	}}

	resp, err := ReadResponse(r, 0)
	require.NoError(t, err)

	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, "hello world", resp.BodyString())
}

func TestReadResponseNoContent(t *testing.T) {
	// 204 short-circuits before the body phase even when the peer declared
	// a length, so a stalled peer cannot hang the decoder here.
	r := io.MultiReader(
		strings.NewReader("HTTP/1.1 204 No Content\r\nContent-Length: 11\r\n\r\n"),
		stuckReader{},
	)

	resp, err := ReadResponse(r, 0)
	require.NoError(t, err)

	assert.Equal(t, 204, resp.Status)
	assert.Equal(t, 11, resp.ContentLength)
	assert.Empty(t, resp.Body)
}

func TestReadResponseMissingContentLength(t *testing.T) {
	resp, err := ReadResponse(strings.NewReader("HTTP/1.1 404 Not Found\r\n\r\n"), 0)
	require.NoError(t, err)

	assert.Equal(t, 404, resp.Status)
	assert.Equal(t, 0, resp.ContentLength)
	assert.Empty(t, resp.Body)
}

// The header scan is byte-exact: a lowercase content-length is not
// recognised and the declared length stays zero.
func TestReadResponseHeaderScanIsCaseSensitive(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\ncontent-length: 5\r\n\r\nhello"

	resp, err := ReadResponse(strings.NewReader(raw), 0)
	require.NoError(t, err)

	assert.Equal(t, 0, resp.ContentLength)
	assert.Equal(t, "hello", resp.BodyString())
}

// Extra bytes beyond the declared length are kept rather than trimmed.
func TestReadResponseBodyLongerThanDeclared(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\nContent-Length: 2\r\n\r\nhello"

	resp, err := ReadResponse(strings.NewReader(raw), 0)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.ContentLength)
	assert.Equal(t, "hello", resp.BodyString())
}

func TestReadResponseFraming(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"not http", "SSH-2.0-OpenSSH_9.6"},
		{"no boundary", "HTTP/1.1 200 OK\r\nContent-Length: 2\r\n"},
		{"bad protocol", "ICMP 200 OK\r\n\r\n"},
		{"missing code", "HTTP/1.1\r\n\r\n"},
		{"garbled code", "HTTP/1.1 OK 200\r\n\r\n"},
		{"garbled length", "HTTP/1.1 200 OK\r\nContent-Length: ten\r\n\r\n"},
		{"negative length", "HTTP/1.1 200 OK\r\nContent-Length: -4\r\n\r\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadResponse(strings.NewReader(tt.raw), 0)

			var framing *FramingError
			require.ErrorAs(t, err, &framing, "want framing error, got %v", err)
		})
	}
}

// The whole header block has to arrive in the first read. With a buffer
// smaller than the header block the boundary is never seen.
func TestReadResponseBufferTooSmall(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\nContent-Type: application/json\r\nContent-Length: 2\r\n\r\n[]"

	var framing *FramingError
	_, err := ReadResponse(strings.NewReader(raw), 16)
	require.ErrorAs(t, err, &framing)

	resp, err := ReadResponse(strings.NewReader(raw), len(raw))
	require.NoError(t, err)
	assert.Equal(t, "[]", resp.BodyString())
}

func TestReadResponseTruncatedBody(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\nContent-Length: 10\r\n\r\nhi"

	_, err := ReadResponse(bytes.NewReader([]byte(raw)), 0)

	var truncated *TruncatedBodyError
	require.ErrorAs(t, err, &truncated)
	assert.Equal(t, 2, truncated.Got)
	assert.Equal(t, 10, truncated.Want)
	assert.True(t, errors.Is(err, io.EOF))
}

func TestReadResponseStalledBody(t *testing.T) {
	r := io.MultiReader(
		strings.NewReader("HTTP/1.1 200 OK\r\nContent-Length: 4\r\n\r\n"),
		stuckReader{},
	)

	_, err := ReadResponse(r, 0)

	var truncated *TruncatedBodyError
	require.ErrorAs(t, err, &truncated)
	assert.True(t, errors.Is(err, io.ErrNoProgress))
}
