package wire

import (
	"bufio"
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseRendered runs a rendered request back through the standard library
// parser to check it is a well-formed HTTP/1.1 message.
func parseRendered(t *testing.T, raw []byte) *http.Request {
	t.Helper()
	req, err := http.ReadRequest(bufio.NewReader(bytes.NewReader(raw)))
	require.NoError(t, err, "rendered request did not parse:\n%s", raw)
	return req
}

func TestRenderGet(t *testing.T) {
	raw := GetRequest(Path("/containers/json").Parameter("all", "true").Build()).
		Header("X-Request-Id", "42").
		Build().
		Render("")

	s := string(raw)
	assert.True(t, strings.HasPrefix(s, "GET /containers/json?all=true HTTP/1.1\r\n"), "got %q", s)
	assert.True(t, strings.HasSuffix(s, "\r\n\r\n"), "missing terminator: %q", s)
	assert.NotContains(t, s, "Content-Length:")
	assert.NotContains(t, s, "Content-Type:")

	req := parseRendered(t, raw)
	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "/containers/json", req.URL.Path)
	assert.Equal(t, "true", req.URL.Query().Get("all"))
	assert.Equal(t, "42", req.Header.Get("X-Request-Id"))
	assert.Equal(t, DefaultHost, req.Host)
}

func TestRenderPostWithBody(t *testing.T) {
	body := `{"Image":"alpine:3.20","Cmd":["true"]}`
	raw := PostRequest(Path("/containers/create").Build()).
		Content(body).
		Build().
		Render("")

	s := string(raw)
	assert.Equal(t, 1, strings.Count(s, "Content-Length:"))
	assert.Contains(t, s, "Content-Type: application/json\r\n")

	req := parseRendered(t, raw)
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, int64(len(body)), req.ContentLength)
	got, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, body, string(got))
}

func TestRenderPostWithoutBody(t *testing.T) {
	s := string(PostRequest(Path("/containers/abc/start").Build()).Build().Render(""))

	assert.NotContains(t, s, "Content-Length:")
	assert.NotContains(t, s, "Content-Type:")
	assert.True(t, strings.HasSuffix(s, "\r\n\r\n"), "got %q", s)
}

func TestRenderHostHeader(t *testing.T) {
	uri := Path("/_ping").Build()

	deflt := parseRendered(t, GetRequest(uri).Build().Render(""))
	assert.Equal(t, "127.0.0.1", deflt.Host)

	custom := parseRendered(t, GetRequest(uri).Build().Render("engine.internal"))
	assert.Equal(t, "engine.internal", custom.Host)
}

// A body attached to a non-POST request is rendered after the blank line but
// never advertised with framing headers, so the peer will not read it.
func TestRenderContentOnDelete(t *testing.T) {
	s := string(DeleteRequest(Path("/volumes/cache").Build()).
		Content("ignored").
		Build().
		Render(""))

	assert.NotContains(t, s, "Content-Length:")
	assert.True(t, strings.HasSuffix(s, "\r\n\r\nignored"), "got %q", s)
}

func TestRequestBuilderDefaults(t *testing.T) {
	req := NewRequest().URL(Path("/info").Build()).Build()

	assert.Equal(t, Get, req.Method())
	assert.Empty(t, req.Content())
	assert.Empty(t, req.Headers())
}

func TestRequestBuilderReuse(t *testing.T) {
	b := NewRequest().Method(Post).URL(Path("/images/create").Build()).Header("X-Trace", "a")
	first := b.Build()

	b.Header("X-Trace", "b")
	second := b.Build()

	assert.Equal(t, "a", first.Headers()["X-Trace"])
	assert.Equal(t, "b", second.Headers()["X-Trace"])
}
