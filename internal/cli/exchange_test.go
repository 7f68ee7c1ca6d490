package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enginewire/enginewire/wire"
)

func resetExchangeFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		exchangeParams = nil
		exchangeHeaders = nil
	})
}

func TestBuildRequest(t *testing.T) {
	resetExchangeFlags(t)
	exchangeParams = []string{"all=true"}
	exchangeHeaders = []string{"X-Request-Id: 42"}

	req, err := buildRequest(wire.Get, "/containers/json", "")
	require.NoError(t, err)

	assert.Equal(t, wire.Get, req.Method())
	assert.Equal(t, "/containers/json?all=true", req.URL().String())
	assert.Equal(t, wire.Header{"X-Request-Id": "42"}, req.Headers())
	assert.Empty(t, req.Content())
}

func TestBuildRequestPostContent(t *testing.T) {
	resetExchangeFlags(t)

	req, err := buildRequest(wire.Post, "/containers/create", `{"Image":"alpine:3.20"}`)
	require.NoError(t, err)

	rendered := string(req.Render(""))
	assert.Contains(t, rendered, "Content-Type: application/json\r\n")
	assert.True(t, strings.HasSuffix(rendered, `{"Image":"alpine:3.20"}`))
}

func TestBuildRequestRelativePath(t *testing.T) {
	resetExchangeFlags(t)

	_, err := buildRequest(wire.Get, "containers/json", "")
	assert.Error(t, err)
}

func TestBuildRequestBadParam(t *testing.T) {
	resetExchangeFlags(t)
	exchangeParams = []string{"alltrue"}

	_, err := buildRequest(wire.Get, "/containers/json", "")
	assert.ErrorContains(t, err, "--param")
}

func TestBuildRequestBadHeader(t *testing.T) {
	resetExchangeFlags(t)
	exchangeHeaders = []string{"NoColonHere"}

	_, err := buildRequest(wire.Get, "/containers/json", "")
	assert.ErrorContains(t, err, "--header")
}
