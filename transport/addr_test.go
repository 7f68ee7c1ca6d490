package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddr(t *testing.T) {
	tests := []struct {
		name        string
		addr        string
		wantNetwork string
		wantAddress string
	}{
		{"empty means default", "", "unix", "/var/run/docker.sock"},
		{"unix scheme", "unix:///run/engine.sock", "unix", "/run/engine.sock"},
		{"bare path", "/var/run/docker.sock", "unix", "/var/run/docker.sock"},
		{"tcp scheme", "tcp://127.0.0.1:2375", "tcp", "127.0.0.1:2375"},
		{"tcp hostname", "tcp://engine.internal:2375", "tcp", "engine.internal:2375"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			network, address, err := ParseAddr(tt.addr)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNetwork, network)
			assert.Equal(t, tt.wantAddress, address)
		})
	}
}

func TestParseAddrInvalid(t *testing.T) {
	tests := []struct {
		name string
		addr string
	}{
		{"unknown scheme", "http://127.0.0.1:2375"},
		{"relative path", "run/engine.sock"},
		{"empty unix path", "unix://"},
		{"tcp without port", "tcp://127.0.0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseAddr(tt.addr)
			assert.Error(t, err)
		})
	}
}
