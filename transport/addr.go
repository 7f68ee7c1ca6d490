package transport

import (
	"fmt"
	"net"
	"strings"
)

// DefaultAddr is the engine control socket dialed when no address is
// configured.
const DefaultAddr = "unix:///var/run/docker.sock"

// ParseAddr splits an engine address into the network and address arguments
// expected by net.Dial. Accepted forms are unix:///path/to.sock,
// tcp://host:port and a bare absolute path, which is treated as a Unix
// socket. An empty address means DefaultAddr.
func ParseAddr(addr string) (network, address string, err error) {
	if addr == "" {
		addr = DefaultAddr
	}
	switch {
	case strings.HasPrefix(addr, "unix://"):
		path := strings.TrimPrefix(addr, "unix://")
		if path == "" {
			return "", "", fmt.Errorf("invalid address %q: empty socket path", addr)
		}
		return "unix", path, nil
	case strings.HasPrefix(addr, "tcp://"):
		hostport := strings.TrimPrefix(addr, "tcp://")
		if _, _, err := net.SplitHostPort(hostport); err != nil {
			return "", "", fmt.Errorf("invalid address %q: %w", addr, err)
		}
		return "tcp", hostport, nil
	case strings.HasPrefix(addr, "/"):
		return "unix", addr, nil
	default:
		return "", "", fmt.Errorf("invalid address %q: expected unix://, tcp:// or an absolute path", addr)
	}
}
