// internal/diagnostics/doctor.go
package diagnostics

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/enginewire/enginewire/internal/config"
	"github.com/enginewire/enginewire/transport"
	"github.com/enginewire/enginewire/wire"
)

// Doctor performs engine connectivity diagnostics
type Doctor struct {
	config  *config.Config
	results []DiagnosticResult
}

// DiagnosticResult represents a diagnostic check result
type DiagnosticResult struct {
	Check    string                 `json:"check"`
	Status   CheckStatus            `json:"status"`
	Message  string                 `json:"message"`
	Solution string                 `json:"solution,omitempty"`
	Details  map[string]interface{} `json:"details,omitempty"`
}

// CheckStatus represents the status of a diagnostic check
type CheckStatus string

const (
	CheckStatusOK      CheckStatus = "ok"
	CheckStatusWarning CheckStatus = "warning"
	CheckStatusError   CheckStatus = "error"
	CheckStatusSkipped CheckStatus = "skipped"
)

// daemonNames are the engine processes worth reporting on.
var daemonNames = []string{"dockerd", "containerd", "podman"}

// NewDoctor creates a new diagnostic doctor
func NewDoctor(cfg *config.Config) *Doctor {
	return &Doctor{
		config:  cfg,
		results: []DiagnosticResult{},
	}
}

// RunDiagnostics runs all diagnostic checks
func (d *Doctor) RunDiagnostics() error {
	checks := []struct {
		name string
		fn   func() DiagnosticResult
	}{
		{"Configuration", d.checkConfiguration},
		{"Engine Socket", d.checkSocket},
		{"Engine Reachability", d.checkReachability},
		{"Engine Exchange", d.checkExchange},
		{"Engine Process", d.checkProcess},
		{"System Resources", d.checkResources},
	}

	for _, check := range checks {
		result := check.fn()
		result.Check = check.name
		d.results = append(d.results, result)
	}

	return nil
}

// GetResults returns diagnostic results
func (d *Doctor) GetResults() []DiagnosticResult {
	return d.results
}

// HasIssues returns true if any issues were found
func (d *Doctor) HasIssues() bool {
	for _, result := range d.results {
		if result.Status == CheckStatusError || result.Status == CheckStatusWarning {
			return true
		}
	}
	return false
}

// checkConfiguration validates the effective configuration
func (d *Doctor) checkConfiguration() DiagnosticResult {
	if d.config == nil {
		return DiagnosticResult{
			Status:   CheckStatusError,
			Message:  "No configuration loaded",
			Solution: "Run 'enginewire config generate' to create a config file",
		}
	}

	if err := d.config.Validate(); err != nil {
		return DiagnosticResult{
			Status:  CheckStatusError,
			Message: "Configuration is invalid",
			Solution: "Fix the reported setting in enginewire.yaml or the matching\n" +
				"ENGINEWIRE_* environment variable",
			Details: map[string]interface{}{
				"error": err.Error(),
			},
		}
	}

	return DiagnosticResult{
		Status:  CheckStatusOK,
		Message: fmt.Sprintf("Configuration is valid (host %s)", d.config.Host),
		Details: map[string]interface{}{
			"host":        d.config.Host,
			"host_header": d.config.HostHeader,
			"buffer_size": d.config.BufferSize,
			"timeout":     d.config.Timeout.String(),
		},
	}
}

// checkSocket inspects the socket file for Unix addresses
func (d *Doctor) checkSocket() DiagnosticResult {
	network, address, err := transport.ParseAddr(d.config.Host)
	if err != nil {
		return DiagnosticResult{
			Status:  CheckStatusSkipped,
			Message: "Address did not parse, see the configuration check",
		}
	}
	if network != "unix" {
		return DiagnosticResult{
			Status:  CheckStatusSkipped,
			Message: fmt.Sprintf("Not a Unix socket (%s address)", network),
		}
	}

	info, err := os.Stat(address)
	if err != nil {
		return DiagnosticResult{
			Status:  CheckStatusError,
			Message: fmt.Sprintf("Socket %s does not exist", address),
			Solution: "Start the engine daemon:\n" +
				"  - Linux: sudo systemctl start docker\n" +
				"or point ENGINEWIRE_HOST / DOCKER_HOST at the right socket",
			Details: map[string]interface{}{
				"error": err.Error(),
			},
		}
	}
	if info.Mode()&os.ModeSocket == 0 {
		return DiagnosticResult{
			Status:   CheckStatusError,
			Message:  fmt.Sprintf("%s exists but is not a socket", address),
			Solution: "Remove the stale file and restart the engine daemon",
			Details: map[string]interface{}{
				"mode": info.Mode().String(),
			},
		}
	}

	return DiagnosticResult{
		Status:  CheckStatusOK,
		Message: fmt.Sprintf("Socket %s exists", address),
		Details: map[string]interface{}{
			"mode": info.Mode().String(),
		},
	}
}

// checkReachability dials the configured address
func (d *Doctor) checkReachability() DiagnosticResult {
	network, address, err := transport.ParseAddr(d.config.Host)
	if err != nil {
		return DiagnosticResult{
			Status:  CheckStatusSkipped,
			Message: "Address did not parse, see the configuration check",
		}
	}

	start := time.Now()
	conn, err := net.DialTimeout(network, address, 5*time.Second)
	if err != nil {
		return DiagnosticResult{
			Status:  CheckStatusError,
			Message: fmt.Sprintf("Cannot connect to %s", d.config.Host),
			Solution: "Check that the engine daemon is running and that your user\n" +
				"may access the socket (on Linux: membership in the docker group)",
			Details: map[string]interface{}{
				"error": err.Error(),
			},
		}
	}
	conn.Close()

	return DiagnosticResult{
		Status:  CheckStatusOK,
		Message: fmt.Sprintf("Connected to %s in %s", d.config.Host, time.Since(start).Round(time.Millisecond)),
	}
}

// checkExchange performs a complete ping exchange through the client stack
func (d *Doctor) checkExchange() DiagnosticResult {
	tr, err := transport.New(d.config.Host,
		transport.WithHostHeader(d.config.HostHeader),
		transport.WithBufferSize(d.config.BufferSize),
		transport.WithTimeout(5*time.Second),
		transport.WithDialTimeout(5*time.Second),
	)
	if err != nil {
		return DiagnosticResult{
			Status:  CheckStatusSkipped,
			Message: "Address did not parse, see the configuration check",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	resp, err := tr.Do(ctx, wire.GetRequest(wire.Path("/_ping").Build()).Build())
	if err != nil {
		result := DiagnosticResult{
			Status:  CheckStatusError,
			Message: "Exchange with the engine failed",
			Details: map[string]interface{}{
				"error": err.Error(),
			},
		}
		switch err.(type) {
		case *wire.FramingError:
			result.Message = "Peer did not answer with plain HTTP/1.1"
			result.Solution = "The engine may require TLS on this address; this client only\n" +
				"speaks plaintext. Expose a local socket or plain TCP listener."
		case *wire.TruncatedBodyError:
			result.Message = "Engine closed the connection mid-response"
			result.Solution = "Check the engine daemon logs for crashes or restarts"
		default:
			result.Solution = "See the reachability check above"
		}
		return result
	}

	if resp.Status < 200 || resp.Status > 299 {
		return DiagnosticResult{
			Status:   CheckStatusWarning,
			Message:  fmt.Sprintf("Engine answered ping with status %d", resp.Status),
			Solution: "The socket is reachable but the engine is unhappy; check its logs",
			Details: map[string]interface{}{
				"status": resp.Status,
				"body":   resp.BodyString(),
			},
		}
	}

	return DiagnosticResult{
		Status:  CheckStatusOK,
		Message: fmt.Sprintf("Ping answered %d in %s", resp.Status, time.Since(start).Round(time.Millisecond)),
		Details: map[string]interface{}{
			"status": resp.Status,
			"body":   resp.BodyString(),
		},
	}
}

// checkProcess looks for a running engine daemon
func (d *Doctor) checkProcess() DiagnosticResult {
	procs, err := process.Processes()
	if err != nil {
		return DiagnosticResult{
			Status:  CheckStatusSkipped,
			Message: "Could not list processes",
			Details: map[string]interface{}{
				"error": err.Error(),
			},
		}
	}

	running := []string{}
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		for _, daemon := range daemonNames {
			if name == daemon {
				running = append(running, name)
			}
		}
	}

	if len(running) == 0 {
		return DiagnosticResult{
			Status:  CheckStatusWarning,
			Message: "No engine daemon process found",
			Solution: "If the engine runs inside a VM or another namespace this is\n" +
				"expected; otherwise start it with: sudo systemctl start docker",
		}
	}

	return DiagnosticResult{
		Status:  CheckStatusOK,
		Message: fmt.Sprintf("Engine daemon running: %v", running),
		Details: map[string]interface{}{
			"processes": running,
		},
	}
}

// checkResources reports memory pressure that could stall local daemons
func (d *Doctor) checkResources() DiagnosticResult {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return DiagnosticResult{
			Status:  CheckStatusSkipped,
			Message: "Could not read memory info",
			Details: map[string]interface{}{
				"error": err.Error(),
			},
		}
	}

	availableMB := float64(vm.Available) / (1024 * 1024)
	if availableMB < 128 {
		return DiagnosticResult{
			Status:   CheckStatusWarning,
			Message:  fmt.Sprintf("System is low on memory: %.0fMB available", availableMB),
			Solution: "A starved engine daemon answers slowly or not at all; free up memory",
			Details: map[string]interface{}{
				"available_mb": availableMB,
				"used_percent": vm.UsedPercent,
			},
		}
	}

	return DiagnosticResult{
		Status:  CheckStatusOK,
		Message: fmt.Sprintf("Memory: %.1fGB available (%.1f%% used)", availableMB/1024, vm.UsedPercent),
		Details: map[string]interface{}{
			"available_mb": availableMB,
			"used_percent": vm.UsedPercent,
		},
	}
}
