// internal/cli/exchange.go
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/enginewire/enginewire/internal/config"
	"github.com/enginewire/enginewire/transport"
	"github.com/enginewire/enginewire/wire"
)

var (
	exchangeParams  []string
	exchangeHeaders []string
	showRequest     bool
	bodyOnly        bool
)

// addExchangeFlags registers the flags shared by get, post and delete.
func addExchangeFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&exchangeParams, "param", "q", nil, "Query parameter key=value (repeatable)")
	cmd.Flags().StringArrayVar(&exchangeHeaders, "header", nil, "Extra header 'Name: value' (repeatable)")
	cmd.Flags().BoolVar(&showRequest, "show-request", false, "Print the rendered request to stderr before sending")
	cmd.Flags().BoolVar(&bodyOnly, "body-only", false, "Print only the response body")
}

// buildRequest assembles the request from the path argument and flags.
func buildRequest(method wire.Method, path, content string) (*wire.Request, error) {
	if !strings.HasPrefix(path, "/") {
		return nil, fmt.Errorf("path must be absolute, e.g. /containers/json")
	}

	uriBuilder := wire.Path(path)
	for _, p := range exchangeParams {
		key, value, err := splitKeyValue(p, "=")
		if err != nil {
			return nil, fmt.Errorf("invalid --param %q: %w", p, err)
		}
		uriBuilder.Parameter(key, value)
	}

	builder := wire.NewRequest().Method(method).URL(uriBuilder.Build())
	for _, h := range exchangeHeaders {
		key, value, err := splitKeyValue(h, ":")
		if err != nil {
			return nil, fmt.Errorf("invalid --header %q: %w", h, err)
		}
		builder.Header(key, strings.TrimSpace(value))
	}
	if content != "" {
		builder.Content(content)
	}
	return builder.Build(), nil
}

// runExchange performs one request/response exchange and prints the result.
func runExchange(method wire.Method, path, content string) error {
	cfg := config.Get()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	req, err := buildRequest(method, path, content)
	if err != nil {
		return err
	}
	if showRequest {
		os.Stderr.Write(req.Render(cfg.HostHeader))
		fmt.Fprintln(os.Stderr)
	}

	tr, err := transport.New(cfg.Host,
		transport.WithHostHeader(cfg.HostHeader),
		transport.WithBufferSize(cfg.BufferSize),
		transport.WithTimeout(cfg.Timeout),
		transport.WithDialTimeout(cfg.DialTimeout),
		transport.WithLogger(newLogger()),
	)
	if err != nil {
		return err
	}

	var s *spinner.Spinner
	if !bodyOnly && !verbose {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		s.Suffix = fmt.Sprintf(" %s %s", method, path)
		s.Start()
	}
	resp, err := tr.Do(context.Background(), req)
	if s != nil {
		s.Stop()
	}
	if err != nil {
		return describeExchangeError(err)
	}

	printResponse(resp)
	return nil
}

// describeExchangeError turns typed transport failures into actionable
// messages; anything unexpected passes through.
func describeExchangeError(err error) error {
	var terr *transport.Error
	var framing *wire.FramingError
	var truncated *wire.TruncatedBodyError
	switch {
	case errors.As(err, &terr) && terr.Op == transport.OpDial:
		return fmt.Errorf("cannot connect to the engine: %v (run 'enginewire doctor')", terr.Err)
	case errors.As(err, &framing):
		return fmt.Errorf("%v (is the engine speaking TLS on this address?)", err)
	case errors.As(err, &truncated):
		return fmt.Errorf("%v (engine hung up mid-response, check its logs)", err)
	default:
		return err
	}
}

// printResponse writes metadata to stderr and the raw body to stdout.
func printResponse(resp *wire.Response) {
	if !bodyOnly {
		status := fmt.Sprintf("HTTP/1.1 %d", resp.Status)
		fmt.Fprintf(os.Stderr, "%s  %s\n", statusColor(resp.Status)(status), formatBytes(int64(len(resp.Body))))
	}
	if len(resp.Body) > 0 {
		os.Stdout.Write(resp.Body)
		if resp.Body[len(resp.Body)-1] != '\n' {
			fmt.Println()
		}
	}
}
