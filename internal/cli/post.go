// internal/cli/post.go
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/enginewire/enginewire/wire"
)

var (
	postData     string
	postDataFile string
)

var postCmd = &cobra.Command{
	Use:   "post PATH",
	Short: "Send a POST request to the engine",
	Long: `Send a POST request to the given engine API path. A non-empty body is
framed with Content-Length and sent as application/json; the engine expects
JSON on every POST endpoint. Read the body from --data, from a file with
--data-file, or from stdin with --data-file -.`,
	Example: `  enginewire post /containers/worker/start
  enginewire post /containers/create --param name=worker --data '{"Image":"alpine:3.20"}'
  cat spec.json | enginewire post /containers/create --data-file -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := resolvePostContent()
		if err != nil {
			return err
		}
		return runExchange(wire.Post, args[0], content)
	},
}

func init() {
	addExchangeFlags(postCmd)
	postCmd.Flags().StringVarP(&postData, "data", "d", "", "Request body")
	postCmd.Flags().StringVar(&postDataFile, "data-file", "", "Read request body from file, - for stdin")
}

func resolvePostContent() (string, error) {
	if postData != "" && postDataFile != "" {
		return "", fmt.Errorf("--data and --data-file are mutually exclusive")
	}
	if postDataFile == "" {
		return postData, nil
	}
	if postDataFile == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(postDataFile)
	if err != nil {
		return "", fmt.Errorf("failed to read body file: %w", err)
	}
	return string(data), nil
}
