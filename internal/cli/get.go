// internal/cli/get.go
package cli

import (
	"github.com/spf13/cobra"

	"github.com/enginewire/enginewire/wire"
)

var getCmd = &cobra.Command{
	Use:   "get PATH",
	Short: "Send a GET request to the engine",
	Long: `Send a GET request to the given engine API path and print the raw
response. Query parameters are attached with --param and percent-encoded.`,
	Example: `  enginewire get /_ping
  enginewire get /containers/json --param all=true --param limit=5
  enginewire get /images/json --body-only | jq '.[].Id'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExchange(wire.Get, args[0], "")
	},
}

func init() {
	addExchangeFlags(getCmd)
}
