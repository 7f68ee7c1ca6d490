// internal/cli/delete.go
package cli

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/enginewire/enginewire/wire"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete PATH",
	Short: "Send a DELETE request to the engine",
	Long: `Send a DELETE request to the given engine API path. Asks for
confirmation first unless --force is given, since most DELETE endpoints
destroy something.`,
	Example: `  enginewire delete /containers/worker
  enginewire delete /containers/worker --param force=true --force
  enginewire delete /images/alpine:3.20 -f`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !deleteForce {
			var proceed bool
			prompt := &survey.Confirm{
				Message: fmt.Sprintf("Send DELETE %s?", args[0]),
				Default: false,
			}
			if err := survey.AskOne(prompt, &proceed); err != nil {
				return err
			}
			if !proceed {
				printInfo("Aborted")
				return nil
			}
		}
		return runExchange(wire.Delete, args[0], "")
	},
}

func init() {
	addExchangeFlags(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip the confirmation prompt")
}
