// internal/cli/root.go
package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/enginewire/enginewire/internal/config"
)

var (
	// Global flags
	verbose    bool
	configFile string
	hostFlag   string

	// Color helpers
	successColor = color.New(color.FgGreen).SprintFunc()
	errorColor   = color.New(color.FgRed).SprintFunc()
	warningColor = color.New(color.FgYellow).SprintFunc()
	infoColor    = color.New(color.FgCyan).SprintFunc()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:     "enginewire",
	Aliases: []string{"ew"},
	Short:   "Raw HTTP/1.1 exchanges with a container engine socket",
	Long: `Enginewire sends hand-built HTTP/1.1 requests to a local container
engine socket and prints back exactly what the engine answered. One fresh
connection per exchange, Content-Length framing only, no TLS, no retries.

Response metadata goes to stderr and the body to stdout, so output can be
piped straight into jq. You can use either 'enginewire' or 'ew'.`,
	Example: `  enginewire get /_ping
  ew get /containers/json --param all=true
  ew post /containers/create --param name=worker --data '{"Image":"alpine:3.20"}'
  ew delete /containers/worker --param force=true
  ew doctor`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorColor("Error:"), err)
		os.Exit(1)
	}
}

// SetVersionInfo records build metadata for the --version flag.
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file path (default: ./enginewire.yaml)")
	rootCmd.PersistentFlags().StringVarP(&hostFlag, "host", "H", "", "Engine address (unix:///path or tcp://host:port)")

	// Add all subcommands
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if verbose {
		fmt.Fprintln(os.Stderr, infoColor("Debug mode enabled"))
	}

	if err := config.Init(configFile); err != nil {
		// Missing or broken config only matters to commands that dial out;
		// those surface the problem through Validate.
		if verbose {
			fmt.Fprintf(os.Stderr, "Config initialization warning: %v\n", err)
		}
	}
	if hostFlag != "" {
		config.Get().Host = hostFlag
	}
}
