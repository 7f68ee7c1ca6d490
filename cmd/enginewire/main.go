package main

import (
	"github.com/enginewire/enginewire/internal/cli"
)

func main() {
	// Set version information (Version, Commit, BuildDate are defined in version.go)
	cli.SetVersionInfo(Version, Commit, BuildDate)

	// Execute root command
	cli.Execute()
}
