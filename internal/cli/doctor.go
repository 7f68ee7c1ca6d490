// internal/cli/doctor.go
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/enginewire/enginewire/internal/config"
	"github.com/enginewire/enginewire/internal/diagnostics"
)

var doctorJSON bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose engine connectivity issues",
	Long: `Run diagnostics against the configured engine address and get
solutions for whatever is broken.

Doctor checks:
  - Configuration validity
  - Socket file existence and type
  - Raw reachability of the address
  - A complete ping exchange through the client stack
  - Engine daemon processes
  - System memory pressure`,
	Example: `  enginewire doctor
  enginewire doctor -H tcp://127.0.0.1:2375
  enginewire doctor --json`,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "Emit results as JSON for bug reports")
}

func runDoctor(cmd *cobra.Command, args []string) error {
	doctor := diagnostics.NewDoctor(config.Get())

	if doctorJSON {
		if err := doctor.RunDiagnostics(); err != nil {
			return fmt.Errorf("failed to run diagnostics: %w", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(doctor.GetResults())
	}

	fmt.Println(infoColor("Enginewire Doctor"))
	fmt.Println(strings.Repeat("━", 50))
	fmt.Println()

	if err := doctor.RunDiagnostics(); err != nil {
		return fmt.Errorf("failed to run diagnostics: %w", err)
	}

	var (
		okCount      int
		warningCount int
		errorCount   int
		skippedCount int
	)

	for _, result := range doctor.GetResults() {
		displayDiagnosticResult(result)

		switch result.Status {
		case diagnostics.CheckStatusOK:
			okCount++
		case diagnostics.CheckStatusWarning:
			warningCount++
		case diagnostics.CheckStatusError:
			errorCount++
		case diagnostics.CheckStatusSkipped:
			skippedCount++
		}
	}

	// Summary
	fmt.Println()
	fmt.Println(strings.Repeat("━", 50))
	fmt.Printf("\n%s ", infoColor("Summary:"))

	if errorCount == 0 && warningCount == 0 {
		fmt.Println(successColor("All checks passed!"))
		fmt.Println("\nThe engine socket is ready for exchanges.")
		return nil
	}

	parts := []string{}
	if okCount > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", okCount, successColor("passed")))
	}
	if warningCount > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", warningCount, warningColor("warnings")))
	}
	if errorCount > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", errorCount, errorColor("errors")))
	}
	if skippedCount > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", skippedCount))
	}
	fmt.Println(strings.Join(parts, ", "))

	if errorCount > 0 {
		fmt.Println("\n" + errorColor("Exchanges will not work until the errors above are resolved."))
	} else {
		fmt.Println("\n" + warningColor("Exchanges should work, but something looks off."))
	}
	return nil
}

func displayDiagnosticResult(result diagnostics.DiagnosticResult) {
	var icon string
	var statusColorFunc func(a ...interface{}) string

	switch result.Status {
	case diagnostics.CheckStatusOK:
		icon = "✓"
		statusColorFunc = successColor
	case diagnostics.CheckStatusWarning:
		icon = "!"
		statusColorFunc = warningColor
	case diagnostics.CheckStatusError:
		icon = "✗"
		statusColorFunc = errorColor
	case diagnostics.CheckStatusSkipped:
		icon = "○"
		statusColorFunc = color.New(color.FgWhite).SprintFunc()
	}

	fmt.Printf("%s %s: %s\n",
		statusColorFunc(icon),
		result.Check,
		result.Message)

	if result.Status == diagnostics.CheckStatusError || result.Status == diagnostics.CheckStatusWarning {
		for _, line := range strings.Split(result.Solution, "\n") {
			if line != "" {
				fmt.Printf("  %s %s\n", color.New(color.FgYellow).Sprint("→"), line)
			}
		}
	}

	if verbose && len(result.Details) > 0 {
		fmt.Println("  Details:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for key, value := range result.Details {
			fmt.Fprintf(w, "    %s:\t%v\n", key, value)
		}
		w.Flush()
	}
}
