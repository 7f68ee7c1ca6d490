// internal/cli/helpers.go
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

func printSuccess(msg string) {
	fmt.Printf("%s %s\n", successColor("✓"), msg)
}

func printError(msg string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errorColor("✗"), msg)
}

func printWarning(msg string) {
	fmt.Printf("%s %s\n", warningColor("!"), msg)
}

func printInfo(msg string) {
	fmt.Printf("%s %s\n", infoColor("→"), msg)
}

// splitKeyValue splits "key<sep>value" at the first separator. The key is
// trimmed, the value returned as-is.
func splitKeyValue(s, sep string) (string, string, error) {
	key, value, ok := strings.Cut(s, sep)
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", fmt.Errorf("expected key%svalue, got %q", sep, s)
	}
	return key, value, nil
}

// statusColor picks the color helper matching a status code class.
func statusColor(status int) func(a ...interface{}) string {
	switch {
	case status >= 200 && status < 300:
		return successColor
	case status >= 400 && status < 500:
		return warningColor
	case status >= 500:
		return errorColor
	default:
		return infoColor
	}
}

// newLogger returns a debug logger for the transport in verbose mode and
// nil otherwise, which leaves the transport silent.
func newLogger() logrus.FieldLogger {
	if !verbose {
		return nil
	}
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.DebugLevel)
	return log
}

// formatBytes converts bytes to human readable format
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
