// internal/cli/config.go
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/enginewire/enginewire/internal/config"
)

var configOutput string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage enginewire configuration",
	Long:  `View and manage the enginewire configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	Long:  `Display the effective configuration after file, environment and flags.`,
	RunE:  runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration",
	Long:  `Check that the effective configuration can drive an exchange.`,
	RunE:  runConfigValidate,
}

var configGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate default configuration",
	Long:  `Write a config file populated with the built-in defaults.`,
	RunE:  runConfigGenerate,
}

func init() {
	configGenerateCmd.Flags().StringVarP(&configOutput, "output", "o", "enginewire.yaml", "Where to write the config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configGenerateCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	// Durations render as strings instead of nanosecond counts.
	display := struct {
		Host        string `yaml:"host"`
		HostHeader  string `yaml:"host_header"`
		BufferSize  int    `yaml:"buffer_size"`
		Timeout     string `yaml:"timeout"`
		DialTimeout string `yaml:"dial_timeout"`
	}{
		Host:        cfg.Host,
		HostHeader:  cfg.HostHeader,
		BufferSize:  cfg.BufferSize,
		Timeout:     cfg.Timeout.String(),
		DialTimeout: cfg.DialTimeout.String(),
	}

	data, err := yaml.Marshal(display)
	if err != nil {
		return fmt.Errorf("failed to format config: %w", err)
	}

	fmt.Println("Current Configuration:")
	fmt.Println(string(data))

	if configFile := config.GetViper().ConfigFileUsed(); configFile != "" {
		fmt.Printf("Config file: %s\n", configFile)
	}

	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration is invalid: %w", err)
	}

	printSuccess("Configuration is valid!")
	fmt.Printf("\nEngine address: %s\n", cfg.Host)
	fmt.Printf("Host header:    %s\n", cfg.HostHeader)
	fmt.Printf("Read buffer:    %d bytes\n", cfg.BufferSize)
	return nil
}

func runConfigGenerate(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(configOutput); err == nil {
		return fmt.Errorf("config file already exists at %s", configOutput)
	}

	if err := os.WriteFile(configOutput, []byte(config.GenerateDefault()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	printSuccess(fmt.Sprintf("Generated default configuration at %s", configOutput))
	return nil
}
