// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/enginewire/enginewire/transport"
	"github.com/enginewire/enginewire/wire"
)

// Config represents client configuration
type Config struct {
	Host        string        `mapstructure:"host" yaml:"host"`
	HostHeader  string        `mapstructure:"host_header" yaml:"host_header"`
	BufferSize  int           `mapstructure:"buffer_size" yaml:"buffer_size"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
	DialTimeout time.Duration `mapstructure:"dial_timeout" yaml:"dial_timeout"`
}

var (
	cfg *Config
	v   *viper.Viper
)

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Host:        transport.DefaultAddr,
		HostHeader:  wire.DefaultHost,
		BufferSize:  wire.DefaultBufferSize,
		Timeout:     transport.DefaultTimeout,
		DialTimeout: transport.DefaultTimeout,
	}
}

// Init loads configuration from file, environment and defaults. An empty
// configFile searches the working directory and ~/.config/enginewire; a
// missing file is fine in that mode. ENGINEWIRE_* variables override file
// values, and DOCKER_HOST is honored for the engine address.
func Init(configFile string) error {
	v = viper.New()

	defaults := Default()
	v.SetDefault("host", defaults.Host)
	v.SetDefault("host_header", defaults.HostHeader)
	v.SetDefault("buffer_size", defaults.BufferSize)
	v.SetDefault("timeout", defaults.Timeout)
	v.SetDefault("dial_timeout", defaults.DialTimeout)

	v.SetEnvPrefix("ENGINEWIRE")
	v.AutomaticEnv()
	if err := v.BindEnv("host", "ENGINEWIRE_HOST", "DOCKER_HOST"); err != nil {
		return fmt.Errorf("failed to bind environment: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		v.SetConfigName("enginewire")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "enginewire"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

// Get returns current config
func Get() *Config {
	if cfg == nil {
		cfg = Default()
	}
	return cfg
}

// GetViper returns viper instance
func GetViper() *viper.Viper {
	if v == nil {
		v = viper.New()
	}
	return v
}

// Validate checks that the configuration can actually drive an exchange
func (c *Config) Validate() error {
	if _, _, err := transport.ParseAddr(c.Host); err != nil {
		return err
	}
	if c.HostHeader == "" {
		return errors.New("host_header must not be empty")
	}
	if c.BufferSize <= 0 {
		return fmt.Errorf("buffer_size must be positive, got %d", c.BufferSize)
	}
	if c.Timeout < 0 || c.DialTimeout < 0 {
		return errors.New("timeouts must not be negative")
	}
	return nil
}

// GenerateDefault generates default config
func GenerateDefault() string {
	return fmt.Sprintf(`# enginewire configuration
host: "%s"
host_header: "%s"
buffer_size: %d
timeout: "%s"
dial_timeout: "%s"
`, transport.DefaultAddr, wire.DefaultHost, wire.DefaultBufferSize, transport.DefaultTimeout, transport.DefaultTimeout)
}
