// Package config loads speclint settings from a config file and SPECLINT_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/erraggy/speclint/internal/severity"
	"github.com/erraggy/speclint/oaserrors"
)

// DefaultFileName is the config file looked up in the working directory
// when no explicit path is given.
const DefaultFileName = ".speclint.yaml"

// EnvPrefix is the prefix of environment overrides: output.format is read
// from SPECLINT_OUTPUT_FORMAT.
const EnvPrefix = "SPECLINT"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds every speclint setting.
type Config struct {
	Output  Output  `mapstructure:"output"`
	Analyze Analyze `mapstructure:"analyze"`
	Watch   Watch   `mapstructure:"watch"`
	MCP     MCP     `mapstructure:"mcp"`
}

// Output controls how results are printed.
type Output struct {
	// Format is "text" or "json".
	Format string `mapstructure:"format"`
	// Color is "auto", "always" or "never".
	Color string `mapstructure:"color"`
}

// Analyze holds issue filtering settings.
type Analyze struct {
	MinSeverity   string   `mapstructure:"min_severity"`
	DisabledRules []string `mapstructure:"disabled_rules"`
}

// Watch holds settings for the watch command.
type Watch struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// MCP holds settings for the MCP server.
type MCP struct {
	MaxInputSize int64 `mapstructure:"max_input_size"`
}

// Severity returns the parsed minimum severity.
func (c *Config) Severity() (severity.Severity, error) {
	return severity.Parse(c.Analyze.MinSeverity)
}

// Load reads configuration from path, or from DefaultFileName in the
// working directory when path is empty. A missing default file is not an
// error; a missing explicit file is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(DefaultFileName, ".yaml"))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in settings without reading any file or
// environment variable.
func Default() *Config {
	return &Config{
		Output:  Output{Format: FormatText, Color: "auto"},
		Analyze: Analyze{MinSeverity: "info", DisabledRules: []string{}},
		Watch:   Watch{Debounce: 300 * time.Millisecond},
		MCP:     MCP{MaxInputSize: 10 * 1024 * 1024},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.color", d.Output.Color)
	v.SetDefault("analyze.min_severity", d.Analyze.MinSeverity)
	v.SetDefault("analyze.disabled_rules", d.Analyze.DisabledRules)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
	v.SetDefault("mcp.max_input_size", d.MCP.MaxInputSize)
}

func (c *Config) validate() error {
	switch c.Output.Format {
	case FormatText, FormatJSON:
	default:
		return &oaserrors.ConfigError{Option: "output.format", Value: c.Output.Format, Message: "must be text or json"}
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return &oaserrors.ConfigError{Option: "output.color", Value: c.Output.Color, Message: "must be auto, always or never"}
	}
	if _, err := c.Severity(); err != nil {
		return &oaserrors.ConfigError{Option: "analyze.min_severity", Value: c.Analyze.MinSeverity, Message: "must be error, warn or info", Cause: err}
	}
	if c.Watch.Debounce < 0 {
		return &oaserrors.ConfigError{Option: "watch.debounce", Value: c.Watch.Debounce, Message: "must not be negative"}
	}
	if c.MCP.MaxInputSize <= 0 {
		return &oaserrors.ConfigError{Option: "mcp.max_input_size", Value: c.MCP.MaxInputSize, Message: "must be positive"}
	}
	return nil
}
