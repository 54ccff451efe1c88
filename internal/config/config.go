// Package config provides configuration loading for the operations
// backend. It supports a layered configuration approach with priority:
// CLI flags > environment variables (BOUNTYOPS_*) > config file
// (~/.bountyops.yaml).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds all configuration options.
type Config struct {
	Addr         string        `mapstructure:"addr" yaml:"addr"`
	APIURL       string        `mapstructure:"api_url" yaml:"api_url"`
	StageDelay   time.Duration `mapstructure:"stage_delay" yaml:"stage_delay"`
	LogLevel     string        `mapstructure:"log_level" yaml:"log_level"`
	OutputFormat string        `mapstructure:"output_format" yaml:"output_format"`
}

// Defaults returns a Config populated with default values.
func Defaults() Config {
	return Config{
		Addr:         ":8080",
		APIURL:       "http://localhost:8080",
		StageDelay:   2 * time.Second,
		LogLevel:     "info",
		OutputFormat: "table",
	}
}

// Load reads configuration from ~/.bountyops.yaml and environment
// variables. It does NOT apply CLI flag overrides — call ApplyFlags for
// that.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(".bountyops")
	v.SetConfigType("yaml")

	home, err := os.UserHomeDir()
	if err == nil {
		v.AddConfigPath(home)
	}

	v.SetEnvPrefix("BOUNTYOPS")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)

	v.SetEnvPrefix("BOUNTYOPS")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// ApplyFlags overrides config values with any CLI flags that were
// explicitly set.
func ApplyFlags(cfg *Config, cmd *cobra.Command) {
	flags := cmd.Flags()

	if flags.Changed("addr") {
		val, _ := flags.GetString("addr")
		cfg.Addr = val
	}
	if flags.Changed("api-url") {
		val, _ := flags.GetString("api-url")
		cfg.APIURL = val
	}
	if flags.Changed("stage-delay") {
		val, _ := flags.GetDuration("stage-delay")
		cfg.StageDelay = val
	}
	if flags.Changed("log-level") {
		val, _ := flags.GetString("log-level")
		cfg.LogLevel = val
	}
	if flags.Changed("output") {
		val, _ := flags.GetString("output")
		cfg.OutputFormat = val
	}
}

// ConfigFilePath returns the default config file path (~/.bountyops.yaml).
func ConfigFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bountyops.yaml"
	}
	return filepath.Join(home, ".bountyops.yaml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("api_url", "http://localhost:8080")
	v.SetDefault("stage_delay", 2*time.Second)
	v.SetDefault("log_level", "info")
	v.SetDefault("output_format", "table")
}
