package scanner

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFileName = ".securevibe.yaml"

// Output types understood by the config. Kept in sync with internal/output.
var validOutputs = map[string]bool{
	"console": true,
	"table":   true,
	"json":    true,
	"sarif":   true,
}

// Config represents the scanner configuration
type Config struct {
	Output  string `yaml:"output"`
	FailOn  string `yaml:"fail_on"`
	Threads int    `yaml:"threads,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Output:  "console",
		FailOn:  SeverityHigh,
		Threads: 4,
	}
}

// DefaultConfigPath returns the default path to the configuration file
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return configFileName
	}
	return filepath.Join(home, configFileName)
}

// LoadConfig loads the scanner configuration from the given path
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig saves the scanner configuration to the given path
func SaveConfig(config *Config, path string) error {
	if err := config.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks output type, severity threshold and thread count.
func (c *Config) Validate() error {
	if !validOutputs[c.Output] {
		return fmt.Errorf("invalid output type %q", c.Output)
	}
	if SeverityRank(c.FailOn) == 0 {
		return fmt.Errorf("invalid fail_on severity %q", c.FailOn)
	}
	if c.Threads < 0 {
		return fmt.Errorf("threads must not be negative, got %d", c.Threads)
	}
	return nil
}

// MergeConfig merges environment variables and flags into the config
func MergeConfig(config *Config, flags map[string]interface{}) *Config {
	merged := *config

	// Environment variables take precedence over config file
	if out := os.Getenv("SECUREVIBE_OUTPUT"); out != "" {
		merged.Output = out
	}
	if sev := os.Getenv("SECUREVIBE_FAIL_ON"); sev != "" {
		merged.FailOn = sev
	}

	// Command line flags take precedence over everything
	for k, v := range flags {
		switch k {
		case "type":
			if s, ok := v.(string); ok && s != "" {
				merged.Output = s
			}
		case "fail-on":
			if s, ok := v.(string); ok && s != "" {
				merged.FailOn = s
			}
		case "threads":
			if n, ok := v.(int); ok && n > 0 {
				merged.Threads = n
			}
		}
	}

	return &merged
}
