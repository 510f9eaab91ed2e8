// Package config handles configuration loading from YAML files and environment variables.
// Configuration precedence: CLI flags > environment variables > config file > embedded > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by OutputConfig.Format.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Duration is a wrapper around time.Duration that supports YAML unmarshaling
// from human-readable strings like "2s", "500ms", "1m".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		parsed, err := time.ParseDuration(value.Value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value.Value, err)
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("unsupported duration format: %v", value.Kind)
	}
}

// MarshalYAML implements the yaml.Marshaler interface for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Config holds all daemon configuration.
type Config struct {
	Collection CollectionConfig `yaml:"collection"`
	Sources    SourcesConfig    `yaml:"sources"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// CollectionConfig holds sampling settings.
type CollectionConfig struct {
	Interval     Duration `yaml:"interval"`
	Timeout      Duration `yaml:"timeout"` // per sampling pass, 0 disables
	TopProcesses int      `yaml:"top_processes"`
	HostInfo     bool     `yaml:"host_info"`
}

// SourcesConfig locates the kernel pseudo-filesystems.
type SourcesConfig struct {
	ProcRoot string `yaml:"proc_root"`
	SysRoot  string `yaml:"sys_root"`
}

// OutputConfig holds snapshot output settings.
type OutputConfig struct {
	Format string `yaml:"format"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Collection: CollectionConfig{
			Interval:     Duration{2 * time.Second},
			Timeout:      Duration{10 * time.Second},
			TopProcesses: 20,
			HostInfo:     true,
		},
		Sources: SourcesConfig{
			ProcRoot: "/proc",
			SysRoot:  "/sys",
		},
		Output: OutputConfig{
			Format: FormatJSON,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// CLIOverrides holds values from command-line flags.
// Zero values are treated as "not set" and skipped.
type CLIOverrides struct {
	Interval time.Duration
	Format   string
}

// Locate searches standard config file paths and returns the first one found.
// Returns empty string if no config file exists.
func Locate() string {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func configSearchPaths() []string {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "candymon", "config.yaml"))
	}
	return append(paths, "/etc/candymon/config.yaml")
}

// LoadLayered loads configuration with the full precedence chain:
// CLI flags > env vars > external YAML file > embedded bytes > defaults.
//
// An optional configPath argument controls external-file discovery:
//   - omitted        → auto-discover via Locate()
//   - explicit value  → use that path ("" means no external file)
func LoadLayered(cli CLIOverrides, embedded []byte, configPath ...string) (*Config, error) {
	cfg := DefaultConfig()

	// Layer 1: embedded config (lowest priority data layer)
	if len(embedded) > 0 {
		if err := yaml.Unmarshal(embedded, cfg); err != nil {
			return nil, fmt.Errorf("parsing embedded config: %w", err)
		}
	}

	// Layer 2: external YAML file
	var filePath string
	if len(configPath) > 0 {
		filePath = configPath[0]
	} else {
		filePath = Locate()
	}
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", filePath, err)
		}
	}

	// Layer 3: environment variables
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	// Layer 4: CLI flags (highest priority)
	if cli.Interval > 0 {
		cfg.Collection.Interval.Duration = cli.Interval
	}
	if cli.Format != "" {
		cfg.Output.Format = cli.Format
	}

	return cfg, nil
}

// WriteConfig serializes the config to a YAML file at the given path.
// Creates parent directories if needed.
func WriteConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("CANDYMON_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid CANDYMON_INTERVAL %q: %w", v, err)
		}
		cfg.Collection.Interval.Duration = d
	}
	if format := os.Getenv("CANDYMON_FORMAT"); format != "" {
		cfg.Output.Format = format
	}
	if level := os.Getenv("CANDYMON_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Collection.Interval.Duration <= 0 {
		return fmt.Errorf("collection interval must be positive (got: %s)", c.Collection.Interval.Duration)
	}
	if c.Collection.Timeout.Duration < 0 {
		return fmt.Errorf("collection timeout must not be negative (got: %s)", c.Collection.Timeout.Duration)
	}
	if c.Collection.TopProcesses < 1 {
		return fmt.Errorf("top_processes must be at least 1 (got: %d)", c.Collection.TopProcesses)
	}
	switch strings.ToLower(c.Output.Format) {
	case FormatJSON, FormatText:
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}
	return nil
}
