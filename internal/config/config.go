package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/egypt/internal/egypt"
)

// Config represents the complete egypt configuration
type Config struct {
	Decompose DecomposeConfig `mapstructure:"decompose" yaml:"decompose"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output"`
	Batch     BatchConfig     `mapstructure:"batch" yaml:"batch"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
}

// DecomposeConfig controls the decomposition pipeline
type DecomposeConfig struct {
	// Limit is the longest run of unit fractions kept before bisection (min: 2)
	Limit int `mapstructure:"limit" yaml:"limit"`
	// Merge enables the pass that coalesces spans summing to a unit fraction
	Merge bool `mapstructure:"merge" yaml:"merge"`
	// Reverse walks the merge from the largest denominator; in raw mode it
	// reverses the symbolic term order
	Reverse bool `mapstructure:"reverse" yaml:"reverse"`
	// Bisect splits long runs in raw mode too
	Bisect bool `mapstructure:"bisect" yaml:"bisect"`
	// Raw prints symbolic terms instead of unit fractions
	Raw bool `mapstructure:"raw" yaml:"raw"`
}

// OutputConfig controls how results are written
type OutputConfig struct {
	// Format is the output format
	// Options: "text", "batch", "json", "yaml", "pretty"
	Format string `mapstructure:"format" yaml:"format"`
	// Silent suppresses all result output
	Silent bool `mapstructure:"silent" yaml:"silent"`
	// Stats adds pipeline statistics to json and yaml output
	Stats bool `mapstructure:"stats" yaml:"stats"`
}

// BatchConfig controls batch mode
type BatchConfig struct {
	// Workers bounds concurrent decompositions (0 = one per CPU)
	Workers int `mapstructure:"workers" yaml:"workers"`
	// ChunkSize is the number of lines read and decomposed between flushes
	ChunkSize int `mapstructure:"chunk_size" yaml:"chunk_size"`
}

// LoggingConfig controls diagnostic logging
type LoggingConfig struct {
	// Level is the minimum log level; empty disables logging
	// Options: "", "debug", "info", "warn", "error"
	Level string `mapstructure:"level" yaml:"level"`
	// File is the log file path; empty logs to stderr
	File string `mapstructure:"file" yaml:"file"`
	// MaxSizeMB is the log file size in megabytes that triggers rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	// MaxBackups is the number of rotated log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups" yaml:"max_backups"`
	// Compress gzips rotated log files
	Compress bool `mapstructure:"compress" yaml:"compress"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Decompose: DecomposeConfig{
			Limit: egypt.DefaultLimit,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Batch: BatchConfig{
			Workers:   0, // One per CPU
			ChunkSize: 256,
		},
		Logging: LoggingConfig{
			Level:      "", // Disabled unless asked for
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Options converts the decomposition settings to engine options.
func (c *DecomposeConfig) Options() egypt.Options {
	return egypt.Options{
		Reverse: c.Reverse,
		Merge:   c.Merge,
		Raw:     c.Raw,
		Bisect:  c.Bisect,
		Limit:   c.Limit,
	}
}

// SetDefaults registers default values with v
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	// Decompose defaults
	v.SetDefault("decompose.limit", defaults.Decompose.Limit)
	v.SetDefault("decompose.merge", defaults.Decompose.Merge)
	v.SetDefault("decompose.reverse", defaults.Decompose.Reverse)
	v.SetDefault("decompose.bisect", defaults.Decompose.Bisect)
	v.SetDefault("decompose.raw", defaults.Decompose.Raw)

	// Output defaults
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.silent", defaults.Output.Silent)
	v.SetDefault("output.stats", defaults.Output.Stats)

	// Batch defaults
	v.SetDefault("batch.workers", defaults.Batch.Workers)
	v.SetDefault("batch.chunk_size", defaults.Batch.ChunkSize)

	// Logging defaults
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.file", defaults.Logging.File)
	v.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	v.SetDefault("logging.compress", defaults.Logging.Compress)
}

// Load reads the configuration held by v into a Config struct and validates it
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "egypt")
	}
	// Fall back to ~/.config/egypt
	home, err := os.UserHomeDir()
	if err != nil {
		return ".egypt"
	}
	return filepath.Join(home, ".config", "egypt")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Marshal renders cfg as YAML with the same keys viper reads.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteFile writes cfg to path as YAML, creating parent directories. It
// refuses to overwrite an existing file.
func (c *Config) WriteFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return os.ErrExist
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, append([]byte(header), data...), 0644)
}

const header = `# egypt configuration
# Every key can also be set with an EGYPT_ environment variable,
# e.g. EGYPT_DECOMPOSE_LIMIT=16.

`
