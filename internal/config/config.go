// Package config handles tmftool configuration loading and management.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all tool settings.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Import  ImportConfig  `yaml:"import"`
	Output  OutputConfig  `yaml:"output"`
	Export  ExportConfig  `yaml:"export"`
	Batch   BatchConfig   `yaml:"batch"`
	Watch   WatchConfig   `yaml:"watch"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// ImportConfig controls how packages are read.
type ImportConfig struct {
	ModelExt string `yaml:"model_ext"` // Marker an entry name must contain to be the model part
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	Format    string `yaml:"format"`    // table or json
	Precision int    `yaml:"precision"` // Decimals for coordinates in tables
}

// ExportConfig holds export settings.
type ExportConfig struct {
	Header string `yaml:"header"` // Binary STL header text
}

// BatchConfig holds batch parsing settings.
type BatchConfig struct {
	Workers int `yaml:"workers"`
}

// WatchConfig holds watch mode settings.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Import: ImportConfig{
			ModelExt: ".model",
		},
		Output: OutputConfig{
			Format:    "table",
			Precision: 3,
		},
		Export: ExportConfig{
			Header: "tmfkit binary STL",
		},
		Batch: BatchConfig{
			Workers: 4,
		},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
	}
}

// MatchModelPart reports whether an archive entry is the model part:
// its name contains ModelExt after the first character.
func (c ImportConfig) MatchModelPart(name string) bool {
	return strings.Index(name, c.ModelExt) > 0
}

// Validate checks settings that cannot be used as given.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "table", "json":
	default:
		return fmt.Errorf("output.format: unknown format %q (want table or json)", c.Output.Format)
	}
	if c.Import.ModelExt == "" {
		return fmt.Errorf("import.model_ext: must not be empty")
	}
	if c.Output.Precision < 0 {
		return fmt.Errorf("output.precision: must be >= 0, got %d", c.Output.Precision)
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers: must be >= 1, got %d", c.Batch.Workers)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce: must be >= 0, got %s", c.Watch.Debounce)
	}
	return nil
}
