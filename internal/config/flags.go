package config

import "github.com/spf13/pflag"

// Flags holds command-line overrides.
type Flags struct {
	ConfigPath string
	Debug      bool
	LogFile    string
	Format     string
}

// Register binds the flags to a flag set.
func (f *Flags) Register(fs *pflag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogFile, "log-file", "", "Also write logs to this file")
	fs.StringVar(&f.Format, "format", "", "Output format (table|json)")
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config, f *Flags) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.Format != "" {
		cfg.Output.Format = f.Format
	}
}
