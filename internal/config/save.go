package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigExists is returned by SaveTo when the file exists and overwrite is off.
var ErrConfigExists = errors.New("config file already exists")

const fileHeader = "# tmftool configuration\n"

// DefaultPath returns config.yaml inside ConfigDir.
func DefaultPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// WriteYAML encodes the config as YAML with two-space indentation.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// Save writes the config to DefaultPath and returns the path written.
func (c *Config) Save(overwrite bool) (string, error) {
	path := DefaultPath()
	return path, c.SaveTo(path, overwrite)
}

// SaveTo writes the config to path, creating parent directories.
func (c *Config) SaveTo(path string, overwrite bool) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if _, err := io.WriteString(f, fileHeader); err != nil {
		return err
	}
	return c.WriteYAML(f)
}
