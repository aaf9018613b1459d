// Package config loads and bootstraps the exinc configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aretw0/exinc/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Release is the configuration layout this binary understands.
// Files written for another release are rejected rather than half-applied.
const Release = 1

// EnvPath overrides the configuration file location.
const EnvPath = "EXINC_CONFIG"

// Caide configures the external caide optimizer backend.
type Caide struct {
	CmdPath       string   `yaml:"cmd_path" mapstructure:"cmd_path"`
	ClangIncludes string   `yaml:"clang_includes" mapstructure:"clang_includes"`
	Options       []string `yaml:"options" mapstructure:"options"`
}

// Config is the content of the configuration file.
type Config struct {
	Release      int      `yaml:"release" mapstructure:"release"`
	DefaultPaths []string `yaml:"default_paths" mapstructure:"default_paths"`
	DefaultFlags []string `yaml:"default_flags" mapstructure:"default_flags"`
	Compiler     []string `yaml:"compiler" mapstructure:"compiler"`
	Caide        Caide    `yaml:"caide" mapstructure:"caide"`
}

// Default returns the configuration written on first use.
func Default() *Config {
	return &Config{
		Release:      Release,
		DefaultPaths: []string{},
		DefaultFlags: []string{"-std=c++11"},
		Compiler:     []string{"g++", "-xc++"},
		Caide:        Caide{Options: []string{}},
	}
}

// defaultFile is what Bootstrap writes. It mirrors Default, with guidance for users.
const defaultFile = `# exinc configuration file
# DO NOT TOUCH THE NEXT LINE
release: 1

# default include paths, searched after the ones given on the command line
default_paths: []

# default compilation flags; --flags on the command line is appended to these
default_flags: ["-std=c++11"]

# compiler command line, the source file is given last
compiler: ["g++", "-xc++"]

# caide optimizer backend (exinc --caide)
caide:
  cmd_path: ""
  clang_includes: ""
  options: []
`

// Path returns the configuration file location: $EXINC_CONFIG or ~/.exinc.yaml.
func Path() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".exinc.yaml"), nil
}

// Load reads and validates the configuration file at path.
// Unknown keys are rejected so that typos don't silently fall back to defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates configuration content.
func Parse(data []byte) (*Config, error) {
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      cfg,
		ErrorUnused: true,
		ZeroFields:  true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the release marker and required fields.
func (c *Config) Validate() error {
	if c.Release != Release {
		return fmt.Errorf("%w (release %d, expected %d): rename it and re-run exinc, "+
			"an updated config will be created; then merge your old settings into it",
			domain.ErrConfigOutdated, c.Release, Release)
	}
	if len(c.Compiler) == 0 {
		return errors.New("invalid config: compiler must not be empty")
	}
	return nil
}

// Bootstrap loads the configuration at path, creating it with defaults first if it
// does not exist. The notice about the new file is written to w.
func Bootstrap(path string, w io.Writer) (*Config, error) {
	_, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintf(w, "Your configuration file was not found. A new one will be created at %s\n", path)
		if err := os.WriteFile(path, []byte(defaultFile), 0644); err != nil {
			return nil, fmt.Errorf("your new configuration file could not be created: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to stat config: %w", err)
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, fmt.Errorf("your config file could not be loaded: %w", err)
	}
	return cfg, nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
