// Package config holds the run configuration of the ibom command.
//
// Values come from Default, are overridden by an optional TOML or YAML file
// and finally by command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Config controls where and how the BOM artifacts are written.
type Config struct {
	OutputDir   string `toml:"output_dir" yaml:"output_dir"`     // relative to the board directory unless absolute
	OutputName  string `toml:"output_name" yaml:"output_name"`   // HTML file name
	OpenBrowser bool   `toml:"open_browser" yaml:"open_browser"` // launch the browser after writing
	WriteJSON   bool   `toml:"write_json" yaml:"write_json"`     // also write the raw document as ibom.json
	Template    string `toml:"template" yaml:"template"`         // HTML template path, empty for the built-in one
	LogLevel    string `toml:"log_level" yaml:"log_level"`       // debug, info, warn or error
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		OutputDir:   "bom",
		OutputName:  "ibom.html",
		OpenBrowser: true,
		WriteJSON:   false,
		Template:    "",
		LogLevel:    "info",
	}
}

// Load reads a configuration file on top of the defaults. The format is
// chosen by extension: .toml, or .yaml/.yml.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration and fills in empty fields with defaults.
func (c *Config) Validate() error {
	def := Default()
	if c.OutputDir == "" {
		c.OutputDir = def.OutputDir
	}
	if c.OutputName == "" {
		c.OutputName = def.OutputName
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}

	if filepath.Base(c.OutputName) != c.OutputName {
		return fmt.Errorf("output name %q must be a plain file name", c.OutputName)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// Level returns the configured log level, info if it does not parse.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// OutputPath returns the HTML output path for a board file.
func (c *Config) OutputPath(boardFile string) string {
	dir := c.OutputDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(filepath.Dir(boardFile), dir)
	}
	return filepath.Join(dir, c.OutputName)
}
