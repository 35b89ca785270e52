// Package config loads the avrogen.yaml project file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/primait/avrogen/internal/compiler"
)

// DefaultFile is the config file looked up when none is given.
const DefaultFile = "avrogen.yaml"

// Config describes one generation run.
type Config struct {
	// Schema is the root schema document.
	Schema string `yaml:"schema"`

	// Dependencies are schema documents the root may reference. They are
	// loaded before the root, in order.
	Dependencies []string `yaml:"dependencies,omitempty"`

	// Output is the directory generated schemas are written to.
	Output string `yaml:"output"`

	// Layout is "flat" or "tree".
	Layout string `yaml:"layout,omitempty"`

	// Extension is appended to every generated file name.
	Extension string `yaml:"extension,omitempty"`

	// ScopeEmbedded qualifies definitions nested in a record with the
	// record's name.
	ScopeEmbedded bool `yaml:"scope_embedded,omitempty"`

	// DetectCollisions fails when two different definitions share an FQN.
	DetectCollisions bool `yaml:"detect_collisions,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Output:    "generated",
		Layout:    string(compiler.Flat),
		Extension: ".avsc",
	}
}

// Load reads and validates a config file. Relative schema paths are
// resolved against the file's directory.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Read is Load without validation, for callers that override fields
// before validating.
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.resolve(filepath.Dir(path))
	return cfg, nil
}

// Parse decodes YAML over the defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return cfg, nil
}

// Validate checks required fields and enumerations.
func (c *Config) Validate() error {
	if c.Schema == "" {
		return fmt.Errorf("schema is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output is required")
	}
	if _, err := compiler.ParseLayout(c.Layout); err != nil {
		return err
	}
	for i, dep := range c.Dependencies {
		if dep == "" {
			return fmt.Errorf("dependencies[%d] is empty", i)
		}
		if dep == c.Schema {
			return fmt.Errorf("dependencies[%d] repeats the root schema", i)
		}
	}
	return nil
}

// NormalizeOptions returns the normalizer settings the config selects.
func (c *Config) NormalizeOptions() compiler.NormalizeOptions {
	return compiler.NormalizeOptions{
		ScopeEmbedded:    c.ScopeEmbedded,
		DetectCollisions: c.DetectCollisions,
	}
}

func (c *Config) resolve(base string) {
	join := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	c.Schema = join(c.Schema)
	c.Output = join(c.Output)
	for i, dep := range c.Dependencies {
		c.Dependencies[i] = join(dep)
	}
}
