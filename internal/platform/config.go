package platform

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the project configuration read from lectern.yml.
//
//	media: ../media
//	systemDir: .lectern
//	concurrency: 8
//	pattern: "**/*.lectern.yml"
type Config struct {
	Media       string `yaml:"media"`
	SystemDir   string `yaml:"systemDir"`
	Concurrency int    `yaml:"concurrency"`
	Pattern     string `yaml:"pattern"`

	root string
}

// LoadConfig reads lectern.yml from root. A missing file yields an empty
// configuration.
func LoadConfig(root string) (*Config, error) {
	cfg := &Config{root: root}

	data, err := os.ReadFile(filepath.Join(root, ConfigFile))
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	if cfg.Concurrency < 0 {
		return nil, fmt.Errorf("invalid %s: concurrency must not be negative", ConfigFile)
	}
	return cfg, nil
}

// MediaRoot returns the configured media directory, resolved against the
// project root.
func (c *Config) MediaRoot() string {
	if c.Media == "" {
		return c.root
	}
	if filepath.IsAbs(c.Media) {
		return c.Media
	}
	return filepath.Join(c.root, c.Media)
}

// Options converts the configuration into options. Explicit options passed
// after them take precedence.
func (c *Config) Options() []Option {
	opts := []Option{WithMediaRoot(c.MediaRoot())}
	if c.SystemDir != "" {
		opts = append(opts, WithSystemDir(c.SystemDir))
	}
	if c.Concurrency > 0 {
		opts = append(opts, WithConcurrency(c.Concurrency))
	}
	if c.Pattern != "" {
		opts = append(opts, WithPattern(c.Pattern))
	}
	return opts
}
