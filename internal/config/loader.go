package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// maxCascadeDepth is the largest accepted store.max_cascade_depth.
const maxCascadeDepth = 64

// Load reads the YAML configuration file at path and returns a validated [Config].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes YAML from r over [Default] and validates the
// result. Keys absent from the document keep their default values.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}
	if !cfg.LogFormat.IsValid() {
		errs = append(errs, fmt.Errorf("log_format %q is invalid; valid values: text, json", cfg.LogFormat))
	}
	if d := cfg.Store.MaxCascadeDepth; d < 1 || d > maxCascadeDepth {
		errs = append(errs, fmt.Errorf("store.max_cascade_depth %d is out of range [1, %d]", d, maxCascadeDepth))
	}
	if cfg.Store.InitialCapacity < 0 {
		errs = append(errs, fmt.Errorf("store.initial_capacity %d must not be negative", cfg.Store.InitialCapacity))
	}
	if cfg.SeedFile != "" {
		if _, err := os.Stat(cfg.SeedFile); err != nil {
			errs = append(errs, fmt.Errorf("seed_file: %w", err))
		}
	}

	return errors.Join(errs...)
}
