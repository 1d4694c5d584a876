// Package config defines the quill configuration file and its loader.
package config

import (
	"log/slog"

	"github.com/jacentio/quill/store"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Slog returns the matching slog level. Unknown levels map to Info.
func (l LogLevel) Slog() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogFormat selects the slog handler.
type LogFormat string

const (
	FormatText LogFormat = "text"
	FormatJSON LogFormat = "json"
)

// IsValid reports whether f is a recognised log format.
func (f LogFormat) IsValid() bool {
	return f == FormatText || f == FormatJSON
}

// Config is the top-level configuration.
type Config struct {
	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`

	// LogFormat is "text" or "json".
	LogFormat LogFormat `yaml:"log_format"`

	// SeedFile is an optional YAML fixture imported at startup.
	SeedFile string `yaml:"seed_file"`

	Store StoreConfig `yaml:"store"`
}

// StoreConfig mirrors [store.Config].
type StoreConfig struct {
	// MaxCascadeDepth bounds nested cascade deletes. Range [1, 64].
	MaxCascadeDepth int `yaml:"max_cascade_depth"`

	// InitialCapacity preallocates each collection.
	InitialCapacity int `yaml:"initial_capacity"`
}

// Config converts c to a [store.Config].
func (c StoreConfig) Config() store.Config {
	return store.Config{
		MaxCascadeDepth: c.MaxCascadeDepth,
		InitialCapacity: c.InitialCapacity,
	}
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	sc := store.DefaultConfig()
	return &Config{
		LogLevel:  LogInfo,
		LogFormat: FormatText,
		Store: StoreConfig{
			MaxCascadeDepth: sc.MaxCascadeDepth,
			InitialCapacity: sc.InitialCapacity,
		},
	}
}
