package store

// Config holds configuration for the Store.
type Config struct {
	// MaxCascadeDepth bounds how many relationship levels a cascading
	// delete may descend. Guards against cyclic registries.
	// Default: 8
	// Max: 64
	MaxCascadeDepth int

	// InitialCapacity preallocates each collection.
	// Default: 64
	InitialCapacity int
}

// DefaultConfig returns sensible defaults for small datasets.
func DefaultConfig() Config {
	return Config{
		MaxCascadeDepth: 8,
		InitialCapacity: 64,
	}
}

// validate ensures config values are within acceptable bounds.
func (c *Config) validate() {
	if c.MaxCascadeDepth < 1 {
		c.MaxCascadeDepth = 8
	}
	if c.MaxCascadeDepth > 64 {
		c.MaxCascadeDepth = 64
	}
	if c.InitialCapacity < 0 {
		c.InitialCapacity = 0
	}
}
