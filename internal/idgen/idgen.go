// Package idgen allocates identifiers for new entities.
package idgen

import "github.com/google/uuid"

// Generator produces identifiers that never repeat within a process.
type Generator interface {
	Next() string
}

// UUID generates random (version 4) UUIDs.
type UUID struct{}

// Next implements [Generator].
func (UUID) Next() string {
	return uuid.NewString()
}

// Func adapts a function to [Generator].
type Func func() string

// Next implements [Generator].
func (f Func) Next() string {
	return f()
}
