package store

import (
	"errors"
	"fmt"
)

var (
	// ErrParentNotFound is returned when a referenced parent doesn't exist or fails its condition.
	ErrParentNotFound = errors.New("quill: parent entity not found")

	// ErrNotFound is returned when an entity doesn't exist.
	ErrNotFound = errors.New("quill: entity not found")

	// ErrAlreadyExists is returned when inserting an entity with an existing ID.
	ErrAlreadyExists = errors.New("quill: entity already exists")

	// ErrDuplicateValue is returned when a unique constraint is violated.
	ErrDuplicateValue = errors.New("quill: duplicate value for unique field")

	// ErrUnknownType is returned for entity types the store was not built with.
	ErrUnknownType = errors.New("quill: unknown entity type")

	// ErrCascadeTooDeep is returned when a cascade exceeds Config.MaxCascadeDepth.
	ErrCascadeTooDeep = errors.New("quill: cascade exceeds maximum depth")
)

// ParentError reports which foreign key failed its parent check.
type ParentError struct {
	Field      string
	ParentType string
	ParentID   string
}

func (e *ParentError) Error() string {
	return fmt.Sprintf("%s: %s %s#%s", ErrParentNotFound, e.Field, e.ParentType, e.ParentID)
}

func (e *ParentError) Unwrap() error { return ErrParentNotFound }

// UniqueError reports which unique field collided and the entity holding the value.
type UniqueError struct {
	Field string
	Owner string
}

func (e *UniqueError) Error() string {
	return fmt.Sprintf("%s: %s already used by %s", ErrDuplicateValue, e.Field, e.Owner)
}

func (e *UniqueError) Unwrap() error { return ErrDuplicateValue }
