package store

import "github.com/jacentio/quill/internal/keys"

// Entity is the base interface for all storable types.
type Entity interface {
	// EntityType returns the entity type name (e.g., "post").
	EntityType() string

	// EntityID returns the identifier, unique within the entity type.
	EntityID() string
}

// ParentReferrer is implemented by entities that hold foreign keys.
type ParentReferrer interface {
	// ParentChecks returns one check per foreign key. Create fails if any
	// referenced parent is missing or does not satisfy its Condition.
	ParentChecks() []ParentCheck
}

// ParentCheck defines a parent existence check run before insert.
type ParentCheck struct {
	// Field is the foreign key field on the child (e.g., "author").
	Field string

	// ParentType is the referenced entity type.
	ParentType string

	// ParentID is the referenced identifier.
	ParentID string

	// Condition is an optional predicate the parent must satisfy.
	// If nil, existence alone passes the check.
	Condition func(parent Entity) bool
}

// UniqueFielder is implemented by entities with unique field constraints.
type UniqueFielder interface {
	// UniqueFields returns field name to value mappings for fields
	// that must be unique within the entity type.
	UniqueFields() map[string]string
}

// Ref returns the type-qualified reference of an entity (e.g., "user#uuid").
func Ref(e Entity) string {
	return keys.EntityRef(e.EntityType(), e.EntityID())
}
