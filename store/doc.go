// Package store provides an in-memory entity store with referential integrity.
//
// Entities live in one insertion-ordered collection per entity type and
// reference each other by identifier, never by pointer. The store keeps
// those references valid: children are checked against their parents on
// create, and deletes can cascade through a [Registry] of relationships.
//
// # Key Features
//
//   - Parent validation on create, with optional conditions on the parent
//   - Unique field constraints within an entity type
//   - Cascading deletes planned before the first removal
//   - Consistent multi-step reads via [Store.View]
//
// # Entity Interfaces
//
// All entities must implement the [Entity] interface:
//
//	type Entity interface {
//	    EntityType() string
//	    EntityID() string
//	}
//
// Child entities should also implement [ParentReferrer]:
//
//	type ParentReferrer interface {
//	    ParentChecks() []ParentCheck
//	}
//
// Entities with unique constraints implement [UniqueFielder]:
//
//	type UniqueFielder interface {
//	    UniqueFields() map[string]string
//	}
//
// # Concurrency
//
// Every write holds the store's lock from its first check to its last
// removal, so readers never observe half of a cascade. Reads share the lock.
//
// # Errors
//
// The package defines domain-specific errors:
//
//   - [ErrNotFound] - entity doesn't exist
//   - [ErrParentNotFound] - parent validation failed (see [ParentError])
//   - [ErrAlreadyExists] - entity with ID already exists
//   - [ErrDuplicateValue] - unique constraint violated (see [UniqueError])
//   - [ErrUnknownType] - no collection for the entity type
//   - [ErrCascadeTooDeep] - cascade deeper than [Config.MaxCascadeDepth]
package store
