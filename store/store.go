package store

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"sync"

	"github.com/jacentio/quill/internal/keys"
)

// Reader is the read-only view of a Store.
type Reader interface {
	// Get returns the entity or ErrNotFound.
	Get(entityType, id string) (Entity, error)

	// Scan yields the entities of a type in insertion order.
	Scan(entityType string) iter.Seq[Entity]

	// Len returns the number of entities of a type.
	Len(entityType string) int
}

// Store holds one ordered collection per entity type. Writes are serialized
// by a single lock held for the whole operation, cascades included.
type Store struct {
	mu       sync.RWMutex
	config   Config
	registry *Registry

	collections map[string]*collection

	// unique maps a constraint key to the ref of the entity holding it.
	unique map[string]string
	// uniqueKeys maps an entity ref to the constraint keys it holds.
	uniqueKeys map[string][]string
}

var _ Reader = (*Store)(nil)

// New creates a Store with a collection for each of the given entity types.
func New(config Config, entityTypes ...string) *Store {
	config.validate()
	s := &Store{
		config:      config,
		registry:    NewRegistry(),
		collections: make(map[string]*collection, len(entityTypes)),
		unique:      make(map[string]string),
		uniqueKeys:  make(map[string][]string),
	}
	for _, t := range entityTypes {
		s.collections[t] = newCollection(config.InitialCapacity)
	}
	return s
}

// NewWithRegistry creates a Store with a relationship registry for cascade
// operations. Every type named by the registry gets a collection.
func NewWithRegistry(config Config, registry *Registry, entityTypes ...string) *Store {
	s := New(config, append(registry.Types(), entityTypes...)...)
	s.registry = registry
	return s
}

// Registry returns the relationship registry.
func (s *Store) Registry() *Registry {
	return s.registry
}

// Types returns the entity types held by the store, sorted.
func (s *Store) Types() []string {
	return slices.Sorted(maps.Keys(s.collections))
}

// Insert appends an entity to its collection without parent or unique checks.
func (s *Store) Insert(e Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.collection(e.EntityType())
	if err != nil {
		return err
	}
	if _, exists := c.get(e.EntityID()); exists {
		return fmt.Errorf("insert %s: %w", Ref(e), ErrAlreadyExists)
	}
	c.add(e)
	return nil
}

// Create inserts an entity after validating its parents and unique fields.
// Nothing is written when a check fails.
func (s *Store) Create(e Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.create(e)
}

// CreateAll creates entities in order under one lock. It stops at the first
// failure and returns how many were created before it.
func (s *Store) CreateAll(entities []Entity) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range entities {
		if err := s.create(e); err != nil {
			return i, err
		}
	}
	return len(entities), nil
}

func (s *Store) create(e Entity) error {
	c, err := s.collection(e.EntityType())
	if err != nil {
		return err
	}
	ref := Ref(e)

	// 1. Identity
	if _, exists := c.get(e.EntityID()); exists {
		return fmt.Errorf("create %s: %w", ref, ErrAlreadyExists)
	}

	// 2. Parent checks, in declaration order
	if pr, ok := e.(ParentReferrer); ok {
		for _, check := range pr.ParentChecks() {
			if !s.parentSatisfies(check) {
				return &ParentError{
					Field:      check.Field,
					ParentType: check.ParentType,
					ParentID:   check.ParentID,
				}
			}
		}
	}

	// 3. Unique constraints
	var constraintKeys []string
	if uf, ok := e.(UniqueFielder); ok {
		fields := uf.UniqueFields()
		for _, field := range slices.Sorted(maps.Keys(fields)) {
			key := keys.UniqueConstraint(e.EntityType(), field, fields[field])
			if owner, taken := s.unique[key]; taken {
				return &UniqueError{Field: field, Owner: owner}
			}
			constraintKeys = append(constraintKeys, key)
		}
	}

	// 4. Insert
	c.add(e)
	for _, key := range constraintKeys {
		s.unique[key] = ref
	}
	if len(constraintKeys) > 0 {
		s.uniqueKeys[ref] = constraintKeys
	}
	return nil
}

func (s *Store) parentSatisfies(check ParentCheck) bool {
	c, ok := s.collections[check.ParentType]
	if !ok {
		return false
	}
	parent, ok := c.get(check.ParentID)
	if !ok {
		return false
	}
	return check.Condition == nil || check.Condition(parent)
}

// Get retrieves an entity by type and ID, returning ErrNotFound if missing.
func (s *Store) Get(entityType, id string) (Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.get(entityType, id)
}

func (s *Store) get(entityType, id string) (Entity, error) {
	c, err := s.collection(entityType)
	if err != nil {
		return nil, err
	}
	e, ok := c.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

// Scan returns a restartable sequence over the entities of a type. Each
// iteration walks a snapshot taken when it starts.
func (s *Store) Scan(entityType string) iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		s.mu.RLock()
		c, ok := s.collections[entityType]
		var snap []Entity
		if ok {
			snap = c.snapshot()
		}
		s.mu.RUnlock()

		for _, e := range snap {
			if !yield(e) {
				return
			}
		}
	}
}

// Len returns the number of entities of a type.
func (s *Store) Len(entityType string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.collections[entityType]; ok {
		return len(c.entities)
	}
	return 0
}

// Remove deletes a single entity without cascading and returns it.
func (s *Store) Remove(entityType, id string) (Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.get(entityType, id)
	if err != nil {
		return nil, err
	}
	s.remove(e)
	return e, nil
}

func (s *Store) remove(e Entity) {
	s.collections[e.EntityType()].remove(e.EntityID())
	ref := Ref(e)
	for _, key := range s.uniqueKeys[ref] {
		delete(s.unique, key)
	}
	delete(s.uniqueKeys, ref)
}

// DeleteOptions configures delete behavior.
type DeleteOptions struct {
	// Cascade removes every descendant reachable through the registry.
	Cascade bool
}

// Delete removes an entity and, with Cascade, all of its descendants.
// The whole plan is computed before the first removal, so a failing delete
// writes nothing. Removed entities are returned in removal order, children
// before their parents, the target last.
func (s *Store) Delete(entityType, id string, opts DeleteOptions) ([]Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, err := s.get(entityType, id)
	if err != nil {
		return nil, err
	}

	plan := []Entity{target}
	if opts.Cascade {
		plan, err = s.planCascade(target, 0, make(map[string]bool))
		if err != nil {
			return nil, err
		}
	}

	for _, e := range plan {
		s.remove(e)
	}
	return plan, nil
}

// planCascade orders e's descendants depth-first, in registry order and then
// insertion order, each entity once, followed by e itself.
func (s *Store) planCascade(e Entity, depth int, seen map[string]bool) ([]Entity, error) {
	if depth > s.config.MaxCascadeDepth {
		return nil, fmt.Errorf("%w: %s", ErrCascadeTooDeep, Ref(e))
	}
	seen[Ref(e)] = true

	var plan []Entity
	for _, rel := range s.registry.ChildrenOf(e.EntityType()) {
		for child := range Children(unlocked{s}, rel, e.EntityID()) {
			if seen[Ref(child)] {
				continue
			}
			sub, err := s.planCascade(child, depth+1, seen)
			if err != nil {
				return nil, err
			}
			plan = append(plan, sub...)
		}
	}
	return append(plan, e), nil
}

// View runs fn with the read lock held so that everything fn reads comes
// from one state. fn must not write to the store.
func (s *Store) View(fn func(Reader) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(unlocked{s})
}

func (s *Store) collection(entityType string) (*collection, error) {
	c, ok := s.collections[entityType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, entityType)
	}
	return c, nil
}

// unlocked reads a Store whose lock the caller already holds.
type unlocked struct{ s *Store }

func (u unlocked) Get(entityType, id string) (Entity, error) {
	return u.s.get(entityType, id)
}

func (u unlocked) Scan(entityType string) iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		c, ok := u.s.collections[entityType]
		if !ok {
			return
		}
		for _, e := range c.entities {
			if !yield(e) {
				return
			}
		}
	}
}

func (u unlocked) Len(entityType string) int {
	if c, ok := u.s.collections[entityType]; ok {
		return len(c.entities)
	}
	return 0
}

// Children yields the entities of rel.ChildType whose rel.ParentKeyAttr
// foreign key equals parentID, in insertion order.
func Children(r Reader, rel Relationship, parentID string) iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for child := range r.Scan(rel.ChildType) {
			if id, ok := ParentID(child, rel.ParentKeyAttr); ok && id == parentID {
				if !yield(child) {
					return
				}
			}
		}
	}
}

// ParentID returns the value of the named foreign key of e.
func ParentID(e Entity, field string) (string, bool) {
	pr, ok := e.(ParentReferrer)
	if !ok {
		return "", false
	}
	for _, check := range pr.ParentChecks() {
		if check.Field == field {
			return check.ParentID, true
		}
	}
	return "", false
}
