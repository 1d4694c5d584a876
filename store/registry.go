package store

import "slices"

// Relationship links a child type to the parent type it references.
// Children of a deleted parent are found by matching the child's
// ParentKeyAttr check against the parent's ID.
type Relationship struct {
	ParentType string // e.g. "user"
	ChildType  string // e.g. "post"

	// ParentKeyAttr names the child's ParentCheck field holding the
	// parent ID (e.g. "author").
	ParentKeyAttr string
}

// Registry is the ordered set of relationships a store cascades through.
// It is not safe for concurrent registration; build it before use.
type Registry struct {
	relationships []Relationship
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends rel. Registering the same relationship twice is a no-op.
// Registration order is the order a cascade visits child types.
func (r *Registry) Register(rel Relationship) {
	if slices.Contains(r.relationships, rel) {
		return
	}
	r.relationships = append(r.relationships, rel)
}

// ChildrenOf returns the relationships whose parent is parentType, in
// registration order.
func (r *Registry) ChildrenOf(parentType string) []Relationship {
	var out []Relationship
	for _, rel := range r.relationships {
		if rel.ParentType == parentType {
			out = append(out, rel)
		}
	}
	return out
}

// Depth returns the number of levels in the longest chain of relationships,
// e.g. 2 for user -> post -> comment. A type is not revisited within a
// chain, so self-referencing relationships count once.
func (r *Registry) Depth() int {
	var walk func(parentType string, onPath map[string]bool) int
	walk = func(parentType string, onPath map[string]bool) int {
		deepest := 0
		for _, rel := range r.ChildrenOf(parentType) {
			if onPath[rel.ChildType] {
				deepest = max(deepest, 1)
				continue
			}
			onPath[rel.ChildType] = true
			deepest = max(deepest, 1+walk(rel.ChildType, onPath))
			delete(onPath, rel.ChildType)
		}
		return deepest
	}

	depth := 0
	for _, t := range r.Types() {
		depth = max(depth, walk(t, map[string]bool{t: true}))
	}
	return depth
}

// Types returns every entity type mentioned by a relationship, parents first,
// in registration order.
func (r *Registry) Types() []string {
	var types []string
	for _, rel := range r.relationships {
		for _, t := range []string{rel.ParentType, rel.ChildType} {
			if !slices.Contains(types, t) {
				types = append(types, t)
			}
		}
	}
	return types
}
