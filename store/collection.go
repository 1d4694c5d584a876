package store

import "slices"

// collection is an insertion-ordered set of entities of one type.
type collection struct {
	entities []Entity
	index    map[string]int
}

func newCollection(capacity int) *collection {
	return &collection{
		entities: make([]Entity, 0, capacity),
		index:    make(map[string]int, capacity),
	}
}

func (c *collection) get(id string) (Entity, bool) {
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return c.entities[i], true
}

func (c *collection) add(e Entity) {
	c.index[e.EntityID()] = len(c.entities)
	c.entities = append(c.entities, e)
}

// remove deletes id and shifts later positions down by one.
func (c *collection) remove(id string) (Entity, bool) {
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	e := c.entities[i]
	c.entities = slices.Delete(c.entities, i, i+1)
	delete(c.index, id)
	for j := i; j < len(c.entities); j++ {
		c.index[c.entities[j].EntityID()] = j
	}
	return e, true
}

func (c *collection) snapshot() []Entity {
	return slices.Clone(c.entities)
}
