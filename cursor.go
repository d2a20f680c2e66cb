package depot

import "iter"

var _ iCursor = &Cursor{}

// Cursor walks the entities matching a query while holding the registry lock.
// Operations queued with the registry's Enqueue methods during the walk are applied
// when the walk finishes.
type Cursor struct {
	// The query to filter entities
	query Query

	// The registry to iterate over
	registry Registry

	// Current iteration state
	current     Entity
	scan        Entity
	initialized bool
}

func newCursor(query Query, registry Registry) *Cursor {
	return &Cursor{
		query:    query,
		registry: registry,
	}
}

// Next advances to the next matching entity. When the walk is exhausted the cursor
// resets, unlocks the registry and returns false.
func (c *Cursor) Next() bool {
	if !c.initialized {
		c.initialize()
	}
	allocator := c.registry.(*registry).allocator
	for c.scan < allocator.next {
		e := c.scan
		c.scan++
		if allocator.Alive(e) && c.query.Check(c.registry, e) {
			c.current = e
			return true
		}
	}
	c.Reset()
	return false
}

// Entity returns the entity at the cursor position
func (c *Cursor) Entity() Entity {
	return c.current
}

func (c *Cursor) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		c.initialize()
		defer c.Reset()
		for e := range c.query.Iter(c.registry) {
			c.current = e
			if !yield(e) {
				return
			}
		}
	}
}

func (c *Cursor) initialize() {
	if c.initialized {
		return
	}
	c.registry.Lock()
	c.scan = 0
	c.current = 0
	c.initialized = true
}

// Reset abandons the walk. Any operations queued during it are applied.
func (c *Cursor) Reset() {
	if !c.initialized {
		return
	}
	c.scan = 0
	c.current = 0
	c.initialized = false
	c.registry.Unlock()
}

// TotalMatched counts the matching entities without moving the cursor
func (c *Cursor) TotalMatched() int {
	return c.query.Count(c.registry)
}
