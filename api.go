package depot

import (
	"iter"
	"time"
)

// Registry owns the entity allocator and one component storage per registered component type
type Registry interface {
	CreateEntity() Entity
	NewEntities(int, ...Component) []Entity
	EnqueueNewEntities(int, ...Component)
	DeleteEntity(Entity)
	EnqueueDeleteEntities(...Entity)
	Alive(Entity) bool
	Len() int
	Entities() iter.Seq[Entity]
	AddComponent(Entity, Component)
	RemoveComponent(Entity, Component)
	EnqueueAddComponent(Entity, Component)
	EnqueueRemoveComponent(Entity, Component)
	HasComponent(Entity, Component) bool
	RowIndexFor(Component) uint32
	Locked() bool
	Lock()
	Unlock()
}

// Slots is the type-erased half of a component storage. The registry only needs these
// operations to attach and scrub components without knowing their concrete type.
type Slots interface {
	Alloc(Entity)
	Free(Entity)
	Has(Entity) bool
	Len() int
}

// ComponentStorage maps entity identities to values of one component type
type ComponentStorage[T any] interface {
	Slots
	Get(Entity) *T
	Lookup(Entity) (*T, bool)
}

// Filter is a single query predicate evaluated against a registry and entity
type Filter func(r Registry, e Entity) bool

type Query interface {
	With(components ...Component) Query
	Without(components ...Component) Query
	Where(filters ...Filter) Query
	Or(filters ...Filter) Query
	Not(filter Filter) Query
	Check(r Registry, e Entity) bool
	Iter(r Registry) iter.Seq[Entity]
	Collect(r Registry) []Entity
	Count(r Registry) int
	Len() int
}

// System is an update routine driven by a Scheduler
type System interface {
	// Name must be unique within a scheduler and constant for the system's lifetime.
	Name() string
	// Run executes the system and reports when it wants to run next.
	Run(now time.Time) (RefreshPeriod, error)
}

type iCursor interface {
	Entities() iter.Seq[Entity]
	Next() bool
	Entity() Entity
}

type Cache[T any] interface {
	GetIndex(string) (int, bool)
	GetItem(int) *T
	Register(string, T) (int, error)
	Len() int
}
