package depot

import (
	"reflect"

	"github.com/TheBitDrifter/table"
)

var _ Component = AccessibleComponent[struct{}]{}

// AccessibleComponent is a typed handle for one component type
// It provides the registry operations for that type
type AccessibleComponent[T any] struct {
	table.ElementType
}

func (c AccessibleComponent[T]) newSlots(kind StorageKind) Slots {
	return newStorageOf[T](kind)
}

func (c AccessibleComponent[T]) storage(r Registry) ComponentStorage[T] {
	return r.(*registry).slotsFor(c).(ComponentStorage[T])
}

// existing returns the storage only if the component is registered with r
func (c AccessibleComponent[T]) existing(r Registry) (ComponentStorage[T], bool) {
	slots, ok := r.(*registry).registeredSlots(c)
	if !ok {
		return nil, false
	}
	return slots.(ComponentStorage[T]), true
}

// must returns the stored component and panics with ComponentNotFoundError if the entity lacks it
func (c AccessibleComponent[T]) must(r Registry, e Entity) *T {
	storage, ok := c.existing(r)
	if !ok {
		panic(ComponentNotFoundError{Entity: e, Type: reflect.TypeFor[T]()})
	}
	return storage.Get(e)
}

// Add allocates a zero valued component for the entity
// If the entity already has the component its value is kept.
// It panics with EntityNotAliveError if the entity is not live.
func (c AccessibleComponent[T]) Add(r Registry, e Entity) {
	r.AddComponent(e, c)
}

// AddWith allocates the component and applies init to the allocated value
func (c AccessibleComponent[T]) AddWith(r Registry, e Entity, init func(*T)) {
	r.AddComponent(e, c)
	init(c.storage(r).Get(e))
}

// Remove frees the component, it is a no-op when the entity lacks it
func (c AccessibleComponent[T]) Remove(r Registry, e Entity) {
	r.RemoveComponent(e, c)
}

func (c AccessibleComponent[T]) Has(r Registry, e Entity) bool {
	return r.HasComponent(e, c)
}

// Get returns a copy of the component value and panics if the entity lacks it
func (c AccessibleComponent[T]) Get(r Registry, e Entity) T {
	return *c.must(r, e)
}

// GetMut returns the stored component and panics if the entity lacks it
func (c AccessibleComponent[T]) GetMut(r Registry, e Entity) *T {
	return c.must(r, e)
}

// Lookup is the tolerant variant of GetMut
func (c AccessibleComponent[T]) Lookup(r Registry, e Entity) (*T, bool) {
	storage, ok := c.existing(r)
	if !ok {
		return nil, false
	}
	return storage.Lookup(e)
}

// Update applies mutate to the stored component and panics if the entity lacks it
func (c AccessibleComponent[T]) Update(r Registry, e Entity, mutate func(*T)) {
	mutate(c.must(r, e))
}

// GetFromCursor retrieves the component for the entity at the cursor position
func (c AccessibleComponent[T]) GetFromCursor(cursor *Cursor) *T {
	return c.GetMut(cursor.registry, cursor.current)
}

// Matching builds a filter that passes when the entity has the component and pred holds
// It fails closed when the component is absent
func (c AccessibleComponent[T]) Matching(pred func(*T) bool) Filter {
	return func(r Registry, e Entity) bool {
		v, ok := c.Lookup(r, e)
		return ok && pred(v)
	}
}
