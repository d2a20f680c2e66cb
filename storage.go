package depot

import "reflect"

var (
	_ ComponentStorage[any] = &VecStorage[any]{}
	_ ComponentStorage[any] = &MapStorage[any]{}
)

// StorageKind selects the storage implementation used for lazily registered components
type StorageKind int

const (
	StorageKindVec StorageKind = iota
	StorageKindMap
)

// VecStorage is the default dense component storage.
//
// Values are indexed directly by entity identity, so access is O(1) at the cost of
// memory proportional to the largest identity stored.
type VecStorage[T any] struct {
	values    []T
	allocated []bool
	count     int
}

func NewVecStorage[T any]() *VecStorage[T] {
	return &VecStorage[T]{}
}

// Alloc marks the slot for e as allocated, growing the backing arrays when needed.
// Allocating an allocated slot keeps its current value.
func (s *VecStorage[T]) Alloc(e Entity) {
	pos := int(e)
	if pos >= len(s.values) {
		s.grow(pos + 1)
	}
	if !s.allocated[pos] {
		s.allocated[pos] = true
		s.count++
	}
}

func (s *VecStorage[T]) grow(neededLen int) {
	if cap(s.values) < neededLen {
		// Grow by doubling or to the needed length, whichever is larger
		newCap := max(neededLen, 2*cap(s.values))
		values := make([]T, len(s.values), newCap)
		copy(values, s.values)
		allocated := make([]bool, len(s.allocated), newCap)
		copy(allocated, s.allocated)
		s.values = values
		s.allocated = allocated
	}
	// Slots past the old length were never written, or were scrubbed on free
	s.values = s.values[:neededLen]
	s.allocated = s.allocated[:neededLen]
}

// Free scrubs the slot back to the zero value and clears its allocation flag.
func (s *VecStorage[T]) Free(e Entity) {
	if !s.Has(e) {
		return
	}
	var zero T
	s.values[e] = zero
	s.allocated[e] = false
	s.count--
}

// Get returns the component for e and panics with ComponentNotFoundError if e has none.
// The pointer stays valid until the storage grows.
func (s *VecStorage[T]) Get(e Entity) *T {
	if !s.Has(e) {
		panic(ComponentNotFoundError{Entity: e, Type: reflect.TypeFor[T]()})
	}
	return &s.values[e]
}

func (s *VecStorage[T]) Lookup(e Entity) (*T, bool) {
	if !s.Has(e) {
		return nil, false
	}
	return &s.values[e], true
}

func (s *VecStorage[T]) Has(e Entity) bool {
	return int(e) < len(s.allocated) && s.allocated[e]
}

func (s *VecStorage[T]) Len() int {
	return s.count
}

// MapStorage is a sparse component storage for components few entities carry.
// Pointers it returns stay valid until the component is freed.
type MapStorage[T any] struct {
	values map[Entity]*T
}

func NewMapStorage[T any]() *MapStorage[T] {
	return &MapStorage[T]{
		values: make(map[Entity]*T),
	}
}

func (s *MapStorage[T]) Alloc(e Entity) {
	if _, ok := s.values[e]; ok {
		return
	}
	s.values[e] = new(T)
}

func (s *MapStorage[T]) Free(e Entity) {
	delete(s.values, e)
}

func (s *MapStorage[T]) Get(e Entity) *T {
	v, ok := s.values[e]
	if !ok {
		panic(ComponentNotFoundError{Entity: e, Type: reflect.TypeFor[T]()})
	}
	return v
}

func (s *MapStorage[T]) Lookup(e Entity) (*T, bool) {
	v, ok := s.values[e]
	return v, ok
}

func (s *MapStorage[T]) Has(e Entity) bool {
	_, ok := s.values[e]
	return ok
}

func (s *MapStorage[T]) Len() int {
	return len(s.values)
}

func newStorageOf[T any](kind StorageKind) ComponentStorage[T] {
	switch kind {
	case StorageKindMap:
		return NewMapStorage[T]()
	default:
		return NewVecStorage[T]()
	}
}
