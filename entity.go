package depot

import (
	"iter"
	"math"
)

// Entity is an opaque identity. It carries no data; components are stored against it.
// Identities are unique among live entities and get reused after deletion.
type Entity uint32

const maxEntity = Entity(math.MaxUint32)

// EntityAllocator hands out and reclaims entity identities.
//
// Released identities go into a set rather than a freelist stack so that walking
// the live identities stays a simple ascending skip-scan over [0, next). The zero
// value is ready to use.
type EntityAllocator struct {
	next Entity
	free map[Entity]struct{}
}

func newEntityAllocator() *EntityAllocator {
	return &EntityAllocator{
		free: make(map[Entity]struct{}),
	}
}

// Alloc returns a released identity if one exists, otherwise the smallest identity never issued.
// It panics with ErrEntityOverflow once the identity space is exhausted.
func (a *EntityAllocator) Alloc() Entity {
	for e := range a.free {
		delete(a.free, e)
		return e
	}
	if a.next == maxEntity {
		panic(ErrEntityOverflow)
	}
	e := a.next
	a.next++
	return e
}

// Free releases an identity for reuse. Releasing an identity twice is a no-op,
// and identities that were never issued are ignored.
func (a *EntityAllocator) Free(e Entity) {
	if e >= a.next {
		return
	}
	if a.free == nil {
		a.free = make(map[Entity]struct{})
	}
	a.free[e] = struct{}{}
}

func (a *EntityAllocator) Alive(e Entity) bool {
	if e >= a.next {
		return false
	}
	_, released := a.free[e]
	return !released
}

// Len returns the number of live identities.
func (a *EntityAllocator) Len() int {
	return int(a.next) - len(a.free)
}

// Entities yields live identities in ascending order.
//
// The sequence holds no snapshot: the allocator state is read as the scan advances,
// so an identity freed before the scan reaches it is skipped and identities issued
// past the current high-water mark are picked up.
func (a *EntityAllocator) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for e := Entity(0); e < a.next; e++ {
			if _, released := a.free[e]; released {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}
