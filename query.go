package depot

import (
	"iter"

	"github.com/TheBitDrifter/mask"
	iter_util "github.com/TheBitDrifter/util/iter"
)

var _ Query = &query{}

// query is an ordered filter chain. It owns no entities and is evaluated fresh on every walk.
type query struct {
	filters []Filter
}

func newQuery() Query {
	return &query{}
}

// With requires every listed component
func (q *query) With(components ...Component) Query {
	q.filters = append(q.filters, And(components...))
	return q
}

// Without rejects entities carrying any of the listed components
func (q *query) Without(components ...Component) Query {
	q.filters = append(q.filters, None(components...))
	return q
}

func (q *query) Where(filters ...Filter) Query {
	q.filters = append(q.filters, filters...)
	return q
}

func (q *query) Or(filters ...Filter) Query {
	q.filters = append(q.filters, Or(filters...))
	return q
}

func (q *query) Not(filter Filter) Query {
	q.filters = append(q.filters, Not(filter))
	return q
}

// Check folds the filters left to right and stops at the first failure.
// An empty query matches every entity.
func (q *query) Check(r Registry, e Entity) bool {
	for _, filter := range q.filters {
		if !filter(r, e) {
			return false
		}
	}
	return true
}

// Iter walks the live entities in ascending order and yields those passing Check.
//
// No snapshot is taken. Deleting the yielded entity or any earlier one is safe;
// deleting a later one drops it from the walk. Collecting victims and deleting
// them after the walk, or using a Cursor with EnqueueDeleteEntities, is the
// supported way to remove entities found by a query.
func (q *query) Iter(r Registry) iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for e := range r.Entities() {
			if q.Check(r, e) && !yield(e) {
				return
			}
		}
	}
}

func (q *query) Collect(r Registry) []Entity {
	return iter_util.Collect(q.Iter(r))
}

func (q *query) Count(r Registry) int {
	n := 0
	for range q.Iter(r) {
		n++
	}
	return n
}

// Len returns the number of filters in the chain
func (q *query) Len() int {
	return len(q.filters)
}

// WhereComponent appends a value predicate on c. Entities lacking c fail it.
func WhereComponent[T any](q Query, c AccessibleComponent[T], pred func(*T) bool) Query {
	return q.Where(c.Matching(pred))
}

// And passes entities carrying every listed component
func And(components ...Component) Filter {
	return maskFilter(components, func(sig, nodeMask mask.Mask, marked int) bool {
		return marked == len(components) && sig.ContainsAll(nodeMask)
	})
}

// Any passes entities carrying at least one listed component
func Any(components ...Component) Filter {
	return maskFilter(components, func(sig, nodeMask mask.Mask, marked int) bool {
		return marked > 0 && sig.ContainsAny(nodeMask)
	})
}

// None passes entities carrying none of the listed components
func None(components ...Component) Filter {
	return maskFilter(components, func(sig, nodeMask mask.Mask, marked int) bool {
		return marked == 0 || sig.ContainsNone(nodeMask)
	})
}

// Or passes when any filter passes, checked in order
func Or(filters ...Filter) Filter {
	return func(r Registry, e Entity) bool {
		for _, filter := range filters {
			if filter(r, e) {
				return true
			}
		}
		return false
	}
}

func Not(filter Filter) Filter {
	return func(r Registry, e Entity) bool {
		return !filter(r, e)
	}
}

// maskFilter compares the entity signature against a mask of the listed components
// registered with the registry; marked is how many of them are. Components that were
// never registered are carried by no entity. The mask is rebuilt when the filter meets
// a different registry or the registry gains component types.
func maskFilter(components []Component, match func(sig, nodeMask mask.Mask, marked int) bool) Filter {
	var (
		built      *registry
		registered int
		marked     int
		nodeMask   mask.Mask
	)
	return func(r Registry, e Entity) bool {
		reg := r.(*registry)
		if reg != built || len(reg.rows) != registered {
			var m mask.Mask
			marked = 0
			for _, comp := range components {
				row, found := reg.rows[comp]
				if !found {
					continue
				}
				m.Mark(row)
				marked++
			}
			nodeMask = m
			built = reg
			registered = len(reg.rows)
		}
		return match(reg.signature(e), nodeMask, marked)
	}
}
