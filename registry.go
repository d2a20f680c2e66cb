package depot

import (
	"iter"

	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
	"go.uber.org/zap"
)

var _ Registry = &registry{}

// registry keeps one independent storage per component type. A pointer obtained
// from one storage never pins another, so a system can read Velocity while it
// writes Position for the same entity.
type registry struct {
	lockDepth  int
	schema     table.Schema
	allocator  *EntityAllocator
	rows       map[Component]uint32
	storages   []Slots
	signatures []mask.Mask
	opQueue    opQueue
}

func newRegistry(schema table.Schema) Registry {
	return &registry{
		schema:    schema,
		allocator: newEntityAllocator(),
		rows:      make(map[Component]uint32),
		opQueue:   newOpQueue(),
	}
}

// RegisterComponent binds a component to a specific storage implementation.
// It must be called before the component is first added to an entity of the
// registry, or used as a row index. Reads such as Has, Lookup and queries do not
// register the component.
func RegisterComponent[T any](r Registry, c AccessibleComponent[T], storage ComponentStorage[T]) error {
	reg := r.(*registry)
	if reg.Locked() {
		return LockedRegistryError{}
	}
	if _, found := reg.rows[c]; found {
		return ComponentRegisteredError{Component: c}
	}
	reg.register(c, storage)
	return nil
}

func (r *registry) register(c Component, slots Slots) uint32 {
	r.schema.Register(c)
	row := r.schema.RowIndexFor(c)
	if int(row) >= len(r.storages) {
		storages := make([]Slots, row+1)
		copy(storages, r.storages)
		r.storages = storages
	}
	r.storages[row] = slots
	r.rows[c] = row
	Config.logger.Debug("registered component storage",
		zap.Uint32("row", row),
		zap.String("component", componentName(c)),
	)
	return row
}

func (r *registry) rowFor(c Component) uint32 {
	if row, found := r.rows[c]; found {
		return row
	}
	return r.register(c, c.newSlots(Config.storageKind))
}

func (r *registry) slotsFor(c Component) Slots {
	return r.storages[r.rowFor(c)]
}

// registeredSlots returns the storage of c without registering it
func (r *registry) registeredSlots(c Component) (Slots, bool) {
	row, found := r.rows[c]
	if !found {
		return nil, false
	}
	return r.storages[row], true
}

func (r *registry) RowIndexFor(c Component) uint32 {
	return r.rowFor(c)
}

func (r *registry) signature(e Entity) mask.Mask {
	var sig mask.Mask
	if int(e) < len(r.signatures) {
		sig = r.signatures[e]
	}
	return sig
}

func (r *registry) ensureSignature(e Entity) {
	if int(e) < len(r.signatures) {
		return
	}
	if int(e) < cap(r.signatures) {
		r.signatures = r.signatures[:int(e)+1]
		return
	}
	// Grow by doubling or to fit e, whichever is larger
	newCap := max(int(e)+1, 2*cap(r.signatures))
	signatures := make([]mask.Mask, int(e)+1, newCap)
	copy(signatures, r.signatures)
	r.signatures = signatures
}

func (r *registry) CreateEntity() Entity {
	e := r.allocator.Alloc()
	for _, slots := range r.storages {
		if slots != nil {
			slots.Free(e)
		}
	}
	r.ensureSignature(e)
	var empty mask.Mask
	r.signatures[e] = empty
	return e
}

func (r *registry) NewEntities(n int, components ...Component) []Entity {
	entities := make([]Entity, n)
	for i := range entities {
		e := r.CreateEntity()
		for _, c := range components {
			r.AddComponent(e, c)
		}
		entities[i] = e
	}
	return entities
}

// DeleteEntity releases the identity and scrubs the entity from every storage
func (r *registry) DeleteEntity(e Entity) {
	r.allocator.Free(e)
	for _, slots := range r.storages {
		if slots != nil {
			slots.Free(e)
		}
	}
	if int(e) < len(r.signatures) {
		var empty mask.Mask
		r.signatures[e] = empty
	}
}

func (r *registry) Alive(e Entity) bool {
	return r.allocator.Alive(e)
}

func (r *registry) Len() int {
	return r.allocator.Len()
}

func (r *registry) Entities() iter.Seq[Entity] {
	return r.allocator.Entities()
}

// AddComponent attaches c to e and panics with EntityNotAliveError if e is not live
func (r *registry) AddComponent(e Entity, c Component) {
	if !r.Alive(e) {
		panic(EntityNotAliveError{Entity: e})
	}
	row := r.rowFor(c)
	r.storages[row].Alloc(e)
	r.ensureSignature(e)
	r.signatures[e].Mark(row)
}

func (r *registry) RemoveComponent(e Entity, c Component) {
	row, found := r.rows[c]
	if !found {
		return
	}
	r.storages[row].Free(e)
	if int(e) < len(r.signatures) {
		r.signatures[e].Unmark(row)
	}
}

func (r *registry) HasComponent(e Entity, c Component) bool {
	slots, found := r.registeredSlots(c)
	return found && slots.Has(e)
}

func (r *registry) Locked() bool {
	return r.lockDepth > 0
}

// Lock defers the Enqueue operations until the matching Unlock. Locks nest.
func (r *registry) Lock() {
	r.lockDepth++
}

// Unlock releases one lock and drains the operation queue once the last lock is released
func (r *registry) Unlock() {
	if r.lockDepth == 0 {
		return
	}
	r.lockDepth--
	if r.lockDepth == 0 {
		r.processOperationQueue()
	}
}

func (r *registry) EnqueueNewEntities(n int, components ...Component) {
	if !r.Locked() {
		r.NewEntities(n, components...)
		return
	}
	r.opQueue.enqueueOp(operation{
		typ:    opCreate,
		amount: n,
		comps:  components,
	})
}

func (r *registry) EnqueueDeleteEntities(entities ...Entity) {
	if !r.Locked() {
		for _, e := range entities {
			r.DeleteEntity(e)
		}
		return
	}
	r.opQueue.EnqueueDestroy(entities)
}

// EnqueueAddComponent is ignored for entities that are not live when it is applied
func (r *registry) EnqueueAddComponent(e Entity, c Component) {
	if !r.Locked() {
		if r.Alive(e) {
			r.AddComponent(e, c)
		}
		return
	}
	r.opQueue.EnqueueComponentOp(opAddComponent, e, c)
}

func (r *registry) EnqueueRemoveComponent(e Entity, c Component) {
	if !r.Locked() {
		r.RemoveComponent(e, c)
		return
	}
	r.opQueue.EnqueueComponentOp(opRemoveComponent, e, c)
}
