package depot

import "go.uber.org/zap"

type operation struct {
	typ      operationType
	amount   int
	comps    []Component
	entities []Entity
}

type operationType int

const (
	opNoop operationType = iota - 1
	opCreate
	opDestroy
	opAddComponent
	opRemoveComponent
)

type opKey struct {
	entity Entity
	comp   Component
}

type opQueue struct {
	createOps      []operation
	componentOps   []operation
	destroyOps     []operation
	pendingDestroy map[Entity]struct{}
	pendingMods    map[opKey]int
}

func newOpQueue() opQueue {
	return opQueue{
		pendingDestroy: make(map[Entity]struct{}),
		pendingMods:    make(map[opKey]int),
	}
}

func (q *opQueue) enqueueOp(op operation) {
	switch op.typ {
	case opCreate:
		q.createOps = append(q.createOps, op)
	case opDestroy:
		q.destroyOps = append(q.destroyOps, op)
	case opAddComponent, opRemoveComponent:
		q.componentOps = append(q.componentOps, op)
	}
}

func (q *opQueue) empty() bool {
	return len(q.createOps) == 0 &&
		len(q.componentOps) == 0 &&
		len(q.destroyOps) == 0
}

func (r *registry) processOperationQueue() {
	q := &r.opQueue
	if q.empty() {
		return
	}
	created, modified, destroyed := 0, 0, 0

	// Process creates first
	for _, op := range q.createOps {
		r.NewEntities(op.amount, op.comps...)
		created += op.amount
	}

	// Process component modifications
	for _, op := range q.componentOps {
		entity := op.entities[0]

		// Skip cancelled ops and entities deleted directly while locked
		if op.typ == opNoop || !r.Alive(entity) {
			continue
		}
		switch op.typ {
		case opAddComponent:
			r.AddComponent(entity, op.comps[0])
		case opRemoveComponent:
			r.RemoveComponent(entity, op.comps[0])
		}
		modified++
	}

	// Process destroys last
	for _, op := range q.destroyOps {
		for _, entity := range op.entities {
			if !r.Alive(entity) {
				continue
			}
			r.DeleteEntity(entity)
			destroyed++
		}
	}

	// Clear all queues
	q.createOps = q.createOps[:0]
	q.componentOps = q.componentOps[:0]
	q.destroyOps = q.destroyOps[:0]
	clear(q.pendingDestroy)
	clear(q.pendingMods)

	Config.logger.Debug("drained operation queue",
		zap.Int("created", created),
		zap.Int("modified", modified),
		zap.Int("destroyed", destroyed),
	)
}

func (q *opQueue) EnqueueDestroy(entities []Entity) {
	// Filter out already queued entities
	var newEntities []Entity
	for _, entity := range entities {
		if _, exists := q.pendingDestroy[entity]; exists {
			continue
		}
		newEntities = append(newEntities, entity)
		q.pendingDestroy[entity] = struct{}{}

		// Cancel pending component operations for this entity
		for key, idx := range q.pendingMods {
			if key.entity == entity {
				q.componentOps[idx].typ = opNoop
				delete(q.pendingMods, key)
			}
		}
	}

	if len(newEntities) > 0 {
		q.enqueueOp(operation{
			typ:      opDestroy,
			entities: newEntities,
		})
	}
}

func (q *opQueue) EnqueueComponentOp(typ operationType, entity Entity, comp Component) {
	// If entity is pending destroy, ignore component operations
	if _, isDestroyed := q.pendingDestroy[entity]; isDestroyed {
		return
	}

	// A later operation on the same entity and component replaces the earlier one
	key := opKey{entity: entity, comp: comp}
	if existingIdx, exists := q.pendingMods[key]; exists {
		q.componentOps[existingIdx].typ = typ
		return
	}

	q.pendingMods[key] = len(q.componentOps)
	q.enqueueOp(operation{
		typ:      typ,
		entities: []Entity{entity},
		comps:    []Component{comp},
	})
}
