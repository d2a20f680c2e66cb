package depot

import "github.com/TheBitDrifter/table"

type factory struct{}

var Factory factory

func (f factory) NewRegistry(schema table.Schema) Registry {
	return newRegistry(schema)
}

func (f factory) NewEntityAllocator() *EntityAllocator {
	return newEntityAllocator()
}

func (f factory) NewQuery() Query {
	return newQuery()
}

func (f factory) NewCursor(query Query, registry Registry) *Cursor {
	return newCursor(query, registry)
}

func (f factory) NewDispatcher() *Dispatcher {
	return newDispatcher()
}

func (f factory) NewScheduler() *Scheduler {
	return newScheduler()
}

func FactoryNewComponent[T any]() AccessibleComponent[T] {
	return AccessibleComponent[T]{
		ElementType: table.FactoryNewElementType[T](),
	}
}

func FactoryNewCache[T any](cap int) Cache[T] {
	return &SimpleCache[T]{
		itemIndices: make(map[string]int),
		maxCapacity: cap,
	}
}
