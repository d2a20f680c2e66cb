/*
Package depot provides an Entity-Component-System (ECS) runtime for games and simulations.

Depot keeps one storage per component type, indexed directly by entity identity, so a
system can hold mutable access to one component type while reading another for the
same entity. Systems communicate through a deferred event bus and report how often
they want to run.

Core Concepts:

  - Entity: A recyclable numeric identity.
  - Component: A plain value type with its own storage.
  - Registry: The entities of one world and their component storages.
  - Query: A filter chain over component presence and component values.
  - Dispatcher: A deferred event bus whose subscriptions do not keep handlers alive.
  - Scheduler: Runs systems in order, each on the RefreshPeriod it reports.

Basic Usage:

	schema := table.Factory.NewSchema()
	registry := depot.Factory.NewRegistry(schema)

	position := depot.FactoryNewComponent[Position]()
	velocity := depot.FactoryNewComponent[Velocity]()

	registry.NewEntities(100, position, velocity)

	query := depot.Factory.NewQuery().With(position, velocity)
	cursor := depot.Factory.NewCursor(query, registry)

	for cursor.Next() {
		pos := position.GetFromCursor(cursor)
		vel := velocity.GetFromCursor(cursor)
		pos.X += vel.X
		pos.Y += vel.Y
	}
*/
package depot
