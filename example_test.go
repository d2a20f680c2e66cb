package depot_test

import (
	"fmt"
	"time"

	"github.com/TheBitDrifter/depot"
	"github.com/TheBitDrifter/table"
)

// Position is a simple component for 2D coordinates
type Position struct {
	X float64
	Y float64
}

// Velocity is a simple component for 2D movement
type Velocity struct {
	X float64
	Y float64
}

// Name is a simple component for entity identification
type Name struct {
	Value string
}

// Arrived is published when a named entity crosses the finish line
type Arrived struct {
	Name string
}

type moveSystem struct {
	registry depot.Registry
	position depot.AccessibleComponent[Position]
	velocity depot.AccessibleComponent[Velocity]
	name     depot.AccessibleComponent[Name]
	events   *depot.Dispatcher
}

func (s *moveSystem) Name() string { return "move" }

func (s *moveSystem) Run(time.Time) (depot.RefreshPeriod, error) {
	query := depot.Factory.NewQuery().With(s.position, s.velocity)
	cursor := depot.Factory.NewCursor(query, s.registry)
	for cursor.Next() {
		pos := s.position.GetFromCursor(cursor)
		vel := s.velocity.GetFromCursor(cursor)
		pos.X += vel.X
		pos.Y += vel.Y
		if pos.X >= 12 {
			if name, ok := s.name.Lookup(s.registry, cursor.Entity()); ok {
				depot.Push(s.events, Arrived{Name: name.Value})
			}
			s.registry.EnqueueRemoveComponent(cursor.Entity(), s.velocity)
		}
	}
	return depot.EveryTime(), nil
}

type announcer struct {
	arrivals []string
}

func (a *announcer) onArrived(ev Arrived) {
	a.arrivals = append(a.arrivals, ev.Name)
	fmt.Printf("%s arrived\n", ev.Name)
}

// Example shows basic depot usage with entities, queries, systems and events
func Example_basic() {
	schema := table.Factory.NewSchema()
	registry := depot.Factory.NewRegistry(schema)

	position := depot.FactoryNewComponent[Position]()
	velocity := depot.FactoryNewComponent[Velocity]()
	name := depot.FactoryNewComponent[Name]()

	registry.NewEntities(5, position)
	registry.NewEntities(3, position, velocity)

	player := registry.CreateEntity()
	name.AddWith(registry, player, func(n *Name) { n.Value = "Player" })
	position.AddWith(registry, player, func(p *Position) { p.X, p.Y = 10, 20 })
	velocity.AddWith(registry, player, func(v *Velocity) { v.X, v.Y = 1, 2 })

	query := depot.Factory.NewQuery().With(position, velocity)
	fmt.Printf("Found %d entities with position and velocity\n", query.Count(registry))

	events := depot.Factory.NewDispatcher()
	depot.RegisterEvent[Arrived](events)
	a := &announcer{}
	depot.Connect(events, a, (*announcer).onArrived)

	scheduler := depot.Factory.NewScheduler()
	_ = scheduler.AddSystem(&moveSystem{
		registry: registry,
		position: position,
		velocity: velocity,
		name:     name,
		events:   events,
	})

	for i := 0; i < 3; i++ {
		if _, err := scheduler.Update(events); err != nil {
			fmt.Println(err)
			return
		}
	}

	pos := position.Get(registry, player)
	fmt.Printf("Player at (%.1f, %.1f), moving: %v\n", pos.X, pos.Y, velocity.Has(registry, player))
	fmt.Printf("%d arrivals\n", len(a.arrivals))

	// Output:
	// Found 4 entities with position and velocity
	// Player arrived
	// Player at (12.0, 24.0), moving: false
	// 1 arrivals
}

// Example_queries shows how to compose query filters
func Example_queries() {
	schema := table.Factory.NewSchema()
	registry := depot.Factory.NewRegistry(schema)

	position := depot.FactoryNewComponent[Position]()
	velocity := depot.FactoryNewComponent[Velocity]()
	name := depot.FactoryNewComponent[Name]()

	registry.NewEntities(3, position)
	registry.NewEntities(3, position, velocity)
	registry.NewEntities(3, position, name)
	registry.NewEntities(3, position, velocity, name)

	andQuery := depot.Factory.NewQuery().With(position, velocity)
	fmt.Printf("AND query matched %d entities\n", andQuery.Count(registry))

	orQuery := depot.Factory.NewQuery().Where(depot.Any(velocity, name))
	fmt.Printf("OR query matched %d entities\n", orQuery.Count(registry))

	notQuery := depot.Factory.NewQuery().With(position).Without(velocity)
	fmt.Printf("NOT query matched %d entities\n", notQuery.Count(registry))

	fast := depot.Factory.NewQuery().
		With(position).
		Where(velocity.Matching(func(v *Velocity) bool { return v.X > 0 }))
	fmt.Printf("Moving right: %d entities\n", fast.Count(registry))

	// Output:
	// AND query matched 6 entities
	// OR query matched 9 entities
	// NOT query matched 6 entities
	// Moving right: 0 entities
}
