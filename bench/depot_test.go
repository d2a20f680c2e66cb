package bench

import (
	"testing"

	"github.com/TheBitDrifter/depot"
	"github.com/TheBitDrifter/table"
)

const (
	nPos    = 9000
	nPosVel = 1000
)

type Position struct {
	X float64
	Y float64
}

type Velocity struct {
	X float64
	Y float64
}

func BenchmarkIterDepotCursor(b *testing.B) {
	b.StopTimer()

	velocity := depot.FactoryNewComponent[Velocity]()
	position := depot.FactoryNewComponent[Position]()
	schema := table.Factory.NewSchema()
	registry := depot.Factory.NewRegistry(schema)

	registry.NewEntities(nPos, position)
	registry.NewEntities(nPosVel, position, velocity)

	query := depot.Factory.NewQuery().With(velocity, position)
	cursor := depot.Factory.NewCursor(query, registry)

	b.StartTimer()

	for i := 0; i < b.N; i++ {
		for cursor.Next() {
			pos := position.GetFromCursor(cursor)
			vel := velocity.GetFromCursor(cursor)

			pos.X += vel.X
			pos.Y += vel.Y
		}
	}
}

func BenchmarkIterDepotQuery(b *testing.B) {
	b.StopTimer()

	velocity := depot.FactoryNewComponent[Velocity]()
	position := depot.FactoryNewComponent[Position]()
	schema := table.Factory.NewSchema()
	registry := depot.Factory.NewRegistry(schema)

	registry.NewEntities(nPos, position)
	registry.NewEntities(nPosVel, position, velocity)

	query := depot.Factory.NewQuery().With(velocity, position)

	b.StartTimer()

	for i := 0; i < b.N; i++ {
		for e := range query.Iter(registry) {
			pos := position.GetMut(registry, e)
			vel := velocity.GetMut(registry, e)

			pos.X += vel.X
			pos.Y += vel.Y
		}
	}
}

func BenchmarkDepotCreateDelete(b *testing.B) {
	b.StopTimer()

	velocity := depot.FactoryNewComponent[Velocity]()
	position := depot.FactoryNewComponent[Position]()
	schema := table.Factory.NewSchema()
	registry := depot.Factory.NewRegistry(schema)

	b.StartTimer()

	for i := 0; i < b.N; i++ {
		entities := registry.NewEntities(nPosVel, position, velocity)
		registry.EnqueueDeleteEntities(entities...)
	}
}
