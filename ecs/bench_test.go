package ecs_test

import (
	"testing"

	"github.com/plus3/entwine/ecs"
)

func BenchmarkAddEntity(b *testing.B) {
	engine := ecs.NewEngine()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		entity := engine.CreateEntity()
		entity.Add(&Position{X: 1, Y: 2}).Add(&Velocity{DX: 0.5})
		_ = engine.AddEntity(entity)
	}
}

func BenchmarkComponentChurn(b *testing.B) {
	engine := ecs.NewEngine()
	engine.EntitiesFor(ecs.Require(ecs.Type[Position](), ecs.Type[Velocity]()).Get())

	entity := engine.CreateEntity()
	entity.Add(&Position{})
	_ = engine.AddEntity(entity)

	velocityType := ecs.Type[Velocity]()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		entity.Add(&Velocity{})
		entity.Remove(velocityType)
	}
}

func BenchmarkUpdate(b *testing.B) {
	engine := ecs.NewEngine()
	family := ecs.Require(ecs.Type[Position](), ecs.Type[Velocity]()).Get()
	view := engine.EntitiesFor(family)

	for i := 0; i < 1000; i++ {
		entity := engine.CreateEntity()
		entity.Add(&Position{}).Add(&Velocity{DX: 1, DY: 1})
		_ = engine.AddEntity(entity)
	}

	engine.AddSystem(newUpdateFunc(0, func(dt float64) {
		for entity := range view.All() {
			pos, _ := ecs.Get[*Position](entity)
			vel, _ := ecs.Get[*Velocity](entity)
			pos.X += vel.DX * float32(dt)
			pos.Y += vel.DY * float32(dt)
		}
	}))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = engine.Update(1.0 / 60.0)
	}
}
