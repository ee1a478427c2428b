package main

import (
	"math/rand"

	"github.com/plus3/entwine/ecs"
)

// Component roster for the stress scenario. A mix of small and larger
// payloads so the churn isn't uniform.
type Position struct{ X, Y float64 }
type Velocity struct{ DX, DY float64 }
type Health struct{ Current, Max int }
type Lifetime struct{ Remaining float64 }
type Payload struct{ Data [64]byte }
type Marker struct{}

var rosterFactories = []func() ecs.Component{
	func() ecs.Component { return &Position{} },
	func() ecs.Component { return &Velocity{DX: 1, DY: 1} },
	func() ecs.Component { return &Health{Current: 100, Max: 100} },
	func() ecs.Component { return &Lifetime{Remaining: 5} },
	func() ecs.Component { return &Payload{} },
	func() ecs.Component { return &Marker{} },
}

func spawnRandomEntity(engine *ecs.Engine, rng *rand.Rand) error {
	entity := engine.CreateEntity()
	count := rng.Intn(len(rosterFactories)) + 1
	for _, i := range rng.Perm(len(rosterFactories))[:count] {
		entity.Add(rosterFactories[i]())
	}
	return engine.AddEntity(entity)
}

// movementSystem exercises family iteration and in-place mutation.
type movementSystem struct {
	ecs.BaseSystem
	moving *ecs.EntityView
}

func (s *movementSystem) AddedToEngine(engine *ecs.Engine) {
	s.BaseSystem.AddedToEngine(engine)
	s.moving = engine.EntitiesFor(ecs.Require(ecs.Type[Position](), ecs.Type[Velocity]()).Get())
}

func (s *movementSystem) Update(deltaTime float64) {
	for entity := range s.moving.All() {
		pos, _ := ecs.Get[*Position](entity)
		vel, _ := ecs.Get[*Velocity](entity)
		pos.X += vel.DX * deltaTime
		pos.Y += vel.DY * deltaTime
	}
}

// decaySystem removes entities whose lifetime ran out, exercising deferred
// entity removal from inside a tick.
type decaySystem struct {
	ecs.BaseSystem
	decaying *ecs.EntityView
}

func (s *decaySystem) AddedToEngine(engine *ecs.Engine) {
	s.BaseSystem.AddedToEngine(engine)
	s.decaying = engine.EntitiesFor(ecs.Require(ecs.Type[Lifetime]()).Get())
}

func (s *decaySystem) Update(deltaTime float64) {
	for entity := range s.decaying.All() {
		lifetime, _ := ecs.Get[*Lifetime](entity)
		lifetime.Remaining -= deltaTime
		if lifetime.Remaining <= 0 {
			s.Engine().RemoveEntity(entity)
		}
	}
}

// churnSystem adds and removes components and spawns replacement entities,
// exercising the deferred component queue and family transitions.
type churnSystem struct {
	ecs.BaseSystem
	rng     *rand.Rand
	perTick int
	all     *ecs.EntityView
}

func (s *churnSystem) AddedToEngine(engine *ecs.Engine) {
	s.BaseSystem.AddedToEngine(engine)
	s.all = engine.Entities()
}

func (s *churnSystem) Update(float64) {
	for i := 0; i < s.perTick && s.all.Len() > 0; i++ {
		entity := s.all.At(s.rng.Intn(s.all.Len()))

		switch s.rng.Intn(3) {
		case 0:
			entity.Add(rosterFactories[s.rng.Intn(len(rosterFactories))]())
		case 1:
			if entity.Has(ecs.Type[Marker]()) {
				entity.Remove(ecs.Type[Marker]())
			} else {
				entity.Add(&Marker{})
			}
		case 2:
			s.Engine().RemoveEntity(entity)
			if err := spawnRandomEntity(s.Engine(), s.rng); err != nil {
				panic(err)
			}
		}
	}
}
