package ecs_test

import (
	"fmt"

	"github.com/plus3/entwine/ecs"
)

type Burning struct{ Remaining float64 }
type Wet struct{}

type announcer struct{ name string }

func (a *announcer) EntityAdded(entity *ecs.Entity) {
	name, _ := ecs.Get[*Name](entity)
	fmt.Printf("%s: %s caught fire\n", a.name, name.Value)
}

func (a *announcer) EntityRemoved(entity *ecs.Entity) {
	name, _ := ecs.Get[*Name](entity)
	fmt.Printf("%s: %s stopped burning\n", a.name, name.Value)
}

func ExampleFamilyBuilder() {
	engine := ecs.NewEngine()

	// Burning entities that are not wet.
	onFire := ecs.Require(ecs.Type[Burning]()).Exclude(ecs.Type[Wet]()).Get()
	engine.AddEntityListenerFor(onFire, 0, &announcer{name: "fx"})

	entity := engine.CreateEntity()
	entity.Add(&Name{Value: "torch"}).Add(&Burning{Remaining: 2})
	if err := engine.AddEntity(entity); err != nil {
		panic(err)
	}

	fmt.Println("burning:", engine.EntitiesFor(onFire).Len())

	entity.Add(&Wet{})
	fmt.Println("burning:", engine.EntitiesFor(onFire).Len())

	// Output:
	// fx: torch caught fire
	// burning: 1
	// fx: torch stopped burning
	// burning: 0
}
