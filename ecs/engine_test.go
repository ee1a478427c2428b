package ecs_test

import (
	"testing"

	"github.com/plus3/entwine/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImmediateAddAndRemove(t *testing.T) {

	engine := ecs.NewEngine()
	family := ecs.Require(ecs.Type[Position]()).Get()
	view := engine.EntitiesFor(family)

	entity := engine.CreateEntity()
	entity.Add(&Position{X: 1})
	require.NoError(t, engine.AddEntity(entity))

	require.Equal(t, 1, view.Len())
	assert.Same(t, entity, view.At(0))
	assert.NotZero(t, entity.ID())

	engine.RemoveEntity(entity)

	assert.Equal(t, 0, view.Len())
	assert.Zero(t, entity.ID())
	assert.Nil(t, engine.GetEntity(entity.ID()))
}

func TestAddEntityTwiceFails(t *testing.T) {

	engine := ecs.NewEngine()
	entity := engine.CreateEntity()

	require.NoError(t, engine.AddEntity(entity))
	assert.ErrorIs(t, engine.AddEntity(entity), ecs.ErrAlreadyRegistered)
}

func TestDeferredAddEntityTwiceSurfacesFromUpdate(t *testing.T) {

	engine := ecs.NewEngine()
	entity := engine.CreateEntity()

	engine.AddSystem(newUpdateFunc(0, func(float64) {
		require.NoError(t, engine.AddEntity(entity))
		require.NoError(t, engine.AddEntity(entity))
	}))

	assert.ErrorIs(t, engine.Update(0.1), ecs.ErrAlreadyRegistered)
	assert.False(t, engine.IsUpdating())
}

func TestRemoveEntityByID(t *testing.T) {

	engine := ecs.NewEngine()
	entity := engine.CreateEntity()
	id := entity.ID()
	require.NoError(t, engine.AddEntity(entity))

	engine.RemoveEntityByID(id)
	assert.Equal(t, 0, engine.Entities().Len())

	// Unknown ids are ignored.
	engine.RemoveEntityByID(id)
}

func TestDeferredRemovalInsideUpdate(t *testing.T) {

	engine := ecs.NewEngine()
	family := ecs.Require(ecs.Type[Position]()).Get()

	entity := engine.CreateEntity()
	entity.Add(&Position{})
	require.NoError(t, engine.AddEntity(entity))

	listener := &recordingListener{}
	engine.AddEntityListenerFor(family, 0, listener)

	engine.AddSystem(newUpdateFunc(0, func(float64) {
		engine.RemoveEntity(entity)
		// The mutation is deferred: the master view is untouched until the
		// system returns.
		assert.Equal(t, 1, engine.Entities().Len())
		assert.True(t, entity.ScheduledForRemoval())
	}))

	require.NoError(t, engine.Update(0.1))

	assert.Equal(t, 0, engine.Entities().Len())
	assert.Len(t, listener.removed, 1)
	assert.Zero(t, entity.ID())
}

func TestMutationAppliesBeforeNextSystem(t *testing.T) {

	engine := ecs.NewEngine()
	entity := engine.CreateEntity()
	require.NoError(t, engine.AddEntity(entity))

	engine.AddSystem(newUpdateFunc(1, func(float64) {
		engine.RemoveEntity(entity)
	}))
	engine.AddSystem(newOtherUpdateFunc(2, func(float64) {
		assert.Equal(t, 0, engine.Entities().Len())
	}))

	require.NoError(t, engine.Update(0.1))
}

func TestFamilyTransitionOnComponentChange(t *testing.T) {

	engine := ecs.NewEngine()
	family := ecs.Require(ecs.Type[Position]()).Exclude(ecs.Type[Frozen]()).Get()
	view := engine.EntitiesFor(family)

	entity := engine.CreateEntity()
	entity.Add(&Position{})
	require.NoError(t, engine.AddEntity(entity))
	require.Equal(t, 1, view.Len())

	listener := &recordingListener{}
	engine.AddEntityListenerFor(family, 0, listener)

	engine.AddSystem(newUpdateFunc(0, func(float64) {
		entity.Add(&Frozen{})
		// Deferred: still a member mid-system.
		assert.Equal(t, 1, view.Len())
	}))

	require.NoError(t, engine.Update(0.1))

	assert.Equal(t, 0, view.Len())
	assert.Len(t, listener.removed, 1)
	assert.Len(t, listener.added, 0)
	assert.True(t, entity.Has(ecs.Type[Frozen]()))
	assert.False(t, entity.FamilyBits().Test(family.Index()))
}

func TestRemoveAllByFamily(t *testing.T) {

	engine := ecs.NewEngine()
	family := ecs.Require(ecs.Type[AI]()).Get()

	var matched []*ecs.Entity
	for i := 0; i < 3; i++ {
		entity := engine.CreateEntity()
		entity.Add(&AI{State: i})
		require.NoError(t, engine.AddEntity(entity))
		matched = append(matched, entity)
	}
	other := engine.CreateEntity()
	other.Add(&Position{})
	require.NoError(t, engine.AddEntity(other))

	listener := &recordingListener{}
	engine.AddEntityListenerFor(family, 0, listener)

	engine.AddSystem(newUpdateFunc(0, func(float64) {
		engine.RemoveAllEntitiesFor(family)
	}))

	require.NoError(t, engine.Update(0.1))

	assert.Equal(t, 0, engine.EntitiesFor(family).Len())
	assert.Equal(t, 1, engine.Entities().Len())
	require.Len(t, listener.removed, 3)
	// Removal order follows the family's array order.
	assert.Equal(t, matched, listener.removed)
}

func TestRemoveAllEntities(t *testing.T) {

	engine := ecs.NewEngine()
	for i := 0; i < 4; i++ {
		entity := engine.CreateEntity()
		require.NoError(t, engine.AddEntity(entity))
	}

	engine.RemoveAllEntities()
	assert.Equal(t, 0, engine.Entities().Len())
}

func TestListenerPriorityOrder(t *testing.T) {

	engine := ecs.NewEngine()
	empty := ecs.Require().Get()

	var log []string
	low := &recordingListener{label: "low", log: &log}
	high := &recordingListener{label: "high", log: &log}

	engine.AddEntityListenerFor(empty, 10, high)
	engine.AddEntityListenerFor(empty, 1, low)

	entity := engine.CreateEntity()
	require.NoError(t, engine.AddEntity(entity))

	assert.Equal(t, []string{"low+", "high+"}, log)
}

func TestListenerPriorityTiesKeepInsertionOrder(t *testing.T) {

	engine := ecs.NewEngine()
	empty := ecs.Require().Get()

	var log []string
	first := &recordingListener{label: "first", log: &log}
	second := &recordingListener{label: "second", log: &log}

	engine.AddEntityListenerFor(empty, 5, first)
	engine.AddEntityListenerFor(empty, 5, second)

	require.NoError(t, engine.AddEntity(engine.CreateEntity()))

	assert.Equal(t, []string{"first+", "second+"}, log)
}

func TestRemoveEntityListener(t *testing.T) {

	engine := ecs.NewEngine()
	listener := &recordingListener{}
	engine.AddEntityListener(listener)

	require.NoError(t, engine.AddEntity(engine.CreateEntity()))
	require.Len(t, listener.added, 1)

	engine.RemoveEntityListener(listener)
	require.NoError(t, engine.AddEntity(engine.CreateEntity()))
	assert.Len(t, listener.added, 1)
}

func TestReentrantUpdateFails(t *testing.T) {

	engine := ecs.NewEngine()

	var inner error
	engine.AddSystem(newUpdateFunc(0, func(float64) {
		inner = engine.Update(0.5)
	}))

	require.NoError(t, engine.Update(0.1))
	assert.ErrorIs(t, inner, ecs.ErrReentrantUpdate)
	assert.False(t, engine.IsUpdating())
}

func TestUpdatingFlagClearedOnPanic(t *testing.T) {

	engine := ecs.NewEngine()
	engine.AddSystem(newUpdateFunc(0, func(float64) {
		panic("system failure")
	}))

	assert.Panics(t, func() { _ = engine.Update(0.1) })
	assert.False(t, engine.IsUpdating())
}

func TestDoubleDelayedRemovalIsIdempotent(t *testing.T) {

	engine := ecs.NewEngine()
	family := ecs.Require().Get()

	entity := engine.CreateEntity()
	require.NoError(t, engine.AddEntity(entity))

	listener := &recordingListener{}
	engine.AddEntityListenerFor(family, 0, listener)

	engine.AddSystem(newUpdateFunc(0, func(float64) {
		engine.RemoveEntity(entity)
		engine.RemoveEntity(entity)
	}))

	require.NoError(t, engine.Update(0.1))

	assert.Len(t, listener.removed, 1)
	assert.Equal(t, 0, engine.Entities().Len())
}

func TestLateFamilyRegistrationBackfills(t *testing.T) {

	engine := ecs.NewEngine()

	first := engine.CreateEntity()
	first.Add(&Position{X: 1})
	second := engine.CreateEntity()
	second.Add(&Position{X: 2})
	require.NoError(t, engine.AddEntity(first))
	require.NoError(t, engine.AddEntity(second))

	// Registered after the entities already exist: the initial scan must
	// pick them up in master insertion order.
	view := engine.EntitiesFor(ecs.Require(ecs.Type[Position]()).Get())
	require.Equal(t, 2, view.Len())
	assert.Same(t, first, view.At(0))
	assert.Same(t, second, view.At(1))
}

func TestEntitiesForReturnsSameView(t *testing.T) {

	engine := ecs.NewEngine()
	family := ecs.Require(ecs.Type[Position]()).Get()

	assert.Same(t, engine.EntitiesFor(family), engine.EntitiesFor(family))
}

func TestMembershipTracksComponentChangesWhileIdle(t *testing.T) {

	engine := ecs.NewEngine()
	family := ecs.Require(ecs.Type[Position]()).Get()
	view := engine.EntitiesFor(family)

	entity := engine.CreateEntity()
	require.NoError(t, engine.AddEntity(entity))
	assert.Equal(t, 0, view.Len())

	entity.Add(&Position{})
	assert.Equal(t, 1, view.Len())
	assert.True(t, entity.FamilyBits().Test(family.Index()))

	entity.Remove(ecs.Type[Position]())
	assert.Equal(t, 0, view.Len())
	assert.False(t, entity.FamilyBits().Test(family.Index()))
}

func TestListenerMutationsAreDeferred(t *testing.T) {

	engine := ecs.NewEngine()
	family := ecs.Require(ecs.Type[Position]()).Get()

	// The listener reacts to membership by removing the entity; the removal
	// must queue rather than run inside the dispatch.
	reaper := &reaperListener{engine: engine}
	engine.AddEntityListenerFor(family, 0, reaper)

	entity := engine.CreateEntity()
	entity.Add(&Position{})
	require.NoError(t, engine.AddEntity(entity))

	// Idle engine: the queued removal drains once dispatch unwinds.
	require.NoError(t, engine.ProcessPendingOperations())
	assert.Equal(t, 0, engine.Entities().Len())
}

type reaperListener struct {
	engine *ecs.Engine
}

func (l *reaperListener) EntityAdded(e *ecs.Entity) {
	l.engine.RemoveEntity(e)
	// Still present: the dispatch in progress defers the removal.
	if l.engine.Entities().Len() == 0 {
		panic("removal applied during dispatch")
	}
}

func (l *reaperListener) EntityRemoved(*ecs.Entity) {}

func TestComponentFactory(t *testing.T) {

	engine := ecs.NewEngine()
	healthType := ecs.Type[Health]()

	assert.Nil(t, engine.CreateComponent(healthType))

	engine.RegisterComponentFactory(healthType, func() ecs.Component {
		return &Health{Max: 100}
	})

	component := engine.CreateComponent(healthType)
	require.NotNil(t, component)
	assert.Equal(t, 100, component.(*Health).Max)

	// A failing factory yields nil rather than an error.
	engine.RegisterComponentFactory(healthType, func() ecs.Component { return nil })
	assert.Nil(t, engine.CreateComponent(healthType))
}

func TestEntityRemovalListenerSeesComponents(t *testing.T) {

	engine := ecs.NewEngine()
	family := ecs.Require(ecs.Type[Position]()).Get()

	var sawPosition bool
	var sawRemoving bool
	listener := &inspectingListener{
		onRemoved: func(e *ecs.Entity) {
			sawPosition = e.Has(ecs.Type[Position]())
			sawRemoving = e.Removing()
		},
	}
	engine.AddEntityListenerFor(family, 0, listener)

	entity := engine.CreateEntity()
	entity.Add(&Position{})
	require.NoError(t, engine.AddEntity(entity))

	engine.RemoveEntity(entity)

	assert.True(t, sawPosition)
	assert.True(t, sawRemoving)
}

type inspectingListener struct {
	onAdded   func(*ecs.Entity)
	onRemoved func(*ecs.Entity)
}

func (l *inspectingListener) EntityAdded(e *ecs.Entity) {
	if l.onAdded != nil {
		l.onAdded(e)
	}
}

func (l *inspectingListener) EntityRemoved(e *ecs.Entity) {
	if l.onRemoved != nil {
		l.onRemoved(e)
	}
}
