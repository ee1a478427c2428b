package ecs

import (
	"reflect"
	"sync/atomic"
	"time"
)

// entityIDs is process-wide so entities created by different engines never
// share an id. This does not make engines thread-safe; it only keeps id
// generation safe against accidental cross-thread creation.
var entityIDs atomic.Uint64

// Engine owns the canonical entity set, the family index, the system registry
// and the tick loop. All mutations route through the engine; while a tick or
// a listener dispatch is in progress they are queued and applied at the next
// drain, so systems and listeners always iterate consistent views.
type Engine struct {
	systemManager    *systemManager
	entityManager    *entityManager
	familyManager    *familyManager
	operationHandler *componentOperationHandler

	componentListener Listener[*Entity]
	factories         map[uint]func() Component

	updating bool
	ticks    int64
}

// NewEngine creates an engine with default capacities.
func NewEngine() *Engine {
	return NewEngineWith(0, 0)
}

// NewEngineWith creates an engine whose id lookup is pre-sized for the given
// number of entities at the given load factor. Zero values mean
// implementation defaults.
func NewEngineWith(initialEntitiesCapacity int, loadFactor float64) *Engine {
	e := &Engine{
		factories: make(map[uint]func() Component),
	}
	e.systemManager = newSystemManager(&engineSystemListener{engine: e})
	e.entityManager = newEntityManager(&engineEntityListener{engine: e}, initialEntitiesCapacity, loadFactor)
	e.familyManager = newFamilyManager(e.entityManager.getEntities())
	e.operationHandler = newComponentOperationHandler(func() bool {
		return e.updating || e.familyManager.isNotifying()
	})
	e.componentListener = OnSignal(func(entity *Entity) {
		e.familyManager.updateFamilyMembership(entity)
	})
	return e
}

// CreateEntity returns a fresh detached entity with an engine-assigned id.
// The entity joins the engine via AddEntity.
func (e *Engine) CreateEntity() *Entity {
	entity := newEntity()
	entity.id = entityIDs.Add(1)
	return entity
}

// RegisterComponentFactory installs a factory used by CreateComponent for the
// given component type.
func (e *Engine) RegisterComponentFactory(componentType *ComponentType, factory func() Component) {
	e.factories[componentType.Index()] = factory
}

// CreateComponent builds a component of the given type through its registered
// factory. Returns nil when no factory is registered or the factory fails.
func (e *Engine) CreateComponent(componentType *ComponentType) Component {
	factory, ok := e.factories[componentType.Index()]
	if !ok {
		return nil
	}
	return factory()
}

// AddEntity adds the entity to the engine, deferred while a tick or dispatch
// is in progress. Returns ErrAlreadyRegistered if the entity identity is
// already owned by the engine; for a deferred add the error surfaces from the
// drain instead.
func (e *Engine) AddEntity(entity *Entity) error {
	return e.entityManager.addEntity(entity, e.deferred())
}

// RemoveEntity removes the entity, deferred while a tick or dispatch is in
// progress. Unknown entities and entities already scheduled for removal are
// ignored.
func (e *Engine) RemoveEntity(entity *Entity) {
	e.entityManager.removeEntity(entity, e.deferred())
}

// RemoveEntityByID removes the entity with the given id; no-op when unknown.
func (e *Engine) RemoveEntityByID(id uint64) {
	if entity := e.entityManager.getEntity(id); entity != nil {
		e.RemoveEntity(entity)
	}
}

// RemoveAllEntities removes every entity owned by the engine.
func (e *Engine) RemoveAllEntities() {
	e.entityManager.removeAllEntities(e.entityManager.getEntities(), e.deferred())
}

// RemoveAllEntitiesFor removes every entity currently matching the family.
// When deferred, the set removed is whatever the family holds at drain time.
func (e *Engine) RemoveAllEntitiesFor(family *Family) {
	e.entityManager.removeAllEntities(e.EntitiesFor(family), e.deferred())
}

// GetEntity returns the entity with the given id, or nil.
func (e *Engine) GetEntity(id uint64) *Entity {
	return e.entityManager.getEntity(id)
}

// Entities returns the live view of all entities in insertion order.
func (e *Engine) Entities() *EntityView {
	return e.entityManager.getEntities()
}

// EntitiesFor returns the live view of entities matching the family. The
// same view instance is returned for the same family every time.
func (e *Engine) EntitiesFor(family *Family) *EntityView {
	return e.familyManager.entitiesFor(family)
}

// AddEntityListener registers a listener for every entity added to or
// removed from the engine, at priority 0.
func (e *Engine) AddEntityListener(listener EntityListener) {
	e.AddEntityListenerFor(Require().Get(), 0, listener)
}

// AddEntityListenerFor registers a listener for entities entering or leaving
// the family. Lower priority is notified first; ties keep insertion order.
func (e *Engine) AddEntityListenerFor(family *Family, priority int, listener EntityListener) {
	e.familyManager.addEntityListener(family, priority, listener)
}

// RemoveEntityListener unregisters the listener from every family.
func (e *Engine) RemoveEntityListener(listener EntityListener) {
	e.familyManager.removeEntityListener(listener)
}

// AddSystem registers a system, replacing any existing system of the same
// concrete type.
func (e *Engine) AddSystem(system System) {
	e.systemManager.addSystem(system)
}

// RemoveSystem unregisters the system; unknown systems are ignored.
func (e *Engine) RemoveSystem(system System) {
	e.systemManager.removeSystem(system)
}

// RemoveAllSystems unregisters every system.
func (e *Engine) RemoveAllSystems() {
	e.systemManager.removeAllSystems()
}

// GetSystemOf returns the registered system of the given concrete type, or
// nil.
func (e *Engine) GetSystemOf(systemType reflect.Type) System {
	return e.systemManager.getSystem(systemType)
}

// Systems returns the systems in execution order. The slice is a copy.
func (e *Engine) Systems() []System {
	return e.systemManager.getSystems()
}

// IsUpdating reports whether a tick is in progress.
func (e *Engine) IsUpdating() bool {
	return e.updating
}

// Update runs one tick: every system in priority order, draining pending
// operations after each system so no mutation leaks into the middle of a
// system's update. Returns ErrReentrantUpdate when called from within a tick.
// The updating flag is cleared even when a system or listener panics.
func (e *Engine) Update(deltaTime float64) error {
	if e.updating {
		return ErrReentrantUpdate
	}

	e.updating = true
	defer func() { e.updating = false }()

	e.ticks++

	for i := 0; i < len(e.systemManager.entries); i++ {
		entry := e.systemManager.entries[i]

		if entry.system.CheckProcessing() {
			start := time.Now()
			entry.system.Update(deltaTime)
			e.systemManager.recordRun(entry, time.Since(start))
		}

		if err := e.ProcessPendingOperations(); err != nil {
			return err
		}
	}

	return nil
}

// ProcessPendingOperations applies queued operations to a fixpoint: the
// component queue first, then the entity queue, re-checking both. Entity
// removal synthesizes component events and component changes can trigger
// listeners that queue entity operations, so a single pass is not enough.
func (e *Engine) ProcessPendingOperations() error {
	for e.operationHandler.hasOperationsToProcess() || e.entityManager.hasPendingOperations() {
		e.operationHandler.processOperations()
		if err := e.entityManager.processPendingOperations(); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) deferred() bool {
	return e.updating || e.familyManager.isNotifying()
}

// GetSystem returns the engine's system of concrete type T.
func GetSystem[T System](engine *Engine) (T, bool) {
	system := engine.systemManager.getSystem(reflect.TypeFor[T]())
	if system == nil {
		var zero T
		return zero, false
	}
	return system.(T), true
}

// engineEntityListener wires entities into the engine as they enter and out
// as they leave: signals connected, the operation handler attached, and the
// family index updated.
type engineEntityListener struct {
	engine *Engine
}

func (l *engineEntityListener) entityAdded(entity *Entity) {
	entity.ComponentAdded.Connect(l.engine.componentListener)
	entity.ComponentRemoved.Connect(l.engine.componentListener)
	entity.operationHandler = l.engine.operationHandler

	l.engine.familyManager.updateFamilyMembership(entity)
}

func (l *engineEntityListener) entityRemoved(entity *Entity) {
	// Membership update runs first, with the entity still owning its
	// components, so removal listeners observe final state.
	l.engine.familyManager.updateFamilyMembership(entity)

	entity.ComponentAdded.Disconnect(l.engine.componentListener)
	entity.ComponentRemoved.Disconnect(l.engine.componentListener)
	entity.operationHandler = nil
}

type engineSystemListener struct {
	engine *Engine
}

func (l *engineSystemListener) systemAdded(system System) {
	system.AddedToEngine(l.engine)
}

func (l *engineSystemListener) systemRemoved(system System) {
	system.RemovedFromEngine(l.engine)
}
