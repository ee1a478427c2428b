package ecs

import (
	"github.com/bits-and-blooms/bitset"
)

// Entity is an identity plus a bag of components keyed by component type.
// Entities are created through Engine.CreateEntity and become live once added
// to an engine. While the owning engine is mid-update or mid-dispatch,
// component mutations are queued and applied at the next drain instead of
// taking effect immediately.
type Entity struct {
	// ComponentAdded fires after a component has landed in the entity's
	// component bag and its bit is set.
	ComponentAdded *Signal[*Entity]
	// ComponentRemoved fires after a component has left the bag and its bit
	// is cleared.
	ComponentRemoved *Signal[*Entity]

	id                  uint64
	components          map[uint]Component
	componentBits       *bitset.BitSet
	familyBits          *bitset.BitSet
	scheduledForRemoval bool
	removing            bool

	// Non-owning back-reference to the engine's operation handler; set while
	// the entity belongs to an engine, nil otherwise.
	operationHandler *componentOperationHandler
}

func newEntity() *Entity {
	return &Entity{
		ComponentAdded:   NewSignal[*Entity](),
		ComponentRemoved: NewSignal[*Entity](),
		components:       make(map[uint]Component),
		componentBits:    bitset.New(0),
		familyBits:       bitset.New(0),
	}
}

// ID returns the engine-assigned identifier. CreateEntity assigns it before
// the entity is added; it is reset to 0 once the entity has been removed.
func (e *Entity) ID() uint64 {
	return e.id
}

// Add attaches a component, replacing any component of the same type. While
// the owning engine defers mutations the component is queued instead and
// installed at the next drain. Returns the entity for chaining.
func (e *Entity) Add(component Component) *Entity {
	if e.operationHandler != nil {
		e.operationHandler.add(e, component)
	} else {
		e.applyAdd(component)
	}
	return e
}

// Remove detaches the component of the given type and returns it, or nil if
// absent. While the owning engine defers mutations the removal is queued and
// takes effect at the next drain; the currently attached component is still
// returned.
func (e *Entity) Remove(componentType *ComponentType) Component {
	component, ok := e.components[componentType.Index()]
	if !ok {
		return nil
	}

	if e.operationHandler != nil {
		e.operationHandler.remove(e, componentType)
	} else {
		e.applyRemove(componentType.Index())
	}
	return component
}

// RemoveAll detaches every component, firing ComponentRemoved per component.
func (e *Entity) RemoveAll() {
	indices := make([]uint, 0, len(e.components))
	for index, ok := e.componentBits.NextSet(0); ok; index, ok = e.componentBits.NextSet(index + 1) {
		indices = append(indices, index)
	}

	for _, index := range indices {
		if e.operationHandler != nil {
			e.operationHandler.removeIndex(e, index)
		} else {
			e.applyRemove(index)
		}
	}
}

// Component returns the component of the given type.
func (e *Entity) Component(componentType *ComponentType) (Component, bool) {
	component, ok := e.components[componentType.Index()]
	return component, ok
}

// Has reports whether a component of the given type is attached.
func (e *Entity) Has(componentType *ComponentType) bool {
	return e.componentBits.Test(componentType.Index())
}

// HasAll reports whether every bit in the given set is present on the entity.
func (e *Entity) HasAll(bits *bitset.BitSet) bool {
	return e.componentBits.IsSuperSet(bits)
}

// HasAny reports whether at least one bit in the given set is present.
func (e *Entity) HasAny(bits *bitset.BitSet) bool {
	return e.componentBits.IntersectionCardinality(bits) > 0
}

// Components returns the attached components in component-type-index order.
// The slice is a copy; mutating it does not affect the entity.
func (e *Entity) Components() []Component {
	components := make([]Component, 0, len(e.components))
	for index, ok := e.componentBits.NextSet(0); ok; index, ok = e.componentBits.NextSet(index + 1) {
		components = append(components, e.components[index])
	}
	return components
}

// ComponentBits returns the entity's component bitset. Callers must treat it
// as read-only.
func (e *Entity) ComponentBits() *bitset.BitSet {
	return e.componentBits
}

// FamilyBits returns the bitset of family indices the entity currently
// matches. Callers must treat it as read-only.
func (e *Entity) FamilyBits() *bitset.BitSet {
	return e.familyBits
}

// ScheduledForRemoval reports whether a delayed removal has been queued for
// this entity.
func (e *Entity) ScheduledForRemoval() bool {
	return e.scheduledForRemoval
}

// Removing reports whether the entity is inside its removal notification
// window: family listeners observing the removal see this flag set.
func (e *Entity) Removing() bool {
	return e.removing
}

// applyAdd installs the component and fires ComponentAdded. The signal only
// fires once the map and bits reflect the change.
func (e *Entity) applyAdd(component Component) {
	index := typeOfComponent(component).Index()
	e.components[index] = component
	e.componentBits.Set(index)
	e.ComponentAdded.Dispatch(e)
}

// applyRemove drops the component at the given type index and fires
// ComponentRemoved. No-op when absent.
func (e *Entity) applyRemove(index uint) {
	if _, ok := e.components[index]; !ok {
		return
	}
	delete(e.components, index)
	e.componentBits.Clear(index)
	e.ComponentRemoved.Dispatch(e)
}

// Get returns the entity's component of type T. T may be the component's
// pointer or value type; pointer components requested by value are
// dereferenced.
func Get[T any](e *Entity) (T, bool) {
	var zero T
	component, ok := e.components[Type[T]().Index()]
	if !ok {
		return zero, false
	}
	if typed, ok := component.(T); ok {
		return typed, true
	}
	if ptr, ok := component.(*T); ok {
		return *ptr, true
	}
	return zero, false
}

// Has reports whether the entity carries a component of type T.
func Has[T any](e *Entity) bool {
	return e.componentBits.Test(Type[T]().Index())
}
