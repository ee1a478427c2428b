package ecs

import "sort"

// EntityListener is notified when entities enter or leave a family. Listeners
// are free to mutate the engine; such mutations are queued and applied by
// the drain in progress, or otherwise by the next ProcessPendingOperations
// or Update.
type EntityListener interface {
	// EntityAdded is called after the entity has been added to the family.
	EntityAdded(entity *Entity)
	// EntityRemoved is called after the entity has been removed from the
	// family. The entity still owns its components at this point.
	EntityRemoved(entity *Entity)
}

type listenerBinding struct {
	listener EntityListener
	priority int
}

// familyEntry is the per-family runtime state: the cached entity array, its
// stable live view, and the listener bindings sorted ascending by priority
// (insertion order on ties).
type familyEntry struct {
	family    *Family
	entities  []*Entity
	view      *EntityView
	listeners []listenerBinding
}

// familyManager incrementally maintains the cached entity array of every
// registered family and dispatches family-scoped add/remove events.
type familyManager struct {
	entities  *EntityView
	entries   map[*Family]*familyEntry
	ordered   []*familyEntry // ascending family index
	notifying int
}

func newFamilyManager(entities *EntityView) *familyManager {
	return &familyManager{
		entities: entities,
		entries:  make(map[*Family]*familyEntry),
	}
}

// entitiesFor returns the family's live view, registering the family on first
// call with a full scan over the master entity array.
func (fm *familyManager) entitiesFor(family *Family) *EntityView {
	return fm.entryFor(family).view
}

func (fm *familyManager) entryFor(family *Family) *familyEntry {
	entry, ok := fm.entries[family]
	if ok {
		return entry
	}

	entry = &familyEntry{family: family}
	entry.view = newEntityView(&entry.entities)

	// Backfill from the master array in insertion order so late-registered
	// families observe the same ordering as ones registered up front.
	for entity := range fm.entities.All() {
		if family.Matches(entity) && !entity.removing {
			entry.entities = append(entry.entities, entity)
			entity.familyBits.Set(family.Index())
		}
	}

	fm.entries[family] = entry
	pos := sort.Search(len(fm.ordered), func(i int) bool {
		return fm.ordered[i].family.Index() > family.Index()
	})
	fm.ordered = append(fm.ordered, nil)
	copy(fm.ordered[pos+1:], fm.ordered[pos:])
	fm.ordered[pos] = entry

	return entry
}

// addEntityListener binds a listener to the family. Lower priority runs
// first; equal priorities keep insertion order.
func (fm *familyManager) addEntityListener(family *Family, priority int, listener EntityListener) {
	entry := fm.entryFor(family)
	pos := sort.Search(len(entry.listeners), func(i int) bool {
		return entry.listeners[i].priority > priority
	})
	entry.listeners = append(entry.listeners, listenerBinding{})
	copy(entry.listeners[pos+1:], entry.listeners[pos:])
	entry.listeners[pos] = listenerBinding{listener: listener, priority: priority}
}

// removeEntityListener unbinds the listener from every family it is bound to.
// A dispatch already in flight keeps running over its snapshot.
func (fm *familyManager) removeEntityListener(listener EntityListener) {
	for _, entry := range fm.ordered {
		kept := entry.listeners[:0]
		for _, binding := range entry.listeners {
			if binding.listener != listener {
				kept = append(kept, binding)
			}
		}
		for i := len(kept); i < len(entry.listeners); i++ {
			entry.listeners[i] = listenerBinding{}
		}
		entry.listeners = kept
	}
}

// updateFamilyMembership reconciles the entity against every registered
// family, in family-index order. Entities inside their removal window match
// nothing, so removal dispatches see final state.
func (fm *familyManager) updateFamilyMembership(entity *Entity) {
	for i := 0; i < len(fm.ordered); i++ {
		entry := fm.ordered[i]
		index := entry.family.Index()

		belonged := entity.familyBits.Test(index)
		matches := entry.family.Matches(entity) && !entity.removing

		if matches == belonged {
			continue
		}

		if matches {
			entry.entities = append(entry.entities, entity)
			entity.familyBits.Set(index)
			fm.dispatch(entry, entity, true)
		} else {
			for j, e := range entry.entities {
				if e == entity {
					entry.entities = append(entry.entities[:j], entry.entities[j+1:]...)
					break
				}
			}
			entity.familyBits.Clear(index)
			fm.dispatch(entry, entity, false)
		}
	}
}

// isNotifying reports whether any listener dispatch is in progress on the
// stack. Mutations requested while true are deferred.
func (fm *familyManager) isNotifying() bool {
	return fm.notifying > 0
}

func (fm *familyManager) dispatch(entry *familyEntry, entity *Entity, added bool) {
	if len(entry.listeners) == 0 {
		return
	}

	snapshot := make([]listenerBinding, len(entry.listeners))
	copy(snapshot, entry.listeners)

	fm.notifying++
	defer func() { fm.notifying-- }()

	for _, binding := range snapshot {
		if added {
			binding.listener.EntityAdded(entity)
		} else {
			binding.listener.EntityRemoved(entity)
		}
	}
}
