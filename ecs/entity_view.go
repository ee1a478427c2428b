package ecs

import "iter"

// EntityView is a read-only window onto an engine-owned entity slice. The
// view cannot be used to modify the engine, but it is live: the engine keeps
// mutating the backing slice, and the view always reflects its current
// contents. Code iterating a view while triggering removals will observe the
// shrinkage mid-iteration.
type EntityView struct {
	entities *[]*Entity
}

func newEntityView(entities *[]*Entity) *EntityView {
	return &EntityView{entities: entities}
}

// Len returns the current number of entities in the view.
func (v *EntityView) Len() int {
	return len(*v.entities)
}

// At returns the entity at the given position.
func (v *EntityView) At(index int) *Entity {
	return (*v.entities)[index]
}

// First returns the first entity in the view, or nil when empty.
func (v *EntityView) First() *Entity {
	if len(*v.entities) == 0 {
		return nil
	}
	return (*v.entities)[0]
}

// Contains reports whether the view currently holds the given entity.
func (v *EntityView) Contains(entity *Entity) bool {
	for _, e := range *v.entities {
		if e == entity {
			return true
		}
	}
	return false
}

// All returns an iterator over the view's entities. The backing slice is read
// anew on every step, so removals performed while iterating shift the
// remaining positions just as they do for At.
func (v *EntityView) All() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for i := 0; i < len(*v.entities); i++ {
			if !yield((*v.entities)[i]) {
				return
			}
		}
	}
}
