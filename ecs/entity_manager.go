package ecs

import (
	"fmt"
	"math"

	"github.com/kamstrup/intmap"
)

const defaultEntityCapacity = 16

// entityListener is the owner's hook into entity lifecycle; the engine uses
// it to wire entities into the family index.
type entityListener interface {
	entityAdded(entity *Entity)
	entityRemoved(entity *Entity)
}

type entityOperationKind int

const (
	entityOperationAdd entityOperationKind = iota
	entityOperationRemove
	entityOperationRemoveAll
)

type entityOperation struct {
	kind   entityOperationKind
	entity *Entity
	view   *EntityView
}

// entityManager owns the canonical entity set: the master insertion-ordered
// array, the id lookup, and the identity set used for duplicate detection.
// Add/remove requests either apply immediately or join a FIFO queue of pooled
// operations, drained between systems.
type entityManager struct {
	listener  entityListener
	entities  []*Entity
	entitySet map[*Entity]struct{}
	byID      *intmap.Map[uint64, *Entity]
	view      *EntityView
	pending   []*entityOperation
	pool      *pool[entityOperation]
}

func newEntityManager(listener entityListener, initialCapacity int, loadFactor float64) *entityManager {
	capacity := defaultEntityCapacity
	if initialCapacity > 0 && loadFactor > 0 {
		capacity = int(math.Ceil(float64(initialCapacity) / loadFactor))
	} else if initialCapacity > 0 {
		capacity = initialCapacity
	}

	em := &entityManager{
		listener:  listener,
		entitySet: make(map[*Entity]struct{}),
		byID:      intmap.New[uint64, *Entity](capacity),
		pool: newPool(func(op *entityOperation) {
			op.entity = nil
			op.view = nil
		}),
	}
	em.view = newEntityView(&em.entities)
	return em
}

func (em *entityManager) addEntity(entity *Entity, delayed bool) error {
	entity.scheduledForRemoval = false

	if delayed {
		op := em.pool.obtain()
		op.kind = entityOperationAdd
		op.entity = entity
		em.pending = append(em.pending, op)
		return nil
	}
	return em.addInternal(entity)
}

func (em *entityManager) removeEntity(entity *Entity, delayed bool) {
	if delayed {
		if entity.scheduledForRemoval {
			return
		}
		entity.scheduledForRemoval = true
		op := em.pool.obtain()
		op.kind = entityOperationRemove
		op.entity = entity
		em.pending = append(em.pending, op)
	} else {
		em.removeInternal(entity)
	}
}

// removeAllEntities removes every entity in the view. The view is live, so
// the set actually removed is whatever it holds at application time.
func (em *entityManager) removeAllEntities(view *EntityView, delayed bool) {
	if delayed {
		for entity := range view.All() {
			entity.scheduledForRemoval = true
		}
		op := em.pool.obtain()
		op.kind = entityOperationRemoveAll
		op.view = view
		em.pending = append(em.pending, op)
	} else {
		for view.Len() > 0 {
			em.removeInternal(view.First())
		}
	}
}

func (em *entityManager) getEntities() *EntityView {
	return em.view
}

func (em *entityManager) getEntity(id uint64) *Entity {
	entity, _ := em.byID.Get(id)
	return entity
}

func (em *entityManager) hasPendingOperations() bool {
	return len(em.pending) > 0
}

// processPendingOperations drains the queue in insertion order. Operations
// enqueued while draining are picked up in the same pass. A failed add is
// dropped and reported after the rest of the queue has been applied, keeping
// the queues consistent for the next tick.
func (em *entityManager) processPendingOperations() error {
	var firstErr error

	for i := 0; i < len(em.pending); i++ {
		op := em.pending[i]

		switch op.kind {
		case entityOperationAdd:
			if err := em.addInternal(op.entity); err != nil && firstErr == nil {
				firstErr = err
			}
		case entityOperationRemove:
			em.removeInternal(op.entity)
		case entityOperationRemoveAll:
			for op.view.Len() > 0 {
				em.removeInternal(op.view.First())
			}
		default:
			panic("ecs: unknown entity operation")
		}

		em.pool.release(op)
	}

	em.pending = em.pending[:0]
	return firstErr
}

func (em *entityManager) addInternal(entity *Entity) error {
	if _, ok := em.entitySet[entity]; ok {
		return fmt.Errorf("%w: id %d", ErrAlreadyRegistered, entity.id)
	}

	em.entities = append(em.entities, entity)
	em.entitySet[entity] = struct{}{}
	em.byID.Put(entity.id, entity)
	em.listener.entityAdded(entity)
	return nil
}

func (em *entityManager) removeInternal(entity *Entity) {
	if _, ok := em.entitySet[entity]; !ok {
		return
	}
	delete(em.entitySet, entity)

	entity.scheduledForRemoval = false
	entity.removing = true

	for i, e := range em.entities {
		if e == entity {
			em.entities = append(em.entities[:i], em.entities[i+1:]...)
			break
		}
	}

	em.listener.entityRemoved(entity)
	entity.removing = false

	// The id slot may already belong to a new entity if the id was reused;
	// only clear the mapping that still points at this entity.
	if current, ok := em.byID.Get(entity.id); ok && current == entity {
		em.byID.Del(entity.id)
	}
	entity.id = 0
}
