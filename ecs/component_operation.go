package ecs

type componentOperationKind int

const (
	componentOperationAdd componentOperationKind = iota
	componentOperationRemove
)

type componentOperation struct {
	kind      componentOperationKind
	entity    *Entity
	typeIndex uint
	component Component
}

// componentOperationHandler queues component mutations while the engine
// requires deferral and applies them directly otherwise. The queue is FIFO
// and tolerates growth while draining: operations enqueued by listeners that
// fire during a drain are picked up in the same pass.
type componentOperationHandler struct {
	deferred   func() bool
	operations []*componentOperation
	pool       *pool[componentOperation]
}

func newComponentOperationHandler(deferred func() bool) *componentOperationHandler {
	return &componentOperationHandler{
		deferred: deferred,
		pool: newPool(func(op *componentOperation) {
			op.entity = nil
			op.component = nil
		}),
	}
}

func (h *componentOperationHandler) add(entity *Entity, component Component) {
	if h.deferred() {
		op := h.pool.obtain()
		op.kind = componentOperationAdd
		op.entity = entity
		op.component = component
		h.operations = append(h.operations, op)
	} else {
		entity.applyAdd(component)
	}
}

func (h *componentOperationHandler) remove(entity *Entity, componentType *ComponentType) {
	h.removeIndex(entity, componentType.Index())
}

func (h *componentOperationHandler) removeIndex(entity *Entity, typeIndex uint) {
	if h.deferred() {
		op := h.pool.obtain()
		op.kind = componentOperationRemove
		op.entity = entity
		op.typeIndex = typeIndex
		h.operations = append(h.operations, op)
	} else {
		entity.applyRemove(typeIndex)
	}
}

func (h *componentOperationHandler) hasOperationsToProcess() bool {
	return len(h.operations) > 0
}

func (h *componentOperationHandler) processOperations() {
	for i := 0; i < len(h.operations); i++ {
		op := h.operations[i]

		switch op.kind {
		case componentOperationAdd:
			op.entity.applyAdd(op.component)
		case componentOperationRemove:
			op.entity.applyRemove(op.typeIndex)
		default:
			panic("ecs: unknown component operation")
		}

		h.pool.release(op)
	}

	h.operations = h.operations[:0]
}
