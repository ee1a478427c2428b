package ecs

// System is a unit of engine behavior, run once per tick in ascending
// priority order. Implementations usually embed BaseSystem, which provides
// everything except Update.
type System interface {
	// Update performs the system's per-tick work.
	Update(deltaTime float64)
	// CheckProcessing reports whether the system should run this tick.
	// Pending operations are drained after the system's slot either way.
	CheckProcessing() bool
	// Priority orders systems; lower runs first, ties keep insertion order.
	// The value is read when the system is added.
	Priority() int
	// AddedToEngine is called when the system is added to an engine.
	AddedToEngine(engine *Engine)
	// RemovedFromEngine is called when the system is removed, including when
	// it is replaced by another system of the same concrete type.
	RemovedFromEngine(engine *Engine)
}

// BaseSystem carries the bookkeeping half of a System: priority, the
// processing toggle and the engine back-reference. Embed it and implement
// Update.
type BaseSystem struct {
	// SystemPriority orders the system relative to others; lower runs first.
	SystemPriority int

	engine *Engine
	paused bool
}

func (b *BaseSystem) Priority() int {
	return b.SystemPriority
}

// CheckProcessing reports whether the system is enabled; systems start
// enabled.
func (b *BaseSystem) CheckProcessing() bool {
	return !b.paused
}

// SetProcessing enables or disables the system without removing it.
func (b *BaseSystem) SetProcessing(processing bool) {
	b.paused = !processing
}

func (b *BaseSystem) AddedToEngine(engine *Engine) {
	b.engine = engine
}

func (b *BaseSystem) RemovedFromEngine(*Engine) {
	b.engine = nil
}

// Engine returns the engine the system currently belongs to, or nil.
func (b *BaseSystem) Engine() *Engine {
	return b.engine
}
