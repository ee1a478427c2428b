package ecs_test

import "github.com/plus3/entwine/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

type AI struct {
	State int
}

type Frozen struct{}

// Custom primitive types for testing non-struct components
type Score int32
type Tag string

// recordingListener captures family events in dispatch order.
type recordingListener struct {
	label   string
	added   []*ecs.Entity
	removed []*ecs.Entity
	log     *[]string
}

func (l *recordingListener) EntityAdded(entity *ecs.Entity) {
	l.added = append(l.added, entity)
	if l.log != nil {
		*l.log = append(*l.log, l.label+"+")
	}
}

func (l *recordingListener) EntityRemoved(entity *ecs.Entity) {
	l.removed = append(l.removed, entity)
	if l.log != nil {
		*l.log = append(*l.log, l.label+"-")
	}
}

// updateFunc adapts a closure into a System.
type updateFunc struct {
	ecs.BaseSystem
	fn func(deltaTime float64)
}

func newUpdateFunc(priority int, fn func(deltaTime float64)) *updateFunc {
	s := &updateFunc{fn: fn}
	s.SystemPriority = priority
	return s
}

func (s *updateFunc) Update(deltaTime float64) {
	s.fn(deltaTime)
}

// otherUpdateFunc is a second closure system type. An engine keeps one system
// per concrete type, so a test that registers two closure systems on the same
// engine uses one of each.
type otherUpdateFunc struct {
	updateFunc
}

func newOtherUpdateFunc(priority int, fn func(deltaTime float64)) *otherUpdateFunc {
	s := &otherUpdateFunc{updateFunc{fn: fn}}
	s.SystemPriority = priority
	return s
}
