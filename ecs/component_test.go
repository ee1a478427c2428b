package ecs_test

import (
	"testing"

	"github.com/plus3/entwine/ecs"
	"github.com/stretchr/testify/assert"
)

type registryProbeA struct{ V int }
type registryProbeB struct{ V int }

func TestComponentTypeIsCanonical(t *testing.T) {

	assert.Same(t, ecs.Type[Position](), ecs.Type[Position]())
	assert.Same(t, ecs.Type[Position](), ecs.Type[*Position]())
	assert.NotSame(t, ecs.Type[Position](), ecs.Type[Velocity]())
}

func TestComponentTypeIndicesAreDense(t *testing.T) {

	// Two types first seen back to back get adjacent indices.
	a := ecs.Type[registryProbeA]()
	b := ecs.Type[registryProbeB]()

	assert.Equal(t, a.Index()+1, b.Index())

	// A repeated lookup keeps the original index.
	assert.Equal(t, a.Index(), ecs.Type[registryProbeA]().Index())
}

func TestComponentTypeString(t *testing.T) {

	assert.Contains(t, ecs.Type[Position]().String(), "Position")
}
