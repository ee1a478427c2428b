package ecs

import "errors"

var (
	// ErrAlreadyRegistered is returned when an entity that already belongs to
	// the engine is added a second time.
	ErrAlreadyRegistered = errors.New("ecs: entity is already registered")

	// ErrReentrantUpdate is returned when Engine.Update is called while an
	// update is already in progress.
	ErrReentrantUpdate = errors.New("ecs: update called while already updating")
)
