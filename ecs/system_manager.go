package ecs

import (
	"cmp"
	"reflect"
	"slices"
	"time"
)

type systemListener interface {
	systemAdded(system System)
	systemRemoved(system System)
}

type systemEntry struct {
	system System
	stats  systemStatsInternal
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// systemManager keeps the prioritized system registry. Order is stable:
// ascending priority, insertion order on ties. Adding a system of an already
// registered concrete type replaces the old instance.
type systemManager struct {
	listener systemListener
	entries  []*systemEntry
	byType   map[reflect.Type]*systemEntry
}

func newSystemManager(listener systemListener) *systemManager {
	return &systemManager{
		listener: listener,
		byType:   make(map[reflect.Type]*systemEntry),
	}
}

func (sm *systemManager) addSystem(system System) {
	systemType := reflect.TypeOf(system)
	if old, ok := sm.byType[systemType]; ok {
		sm.removeSystem(old.system)
	}

	entry := &systemEntry{
		system: system,
		stats: systemStatsInternal{
			name:        systemName(systemType),
			minDuration: time.Duration(1<<63 - 1),
		},
	}
	sm.entries = append(sm.entries, entry)
	sm.byType[systemType] = entry

	slices.SortStableFunc(sm.entries, func(a, b *systemEntry) int {
		return cmp.Compare(a.system.Priority(), b.system.Priority())
	})

	sm.listener.systemAdded(system)
}

func (sm *systemManager) removeSystem(system System) {
	for i, entry := range sm.entries {
		if entry.system == system {
			sm.entries = append(sm.entries[:i], sm.entries[i+1:]...)
			systemType := reflect.TypeOf(system)
			if sm.byType[systemType] == entry {
				delete(sm.byType, systemType)
			}
			sm.listener.systemRemoved(system)
			return
		}
	}
}

func (sm *systemManager) removeAllSystems() {
	for len(sm.entries) > 0 {
		sm.removeSystem(sm.entries[0].system)
	}
}

func (sm *systemManager) getSystem(systemType reflect.Type) System {
	entry, ok := sm.byType[systemType]
	if !ok {
		return nil
	}
	return entry.system
}

// getSystems returns the systems in execution order. The slice is a copy.
func (sm *systemManager) getSystems() []System {
	systems := make([]System, len(sm.entries))
	for i, entry := range sm.entries {
		systems[i] = entry.system
	}
	return systems
}

func (sm *systemManager) recordRun(entry *systemEntry, duration time.Duration) {
	stats := &entry.stats
	stats.executionCount++
	stats.lastDuration = duration
	stats.totalDuration += duration

	if duration < stats.minDuration {
		stats.minDuration = duration
	}
	if duration > stats.maxDuration {
		stats.maxDuration = duration
	}
}

func systemName(systemType reflect.Type) string {
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return systemType.Name()
}
