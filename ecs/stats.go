package ecs

import "time"

// EngineStats is a point-in-time snapshot of engine state and per-system
// execution timings.
type EngineStats struct {
	EntityCount         int
	FamilyCount         int
	SystemCount         int
	PendingEntityOps    int
	PendingComponentOps int
	TotalTicks          int64
	Systems             []SystemStats
}

// SystemStats reports execution timings for a single system, in the system's
// execution order position.
type SystemStats struct {
	Name           string
	Priority       int
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// FamilyStats describes one registered family and its current membership.
type FamilyStats struct {
	Family        *Family
	EntityCount   int
	ListenerCount int
}

// Stats collects a snapshot of the engine's current state. Meant for
// diagnostics surfaces; not free, do not call per entity.
func (e *Engine) Stats() EngineStats {
	stats := EngineStats{
		EntityCount:         e.entityManager.getEntities().Len(),
		FamilyCount:         len(e.familyManager.ordered),
		SystemCount:         len(e.systemManager.entries),
		PendingEntityOps:    len(e.entityManager.pending),
		PendingComponentOps: len(e.operationHandler.operations),
		TotalTicks:          e.ticks,
		Systems:             make([]SystemStats, len(e.systemManager.entries)),
	}

	for i, entry := range e.systemManager.entries {
		internal := entry.stats
		avg := time.Duration(0)
		if internal.executionCount > 0 {
			avg = internal.totalDuration / time.Duration(internal.executionCount)
		}
		min := internal.minDuration
		if internal.executionCount == 0 {
			min = 0
		}
		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			Priority:       entry.system.Priority(),
			ExecutionCount: internal.executionCount,
			MinDuration:    min,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avg,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
	}

	return stats
}

// FamilyBreakdown lists every registered family in family-index order.
func (e *Engine) FamilyBreakdown() []FamilyStats {
	breakdown := make([]FamilyStats, len(e.familyManager.ordered))
	for i, entry := range e.familyManager.ordered {
		breakdown[i] = FamilyStats{
			Family:        entry.family,
			EntityCount:   len(entry.entities),
			ListenerCount: len(entry.listeners),
		}
	}
	return breakdown
}
