package debugui

// selection is shared between the entity browser and the component
// inspector: clicking a row in the browser selects the entity to inspect.
type selection struct {
	entityID uint64
}

// EntityBrowser lists the engine's entities with filtering and paging.
type EntityBrowser struct {
	selected           *selection
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
}

// ComponentInspector shows and edits the selected entity's components.
type ComponentInspector struct {
	selected *selection
}

// FamilyViewer lists registered families with membership and listener
// counts.
type FamilyViewer struct {
	selectedFamily int
}

// PerformanceStats shows engine statistics and a frame-time graph.
type PerformanceStats struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}
