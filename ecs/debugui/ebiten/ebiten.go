// Package ebiten provides Dear ImGui backend integration for running the
// engine inspector inside an Ebiten game loop.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
)

// InspectorBackend wraps the Ebiten-specific Dear ImGui backend. Call
// BeginFrame before the engine tick runs the InspectorSystem and EndFrame
// afterwards, then Draw from the game's Draw callback.
type InspectorBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewInspectorBackend creates the backend. The caller remains responsible
// for the usual Ebiten window setup.
func NewInspectorBackend() *InspectorBackend {
	return &InspectorBackend{EbitenBackend: ebitenbackend.NewEbitenBackend()}
}
