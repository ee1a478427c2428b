// Package debugui provides an immediate-mode Dear ImGui inspector for a
// running engine: an entity browser, a family viewer, a component inspector
// and a performance panel. The widgets are themselves entities carrying a
// Widget component, driven by the InspectorSystem.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/entwine/ecs"
)

// Widget is a component holding a Dear ImGui render function. Attach it to
// entities that should render ImGui windows each tick.
type Widget struct {
	Render func(deltaTime float64)
}

// InputState reports whether Dear ImGui is consuming mouse or keyboard
// input. Game input handling should back off while either is true.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// InspectorSystem renders every Widget entity. Run it at a priority after
// the game's own systems so the panels see post-tick state.
type InspectorSystem struct {
	ecs.BaseSystem

	widgets *ecs.EntityView
	input   InputState
}

// NewInspectorSystem creates the system; widget entities are spawned
// separately via Spawn.
func NewInspectorSystem(priority int) *InspectorSystem {
	s := &InspectorSystem{}
	s.SystemPriority = priority
	return s
}

func (s *InspectorSystem) AddedToEngine(engine *ecs.Engine) {
	s.BaseSystem.AddedToEngine(engine)
	s.widgets = engine.EntitiesFor(ecs.Require(ecs.Type[Widget]()).Get())
}

func (s *InspectorSystem) Update(deltaTime float64) {
	s.input.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	s.input.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	for entity := range s.widgets.All() {
		widget, ok := ecs.Get[*Widget](entity)
		if !ok || widget.Render == nil {
			continue
		}
		widget.Render(deltaTime)
	}
}

// Input returns ImGui's input capture state as of the last Update.
func (s *InspectorSystem) Input() InputState {
	return s.input
}
