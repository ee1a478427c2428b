package debugui

import "github.com/plus3/entwine/ecs"

// Spawn adds the inspector widget entities to the engine. Call once, after
// adding the InspectorSystem.
func Spawn(engine *ecs.Engine) error {
	selected := &selection{}

	browser := newEntityBrowser(selected, 100)
	inspector := newComponentInspector(selected)
	families := newFamilyViewer()
	stats := newPerformanceStats(120)

	widgets := []*Widget{
		{Render: func(float64) { browser.render(engine) }},
		{Render: func(float64) { inspector.render(engine) }},
		{Render: func(float64) { families.render(engine) }},
		{Render: func(dt float64) { stats.render(engine, dt) }},
	}

	for _, widget := range widgets {
		entity := engine.CreateEntity()
		entity.Add(widget)
		if err := engine.AddEntity(entity); err != nil {
			return err
		}
	}
	return nil
}
