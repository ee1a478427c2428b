package debugui

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/entwine/ecs"
)

func newEntityBrowser(selected *selection, maxEntitiesPerPage int) *EntityBrowser {
	return &EntityBrowser{
		selected:           selected,
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowser) render(engine *ecs.Engine) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##search", "Filter by component...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear") {
		eb.filterText = ""
		eb.currentPage = 0
	}

	filtered := eb.filteredEntities(engine)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Families")
		imgui.TableHeadersRow()

		startIdx := eb.currentPage * eb.maxEntitiesPerPage
		endIdx := min(startIdx+eb.maxEntitiesPerPage, len(filtered))

		for i := startIdx; i < endIdx; i++ {
			entity := filtered[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selected.entityID == entity.ID()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID()), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected.entityID = entity.ID()
			}

			imgui.TableNextColumn()
			imgui.Text(componentNames(entity))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.FamilyBits().Count()))
		}

		imgui.EndTable()
	}

	if len(filtered) > eb.maxEntitiesPerPage {
		totalPages := (len(filtered) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

func (eb *EntityBrowser) filteredEntities(engine *ecs.Engine) []*ecs.Entity {
	var filtered []*ecs.Entity
	needle := strings.ToLower(eb.filterText)

	for entity := range engine.Entities().All() {
		if needle != "" && !strings.Contains(strings.ToLower(componentNames(entity)), needle) {
			continue
		}
		filtered = append(filtered, entity)
	}
	return filtered
}

func componentNames(entity *ecs.Entity) string {
	components := entity.Components()
	names := make([]string, len(components))
	for i, component := range components {
		t := reflect.TypeOf(component)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		names[i] = t.Name()
	}
	return strings.Join(names, ", ")
}
