package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/entwine/ecs"
)

func newFamilyViewer() *FamilyViewer {
	return &FamilyViewer{selectedFamily: -1}
}

func (fv *FamilyViewer) render(engine *ecs.Engine) {
	if !imgui.BeginV("Family Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	breakdown := engine.FamilyBreakdown()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("FamilyTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Index")
		imgui.TableSetupColumn("Descriptor")
		imgui.TableSetupColumn("Entities")
		imgui.TableSetupColumn("Listeners")
		imgui.TableHeadersRow()

		for i, fs := range breakdown {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := fv.selectedFamily == i
			if imgui.SelectableBoolV(fmt.Sprintf("%d", fs.Family.Index()), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				fv.selectedFamily = i
			}

			imgui.TableNextColumn()
			imgui.Text(fs.Family.String())

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", fs.EntityCount))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", fs.ListenerCount))
		}

		imgui.EndTable()
	}

	if fv.selectedFamily >= 0 && fv.selectedFamily < len(breakdown) {
		fs := breakdown[fv.selectedFamily]
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Members of family %d:", fs.Family.Index()))
		for entity := range engine.EntitiesFor(fs.Family).All() {
			imgui.BulletText(fmt.Sprintf("entity %d (%s)", entity.ID(), componentNames(entity)))
		}
	}

	imgui.End()
}
