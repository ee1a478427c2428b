package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/entwine/ecs"
)

func newComponentInspector(selected *selection) *ComponentInspector {
	return &ComponentInspector{selected: selected}
}

func (ci *ComponentInspector) render(engine *ecs.Engine) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if ci.selected.entityID == 0 {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	entity := engine.GetEntity(ci.selected.entityID)
	if entity == nil {
		imgui.Text(fmt.Sprintf("Entity %d no longer exists", ci.selected.entityID))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", entity.ID()))
	imgui.Separator()

	for _, component := range entity.Components() {
		t := reflect.TypeOf(component)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}

		if imgui.TreeNodeStr(t.String()) {
			ci.renderComponent(component, t)
			imgui.TreePop()
		}
	}

	imgui.End()
}

func (ci *ComponentInspector) renderComponent(component ecs.Component, componentType reflect.Type) {
	val := reflect.ValueOf(component)
	editable := val.Kind() == reflect.Ptr
	if editable {
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		imgui.Text(fmt.Sprintf("value: %v", val.Interface()))
		return
	}

	for _, field := range globalReflectionCache.fields(componentType) {
		ci.renderField(field.Name, val.Field(field.Index), editable, field)
	}
}

// renderField draws one struct field. Pointer components are live, so edits
// through the widgets mutate the component in place.
func (ci *ComponentInspector) renderField(name string, val reflect.Value, editable bool, field fieldInfo) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	if field.IsPointer {
		if val.IsNil() {
			imgui.Text(fmt.Sprintf("%s: nil", name))
			return
		}
		val = val.Elem()
	}

	editable = editable && val.CanSet()

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && editable {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && editable && v >= 0 {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) && editable {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && editable {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &v, imgui.InputTextFlagsNone, nil) && editable {
			val.SetString(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			for _, nested := range globalReflectionCache.fields(val.Type()) {
				ci.renderField(nested.Name, val.Field(nested.Index), editable, nested)
			}
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}
