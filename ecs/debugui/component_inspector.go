package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/glecs/ecs"
)

// ComponentInspector shows and edits the components of the entity selected
// in an EntityBrowser. Edits write straight into the stored components.
type ComponentInspector struct {
	scene   *ecs.Scene
	browser *EntityBrowser
}

func NewComponentInspector(scene *ecs.Scene, browser *EntityBrowser) *ComponentInspector {
	return &ComponentInspector{scene: scene, browser: browser}
}

func (ci *ComponentInspector) Render() {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	e := ci.browser.Selected()
	if e == nil {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", e.ID()))
	enabled := e.IsEnabled()
	if imgui.Checkbox("Enabled", &enabled) {
		if enabled {
			e.Enable()
		} else {
			e.Disable()
		}
	}
	imgui.Separator()

	for _, ct := range ci.scene.ComponentTypes() {
		component := ci.scene.GetComponent(e, ct)
		if component == nil {
			continue
		}

		if imgui.TreeNodeStr(ct.String()) {
			ci.renderStruct(reflect.ValueOf(component).Elem())
			imgui.TreePop()
		}
	}

	imgui.End()
}

func (ci *ComponentInspector) renderStruct(val reflect.Value) {
	for _, field := range globalReflectionCache.Fields(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.IsPointer {
			if fieldVal.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		ci.renderField(field.Name, fieldVal)
	}
}

func (ci *ComponentInspector) renderField(name string, val reflect.Value) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) {
			SetFieldValue(val, int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && v >= 0 {
			SetFieldValue(val, uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) {
			SetFieldValue(val, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) {
			SetFieldValue(val, v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &v, imgui.InputTextFlagsNone, nil) {
			SetFieldValue(val, v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			ci.renderStruct(val)
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		if val.CanInterface() {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
		} else {
			imgui.Text(fmt.Sprintf("%s: <%s>", name, val.Type()))
		}
	}
}

// SetFieldValue assigns value to field, converting between numeric kinds. It
// reports whether the field was set.
func SetFieldValue(field reflect.Value, value any) bool {
	if !field.CanSet() {
		return false
	}
	v := reflect.ValueOf(value)
	if !v.IsValid() || !v.Type().ConvertibleTo(field.Type()) {
		return false
	}
	if (v.Kind() == reflect.String) != (field.Kind() == reflect.String) {
		return false
	}
	field.Set(v.Convert(field.Type()))
	return true
}
