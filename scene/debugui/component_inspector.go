package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/retained/scene"
)

// ComponentInspector shows the payloads of the node selected in a
// NodeBrowser and lets numeric, string and enum fields be edited in place.
// Edits write straight through the arena's stored pointer, so the next frame
// renders the changed value.
type ComponentInspector struct {
	browser *NodeBrowser
}

// NewComponentInspector creates an inspector following the given browser's
// selection.
func NewComponentInspector(browser *NodeBrowser) *ComponentInspector {
	return &ComponentInspector{browser: browser}
}

func (ci *ComponentInspector) Render(frame *scene.Frame) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	selected, ok := ci.browser.Selected()
	if !ok {
		imgui.Text("No node selected")
		imgui.End()
		return
	}

	g := frame.Graph
	if !g.IsValid(selected) {
		imgui.Text(fmt.Sprintf("%v is no longer alive", selected))
		imgui.End()
		return
	}

	imgui.Text(selected.String())
	imgui.Text(fmt.Sprintf("Flags: %s", flagString(g.FlagsOf(selected))))
	if parent, ok := g.Tree().Parent(selected); ok {
		imgui.Text(fmt.Sprintf("Parent: %v", parent))
	} else {
		imgui.Text("Parent: none (root)")
	}
	imgui.Separator()

	if c, err := g.Visuals().Lookup(selected); err == nil {
		ci.renderComponent(c)
	}
	if c, err := g.Transforms().Lookup(selected); err == nil {
		ci.renderComponent(c)
	}

	imgui.End()
}

func (ci *ComponentInspector) renderComponent(c scene.Component) {
	if !imgui.TreeNodeStr(scene.KindOf(c).String()) {
		return
	}
	defer imgui.TreePop()

	// Payloads are stored as pointers, so Elem() yields settable fields.
	val := reflect.ValueOf(c).Elem()
	for _, field := range globalReflectionCache.GetFields(val.Type()) {
		ci.renderField(field.Name, val.Field(field.Index), field)
	}
}

func (ci *ComponentInspector) renderField(name string, val reflect.Value, field FieldInfo) {
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && v >= 0 && val.CanSet() {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			for _, nf := range globalReflectionCache.GetFields(val.Type()) {
				ci.renderField(nf.Name, val.Field(nf.Index), nf)
			}
			imgui.TreePop()
		}

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}
