package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/glecs/ecs"
)

// QueryDebugger builds a query from checked component types and shows the
// entities it matches.
type QueryDebugger struct {
	scene    *ecs.Scene
	selected map[ecs.ComponentType]bool
}

func NewQueryDebugger(scene *ecs.Scene) *QueryDebugger {
	return &QueryDebugger{
		scene:    scene,
		selected: make(map[ecs.ComponentType]bool),
	}
}

// Toggle adds ct to, or removes it from, the debugged query.
func (qd *QueryDebugger) Toggle(ct ecs.ComponentType, selected bool) {
	if selected {
		qd.selected[ct] = true
	} else {
		delete(qd.selected, ct)
	}
}

func (qd *QueryDebugger) Clear() {
	qd.selected = make(map[ecs.ComponentType]bool)
}

// Query returns a query over the selected types, in registration order, or
// nil if nothing is selected.
func (qd *QueryDebugger) Query() *ecs.Query {
	var types []ecs.ComponentType
	for _, ct := range qd.scene.ComponentTypes() {
		if qd.selected[ct] {
			types = append(types, ct)
		}
	}
	if len(types) == 0 {
		return nil
	}
	return ecs.NewQuery(types...)
}

func (qd *QueryDebugger) Render() {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.Clear()
	}

	for _, ct := range qd.scene.ComponentTypes() {
		selected := qd.selected[ct]
		if imgui.Checkbox(ct.String(), &selected) {
			qd.Toggle(ct, selected)
		}
	}

	imgui.Separator()

	query := qd.Query()
	if query == nil {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	results := query.Run(qd.scene)
	disabled := 0
	for _, r := range results {
		if !r.Entity.IsEnabled() {
			disabled++
		}
	}

	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(results)))
	imgui.Text(fmt.Sprintf("Disabled: %d", disabled))

	if imgui.TreeNodeStr("Matches") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryMatchTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Entity ID")
			imgui.TableSetupColumn("Enabled")
			imgui.TableHeadersRow()

			for _, r := range results {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(fmt.Sprintf("%d", r.Entity.ID()))

				imgui.TableSetColumnIndex(1)
				imgui.Text(fmt.Sprintf("%t", r.Entity.IsEnabled()))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}
