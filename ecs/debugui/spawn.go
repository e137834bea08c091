package debugui

import "github.com/plus3/glecs/ecs"

// DebugUI is the set of debug windows spawned into a scene.
type DebugUI struct {
	System    *ImguiSystem
	Browser   *EntityBrowser
	Inspector *ComponentInspector
	Stats     *StatsWindow
	Queries   *QueryDebugger

	Entities []*ecs.Entity
}

// SpawnDebugUI adds an entity with an ImguiItem for each debug window, and
// an ImguiSystem rendering them, to scene.
func SpawnDebugUI(scene *ecs.Scene, ids *ecs.IDAllocator) (*DebugUI, error) {
	system, err := NewImguiSystem(scene, ids)
	if err != nil {
		return nil, err
	}

	browser := NewEntityBrowser(scene, 100)
	ui := &DebugUI{
		System:    system,
		Browser:   browser,
		Inspector: NewComponentInspector(scene, browser),
		Stats:     NewStatsWindow(scene, 120),
		Queries:   NewQueryDebugger(scene),
	}

	for _, render := range []func(){
		ui.Browser.Render,
		ui.Inspector.Render,
		ui.Stats.Render,
		ui.Queries.Render,
	} {
		e := ecs.NewEntity(ids)
		if err := scene.AddEntity(e); err != nil {
			return nil, err
		}
		if err := scene.SetComponent(e, &ImguiItem{Render: render}); err != nil {
			return nil, err
		}
		ui.Entities = append(ui.Entities, e)
	}

	scene.AddSystem(system)
	return ui, nil
}

// SetVisible enables or disables every debug window.
func (ui *DebugUI) SetVisible(visible bool) {
	for _, e := range ui.Entities {
		if visible {
			e.Enable()
		} else {
			e.Disable()
		}
	}
}
