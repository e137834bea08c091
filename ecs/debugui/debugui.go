// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// It manages ImGui rendering and input state through ECS components and systems.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/glecs/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// InputSource reports whether ImGui wants to capture input.
type InputSource interface {
	WantCaptureMouse() bool
	WantCaptureKeyboard() bool
}

type currentIO struct{}

func (currentIO) WantCaptureMouse() bool    { return imgui.CurrentIO().WantCaptureMouse() }
func (currentIO) WantCaptureKeyboard() bool { return imgui.CurrentIO().WantCaptureKeyboard() }

// ImguiSystem renders every enabled entity's ImguiItem and keeps an
// ImguiInputState component up to date. Its Update must run between the
// backend's BeginFrame and EndFrame.
type ImguiSystem struct {
	scene *ecs.Scene
	items *ecs.Query
	input InputSource
	state *ecs.Entity
}

// NewImguiSystem creates the system and the entity holding the input state,
// registering ImguiItem and ImguiInputState with the scene if needed.
func NewImguiSystem(scene *ecs.Scene, ids *ecs.IDAllocator) (*ImguiSystem, error) {
	if err := registerOnce[ImguiItem](scene); err != nil {
		return nil, err
	}
	if err := registerOnce[ImguiInputState](scene); err != nil {
		return nil, err
	}

	state := ecs.NewEntity(ids)
	if err := scene.AddEntity(state); err != nil {
		return nil, err
	}
	if err := scene.SetComponent(state, &ImguiInputState{}); err != nil {
		return nil, err
	}

	return &ImguiSystem{
		scene: scene,
		items: ecs.NewQuery(ecs.TypeFor[ImguiItem]()),
		input: currentIO{},
		state: state,
	}, nil
}

// WithInputSource replaces the ImGui IO the input state is read from.
func (i *ImguiSystem) WithInputSource(input InputSource) *ImguiSystem {
	i.input = input
	return i
}

// InputState returns the current input capture state.
func (i *ImguiSystem) InputState() *ImguiInputState {
	return ecs.ReadComponent[ImguiInputState](i.scene, i.state)
}

// Update refreshes the input state and calls every enabled item's Render.
func (i *ImguiSystem) Update(float64) error {
	if state := i.InputState(); state != nil {
		state.WantCaptureMouse = i.input.WantCaptureMouse()
		state.WantCaptureKeyboard = i.input.WantCaptureKeyboard()
	}

	for e, components := range i.items.Iter(i.scene) {
		item := components[0].(*ImguiItem)
		if e.IsEnabled() && item.Render != nil {
			item.Render()
		}
	}
	return nil
}

func registerOnce[T any](scene *ecs.Scene) error {
	if scene.IsComponentTypeRegistered(ecs.TypeFor[T]()) {
		return nil
	}
	return ecs.RegisterComponent[T](scene)
}
