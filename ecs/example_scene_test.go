package ecs_test

import (
	"errors"
	"fmt"

	"github.com/plus3/glecs/ecs"
)

// ExampleScene shows the basic lifecycle: register component types, add
// entities, attach components, then drive a system with scene updates.
func ExampleScene() {
	ids := ecs.NewIDAllocator()
	scene := ecs.NewScene()
	ecs.RegisterComponent[Position](scene)
	ecs.RegisterComponent[Velocity](scene)

	for i := 0; i < 3; i++ {
		e := ecs.NewEntity(ids)
		scene.AddEntity(e)
		scene.SetComponent(e, Position{X: float32(i * 10)})
		scene.SetComponent(e, Velocity{DX: 1, DY: 2})
	}

	scene.AddSystem(ecs.NewSystem(scene,
		ecs.NewQuery(ecs.TypeFor[Position](), ecs.TypeFor[Velocity]()),
		ecs.Each2(func(dt float64, p *Position, v *Velocity) {
			p.X += v.DX * float32(dt)
			p.Y += v.DY * float32(dt)
		})).Named("movement"))

	scene.Update(1)
	scene.Update(1)

	for e := range scene.Entities() {
		p := ecs.ReadComponent[Position](scene, e)
		fmt.Printf("%v at (%.0f, %.0f)\n", e, p.X, p.Y)
	}

	// Output:
	// entity(0) at (2, 4)
	// entity(1) at (12, 4)
	// entity(2) at (22, 4)
}

// ExampleScene_SetComponent shows that setting a component replaces the
// previous component of the same type.
func ExampleScene_SetComponent() {
	scene := ecs.NewScene()
	ecs.RegisterComponent[Health](scene)

	e := ecs.NewEntity(ecs.NewIDAllocator())
	scene.AddEntity(e)

	first := &Health{Current: 10, Max: 10}
	second := &Health{Current: 5, Max: 20}
	scene.SetComponent(e, first)
	scene.SetComponent(e, second)

	fmt.Println(ecs.ReadComponent[Health](scene, e) == second)
	fmt.Println(scene.GetEntity(first) == nil)
	fmt.Println(scene.GetEntity(second) == e)

	// Output:
	// true
	// true
	// true
}

// ExampleScene_errors shows that rejected operations return errors which all
// match ErrConfig.
func ExampleScene_errors() {
	ids := ecs.NewIDAllocator()
	scene := ecs.NewScene()

	stranger := ecs.NewEntity(ids)
	err := scene.SetComponent(stranger, Position{})
	fmt.Println(errors.Is(err, ecs.ErrEntityNotAdded), errors.Is(err, ecs.ErrConfig))

	e := ecs.NewEntity(ids)
	scene.AddEntity(e)
	err = scene.SetComponent(e, Position{})
	fmt.Println(errors.Is(err, ecs.ErrComponentTypeNotRegistered))

	err = scene.AddEntity(e)
	fmt.Println(errors.Is(err, ecs.ErrDuplicateEntity))

	// Output:
	// true true
	// true
	// true
}

// ExampleView shows a typed query with an optional component.
func ExampleView() {
	ids := ecs.NewIDAllocator()
	scene := ecs.NewScene()
	ecs.RegisterComponent[Position](scene)
	ecs.RegisterComponent[Health](scene)

	a := ecs.NewEntity(ids)
	scene.AddEntity(a)
	scene.SetComponent(a, Position{X: 1, Y: 1})
	scene.SetComponent(a, Health{Current: 75, Max: 100})

	b := ecs.NewEntity(ids)
	scene.AddEntity(b)
	scene.SetComponent(b, Position{X: 2, Y: 2})

	view := ecs.NewView[struct {
		*Position
		Health *Health `ecs:"optional"`
	}]()

	for e, item := range view.Iter(scene) {
		if item.Health != nil {
			fmt.Printf("%v: (%.0f, %.0f) health %d/%d\n", e, item.X, item.Y, item.Health.Current, item.Health.Max)
		} else {
			fmt.Printf("%v: (%.0f, %.0f) no health\n", e, item.X, item.Y)
		}
	}

	// Output:
	// entity(0): (1, 1) health 75/100
	// entity(1): (2, 2) no health
}

// ExampleQuery_Run shows that query results are a snapshot of the scene.
func ExampleQuery_Run() {
	ids := ecs.NewIDAllocator()
	scene := ecs.NewScene()
	ecs.RegisterComponent[ComponentA](scene)
	ecs.RegisterComponent[ComponentB](scene)

	for i := 0; i < 4; i++ {
		e := ecs.NewEntity(ids)
		scene.AddEntity(e)
		scene.SetComponent(e, ComponentA{Prop: i})
		if i%2 == 1 {
			scene.SetComponent(e, ComponentB{Prop: i * 10})
		}
	}

	query := ecs.NewQuery(ecs.TypeFor[ComponentB](), ecs.TypeFor[ComponentA]())
	results := query.Run(scene)

	late := ecs.NewEntity(ids)
	scene.AddEntity(late)
	scene.SetComponent(late, ComponentA{})
	scene.SetComponent(late, ComponentB{})

	for _, r := range results {
		b := r.Components[0].(*ComponentB)
		a := r.Components[1].(*ComponentA)
		fmt.Println(r.Entity, b.Prop, a.Prop)
	}
	fmt.Println(len(results), query.Count(scene))

	// Output:
	// entity(1) 10 1
	// entity(3) 30 3
	// 2 3
}
