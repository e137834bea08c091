package ecs_test

import (
	"testing"

	"github.com/plus3/glecs/ecs"
	"github.com/stretchr/testify/require"
)

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Health struct {
	Current int
	Max     int
}

type Name string

type ComponentA struct {
	Prop int
}

type ComponentB struct {
	Prop int
}

type ComponentC struct {
	Prop int
}

type Flammable struct {
	ecs.Tag
}

// newTestScene creates a scene with the given types registered and count
// entities, each having a zero value of every type.
func newTestScene(t *testing.T, ids *ecs.IDAllocator, count int, types ...ecs.ComponentType) (*ecs.Scene, []*ecs.Entity) {
	t.Helper()

	scene := ecs.NewScene()
	for _, ct := range types {
		require.NoError(t, scene.RegisterComponentType(ct))
	}

	entities := make([]*ecs.Entity, count)
	for i := range entities {
		e := ecs.NewEntity(ids)
		require.NoError(t, scene.AddEntity(e))
		for _, ct := range types {
			require.NoError(t, scene.SetComponent(e, newComponent(ct)))
		}
		entities[i] = e
	}
	return scene, entities
}

func newComponent(ct ecs.ComponentType) any {
	switch ct {
	case ecs.TypeFor[ComponentA]():
		return &ComponentA{Prop: 1}
	case ecs.TypeFor[ComponentB]():
		return &ComponentB{Prop: 10}
	case ecs.TypeFor[ComponentC]():
		return &ComponentC{Prop: 100}
	case ecs.TypeFor[Position]():
		return &Position{}
	case ecs.TypeFor[Velocity]():
		return &Velocity{}
	}
	panic("no test constructor for " + ct.String())
}
