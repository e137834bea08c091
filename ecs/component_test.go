package ecs_test

import (
	"testing"

	"github.com/plus3/glecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentTypeIdentity(t *testing.T) {
	assert.Equal(t, ecs.TypeFor[Position](), ecs.TypeFor[Position]())
	assert.Equal(t, ecs.TypeFor[Position](), ecs.TypeFor[*Position]())
	assert.NotEqual(t, ecs.TypeFor[Position](), ecs.TypeFor[Velocity]())

	ct, err := ecs.TypeOfComponent(&Position{})
	require.NoError(t, err)
	assert.Equal(t, ecs.TypeFor[Position](), ct)

	ct, err = ecs.TypeOfComponent(Position{})
	require.NoError(t, err)
	assert.Equal(t, ecs.TypeFor[Position](), ct)
}

func TestComponentTypeNames(t *testing.T) {
	ct := ecs.TypeFor[ComponentA]()
	assert.Equal(t, "ComponentA", ct.Name())
	assert.Equal(t, "ecs_test.ComponentA", ct.String())
	assert.Equal(t, "ComponentA", ecs.ComponentName(&ComponentA{}))
	assert.Equal(t, "ComponentA", ecs.ComponentName(ComponentA{}))
	assert.Equal(t, "", ecs.ComponentName(nil))
}

func TestComponentTypeStableID(t *testing.T) {
	assert.Equal(t, ecs.TypeFor[ComponentA]().ID(), ecs.TypeFor[ComponentA]().ID())
	assert.NotEqual(t, ecs.TypeFor[ComponentA]().ID(), ecs.TypeFor[ComponentB]().ID())
	assert.NotZero(t, ecs.TypeFor[ComponentA]().ID())
	assert.Zero(t, ecs.ComponentType{}.ID())
}

func TestComponentTypeInvalidKinds(t *testing.T) {
	_, err := ecs.TypeOfComponent(nil)
	assert.ErrorIs(t, err, ecs.ErrInvalidComponent)

	_, err = ecs.TypeOfComponent(map[string]int{})
	assert.ErrorIs(t, err, ecs.ErrInvalidComponent)

	_, err = ecs.TypeOfComponent(func() {})
	assert.ErrorIs(t, err, ecs.ErrInvalidComponent)

	assert.Panics(t, func() { ecs.TypeFor[chan int]() })
	assert.Panics(t, func() { ecs.TypeFor[**Position]() })
	assert.False(t, ecs.ComponentType{}.Valid())
}

func TestTag(t *testing.T) {
	assert.True(t, ecs.TypeFor[Flammable]().IsTag())
	assert.False(t, ecs.TypeFor[Position]().IsTag())

	assert.True(t, ecs.IsTagComponent(Flammable{}))
	assert.True(t, ecs.IsTagComponent(&Flammable{}))
	assert.False(t, ecs.IsTagComponent(&Position{}))

	components := []any{&Position{}, &Flammable{}, &Health{}}
	tags := 0
	for _, c := range components {
		if ecs.IsTagComponent(c) {
			tags++
		}
	}
	assert.Equal(t, 1, tags)
}
