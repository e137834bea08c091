package ecs_test

import (
	"testing"

	"github.com/plus3/glecs/ecs"
	"github.com/stretchr/testify/assert"
)

func TestSceneNode(t *testing.T) {
	root := ecs.NewSceneNode()
	a, b := ecs.NewSceneNode(), ecs.NewSceneNode()

	assert.Nil(t, root.Parent())
	assert.Empty(t, root.Children())

	assert.Same(t, root, root.AddChild(a, nil, b))
	assert.Equal(t, []*ecs.SceneNode{a, b}, root.Children())
	assert.Same(t, root, a.Parent())
	assert.Same(t, root, b.Parent())

	children := root.Children()
	children[0] = nil
	assert.Same(t, a, root.Children()[0])

	orphan := ecs.NewSceneNode().SetParent(root)
	assert.Same(t, root, orphan.Parent())
	assert.Len(t, root.Children(), 2)
}
