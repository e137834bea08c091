package ecs_test

import (
	"sync"
	"testing"

	"github.com/plus3/glecs/ecs"
	"github.com/stretchr/testify/assert"
)

func TestEntityUniqueIds(t *testing.T) {
	ids := ecs.NewIDAllocator()

	const count = 1000
	seen := make(map[ecs.EntityID]bool, count)
	for i := 0; i < count; i++ {
		seen[ecs.NewEntity(ids).ID()] = true
	}
	assert.Len(t, seen, count)
}

func TestIDAllocatorMonotonic(t *testing.T) {
	ids := ecs.NewIDAllocator()
	assert.Equal(t, ecs.EntityID(0), ids.Next())
	assert.Equal(t, ecs.EntityID(1), ids.Next())
	assert.Equal(t, ecs.EntityID(2), ecs.NewEntity(ids).ID())

	other := ecs.NewIDAllocator()
	assert.Equal(t, ecs.EntityID(0), other.Next(), "allocators are independent")
}

func TestIDAllocatorConcurrent(t *testing.T) {
	ids := ecs.NewIDAllocator()

	var mu sync.Mutex
	seen := make(map[ecs.EntityID]bool)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				id := ids.Next()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 800)
}

func TestEntityFromId(t *testing.T) {
	ids := ecs.NewIDAllocator()
	e0 := ecs.NewEntity(ids)
	ecs.NewEntity(ids)

	ref := ecs.EntityFromID(e0.ID())
	assert.Equal(t, e0.ID(), ref.ID())
	assert.True(t, ref.IsEnabled())

	// fromId does not consume an ID
	assert.Equal(t, ecs.EntityID(2), ids.Next())
}

func TestEntityEnableDisable(t *testing.T) {
	e := ecs.NewEntity(ecs.NewIDAllocator())
	assert.True(t, e.IsEnabled())

	e.Disable()
	assert.False(t, e.IsEnabled())
	e.Disable()
	assert.False(t, e.IsEnabled())

	e.Enable()
	assert.True(t, e.IsEnabled())
	e.Enable()
	assert.True(t, e.IsEnabled())

	e.Enable()
	e.Disable()
	assert.False(t, e.IsEnabled())

	e.Disable()
	e.Enable()
	assert.True(t, e.IsEnabled())
}

func TestEntityString(t *testing.T) {
	e := ecs.EntityFromID(42)
	assert.Equal(t, "entity(42)", e.String())
	e.Disable()
	assert.Equal(t, "entity(42, disabled)", e.String())
}
