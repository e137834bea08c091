package ecs_test

import (
	"testing"
	"time"

	"github.com/plus3/glecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sleepSystem struct {
	sleepDur time.Duration
}

func (s *sleepSystem) Update(float64) error {
	time.Sleep(s.sleepDur)
	return nil
}

func TestSceneStats(t *testing.T) {
	ids := ecs.NewIDAllocator()
	scene := ecs.NewScene()

	stats := scene.CollectStats()
	assert.Equal(t, scene.ID(), stats.SceneID)
	assert.Zero(t, stats.EntityCount)
	assert.Zero(t, stats.ComponentTypeCount)
	assert.Zero(t, stats.SystemCount)

	require.NoError(t, ecs.RegisterComponent[Position](scene))
	require.NoError(t, ecs.RegisterComponent[Flammable](scene))

	for i := 0; i < 3; i++ {
		e := ecs.NewEntity(ids)
		require.NoError(t, scene.AddEntity(e))
		require.NoError(t, scene.SetComponent(e, Position{}))
		if i == 0 {
			require.NoError(t, scene.SetComponent(e, Flammable{}))
		}
	}
	scene.AddSystem(&sleepSystem{})

	stats = scene.CollectStats()
	assert.Equal(t, 3, stats.EntityCount)
	assert.Equal(t, 2, stats.ComponentTypeCount)
	assert.Equal(t, 1, stats.SystemCount)

	require.Len(t, stats.Types, 2)
	assert.Equal(t, ecs.ComponentTypeStats{
		Name:  "Position",
		ID:    ecs.TypeFor[Position]().ID(),
		Count: 3,
	}, stats.Types[0])
	assert.Equal(t, "Flammable", stats.Types[1].Name)
	assert.True(t, stats.Types[1].IsTag)
	assert.Equal(t, 1, stats.Types[1].Count)
}

func TestSystemStats(t *testing.T) {
	scene := ecs.NewScene()
	fast := &sleepSystem{}
	slow := &sleepSystem{sleepDur: 2 * time.Millisecond}
	scene.AddSystem(fast)
	scene.AddSystem(slow)

	before := scene.SystemStats()
	require.Len(t, before, 2)
	assert.Zero(t, before[0].ExecutionCount)
	assert.Zero(t, before[0].MinDuration)

	for i := 0; i < 3; i++ {
		require.NoError(t, scene.Update(1))
	}

	stats := scene.CollectStats()
	assert.Equal(t, int64(6), stats.TotalExecutions)

	slowStats := stats.Systems[1]
	assert.Equal(t, "sleepSystem", slowStats.Name)
	assert.Equal(t, int64(3), slowStats.ExecutionCount)
	assert.GreaterOrEqual(t, slowStats.MinDuration, 2*time.Millisecond)
	assert.GreaterOrEqual(t, slowStats.MaxDuration, slowStats.MinDuration)
	assert.Equal(t, slowStats.TotalDuration/3, slowStats.AvgDuration)
	assert.Greater(t, slowStats.TotalDuration, stats.Systems[0].TotalDuration)
}
