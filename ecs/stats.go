package ecs

import (
	"time"

	"github.com/google/uuid"
)

// SceneStats provides a snapshot of a scene's contents and system execution.
type SceneStats struct {
	SceneID            uuid.UUID
	EntityCount        int
	ComponentTypeCount int
	SystemCount        int
	TotalExecutions    int64
	Types              []ComponentTypeStats
	Systems            []SystemStats
}

// ComponentTypeStats describes one registered component type.
type ComponentTypeStats struct {
	Name  string
	ID    uint64
	IsTag bool
	Count int
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func (st *systemStatsInternal) record(duration time.Duration) {
	st.executionCount++
	st.lastDuration = duration
	st.totalDuration += duration

	if duration < st.minDuration {
		st.minDuration = duration
	}
	if duration > st.maxDuration {
		st.maxDuration = duration
	}
}

func (st *systemStatsInternal) snapshot() SystemStats {
	avgDuration := time.Duration(0)
	minDuration := st.minDuration
	if st.executionCount > 0 {
		avgDuration = st.totalDuration / time.Duration(st.executionCount)
	} else {
		minDuration = 0
	}

	return SystemStats{
		Name:           st.name,
		ExecutionCount: st.executionCount,
		MinDuration:    minDuration,
		MaxDuration:    st.maxDuration,
		AvgDuration:    avgDuration,
		LastDuration:   st.lastDuration,
		TotalDuration:  st.totalDuration,
	}
}

// SystemStats returns execution statistics for each system, in system order.
func (s *Scene) SystemStats() []SystemStats {
	stats := make([]SystemStats, len(s.systemStats))
	for i, internal := range s.systemStats {
		stats[i] = internal.snapshot()
	}
	return stats
}

// CollectStats gathers entity, component and system statistics.
func (s *Scene) CollectStats() SceneStats {
	stats := SceneStats{
		SceneID:            s.id,
		EntityCount:        s.EntityCount(),
		ComponentTypeCount: len(s.types),
		SystemCount:        len(s.systems),
		Types:              make([]ComponentTypeStats, 0, len(s.types)),
		Systems:            s.SystemStats(),
	}

	for _, ct := range s.types {
		stats.Types = append(stats.Types, ComponentTypeStats{
			Name:  ct.Name(),
			ID:    ct.ID(),
			IsTag: ct.IsTag(),
			Count: s.column(ct).Len(),
		})
	}

	for _, sys := range stats.Systems {
		stats.TotalExecutions += sys.ExecutionCount
	}
	return stats
}
