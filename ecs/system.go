package ecs

import "fmt"

// System represents a behavior that runs once per scene update.
type System interface {
	Update(dt float64) error
}

// UpdateFunc is called once per matched, enabled entity with the elapsed time
// and the entity's components in query order. Callbacks communicate only by
// mutating the components they receive.
type UpdateFunc func(dt float64, components ...any) error

// QuerySystem applies an UpdateFunc to the entities matched by a query.
//
// A live system re-runs its query against its scene on every update and so
// always sees the current entities. A snapshot system keeps the results it was
// built with; entities and components added afterwards are not seen until a
// new system is built.
type QuerySystem struct {
	name    string
	fn      UpdateFunc
	scene   *Scene
	query   *Query
	results []QueryResult
}

// NewSystem creates a live system that runs query against scene on every update.
func NewSystem(scene *Scene, query *Query, fn UpdateFunc) *QuerySystem {
	return &QuerySystem{
		fn:    fn,
		scene: scene,
		query: query,
	}
}

// NewSnapshotSystem creates a system over a fixed, previously computed query
// result.
//
//	results := ecs.NewQuery(ecs.TypeFor[A](), ecs.TypeFor[B]()).Run(scene)
//	system := ecs.NewSnapshotSystem(results, ecs.Each2(func(dt float64, a *A, b *B) {
//		// work with a and b
//	}))
func NewSnapshotSystem(results []QueryResult, fn UpdateFunc) *QuerySystem {
	return &QuerySystem{
		fn:      fn,
		results: results,
	}
}

// Named sets the name reported in scene statistics and logs.
func (s *QuerySystem) Named(name string) *QuerySystem {
	s.name = name
	return s
}

// Name returns the system's name.
func (s *QuerySystem) Name() string {
	if s.name == "" {
		return "QuerySystem"
	}
	return s.name
}

// Live reports whether the system re-queries on every update.
func (s *QuerySystem) Live() bool {
	return s.query != nil
}

// Results returns the snapshot, or for a live system the results of its most
// recent update.
func (s *QuerySystem) Results() []QueryResult {
	return s.results
}

// Update calls the system's callback for every enabled matched entity.
// Disabled entities are skipped for this update only. The first callback error
// stops the update.
func (s *QuerySystem) Update(dt float64) error {
	if s.query != nil {
		s.results = s.query.Run(s.scene)
	}

	for _, result := range s.results {
		if !result.Entity.IsEnabled() {
			continue
		}
		if err := s.fn(dt, result.Components...); err != nil {
			return fmt.Errorf("entity %d: %w", result.Entity.id, err)
		}
	}
	return nil
}

// Each1 adapts a typed single-component callback to an UpdateFunc.
func Each1[A any](fn func(dt float64, a *A)) UpdateFunc {
	return func(dt float64, components ...any) error {
		fn(dt, components[0].(*A))
		return nil
	}
}

// Each2 adapts a typed two-component callback to an UpdateFunc.
func Each2[A, B any](fn func(dt float64, a *A, b *B)) UpdateFunc {
	return func(dt float64, components ...any) error {
		fn(dt, components[0].(*A), components[1].(*B))
		return nil
	}
}

// Each3 adapts a typed three-component callback to an UpdateFunc.
func Each3[A, B, C any](fn func(dt float64, a *A, b *B, c *C)) UpdateFunc {
	return func(dt float64, components ...any) error {
		fn(dt, components[0].(*A), components[1].(*B), components[2].(*C))
		return nil
	}
}
