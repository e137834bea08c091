package ecs

import "iter"

// QueryResult pairs a matched entity with its components, in the order the
// query's types were given.
type QueryResult struct {
	Entity     *Entity
	Components []any
}

// Query selects the entities of a scene that have a component of every one of
// its types. The order of the types defines the order of each result's
// components, and must match the parameter order of any callback fed by it.
//
// A Query holds no scene state. Each Run scans the scene as it is at that
// moment; results are not updated by later changes to the scene.
type Query struct {
	types []ComponentType
}

// NewQuery creates a query for the given component types.
func NewQuery(types ...ComponentType) *Query {
	q := &Query{types: make([]ComponentType, len(types))}
	copy(q.types, types)
	return q
}

// Types returns the query's component types in order.
func (q *Query) Types() []ComponentType {
	types := make([]ComponentType, len(q.types))
	copy(types, q.types)
	return types
}

// match returns e's components for every query type, or false if any is
// missing. Partial matches are discarded, never padded.
func (q *Query) match(columns []*Components, e *Entity) ([]any, bool) {
	components := make([]any, len(columns))
	for i, col := range columns {
		if col == nil {
			return nil, false
		}
		c := col.Get(e.id)
		if c == nil {
			return nil, false
		}
		components[i] = c
	}
	return components, true
}

func (q *Query) columns(s *Scene) []*Components {
	columns := make([]*Components, len(q.types))
	for i, ct := range q.types {
		columns[i] = s.column(ct)
	}
	return columns
}

// Iter yields every entity of s having all of the query's component types, in
// ascending entity ID order, along with those components.
func (q *Query) Iter(s *Scene) iter.Seq2[*Entity, []any] {
	return func(yield func(*Entity, []any) bool) {
		columns := q.columns(s)
		for e := range s.Entities() {
			components, ok := q.match(columns, e)
			if !ok {
				continue
			}
			if !yield(e, components) {
				return
			}
		}
	}
}

// Run materializes the query against s.
func (q *Query) Run(s *Scene) []QueryResult {
	results := make([]QueryResult, 0)
	for e, components := range q.Iter(s) {
		results = append(results, QueryResult{Entity: e, Components: components})
	}
	return results
}

// Count returns the number of entities of s matched by the query.
func (q *Query) Count(s *Scene) int {
	n := 0
	for range q.Iter(s) {
		n++
	}
	return n
}
