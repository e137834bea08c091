package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// View is a typed query. The type T must be a struct whose fields are pointers
// to component types; each match fills those fields with the entity's
// components.
//
// Embedded fields are always required. Named fields can be marked as optional
// using the `ecs:"optional"` struct tag, in which case they are nil when the
// entity has no such component.
//
//	view := ecs.NewView[struct {
//		*Position
//		*Velocity
//		Health *Health `ecs:"optional"`
//	}]()
type View[T any] struct {
	types       []ComponentType
	optional    []bool
	fieldOffset []uintptr

	// position of each field in the query's component tuple, -1 if optional
	queryIndex []int
	query      *Query
}

// NewView creates a view for the struct type T. It panics if T is not a
// struct of component pointers.
func NewView[T any]() *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{
		types:       make([]ComponentType, 0, structType.NumField()),
		optional:    make([]bool, 0, structType.NumField()),
		fieldOffset: make([]uintptr, 0, structType.NumField()),
		queryIndex:  make([]int, 0, structType.NumField()),
	}

	required := make([]ComponentType, 0, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Pointer {
			panic("View struct fields must be pointer types")
		}

		ct, err := componentTypeOf(field.Type.Elem())
		if err != nil || field.Type.Elem().Kind() == reflect.Pointer {
			panic("View field " + field.Name + " is not a component pointer")
		}

		isOptional := false
		if !field.Anonymous {
			if tag := field.Tag.Get("ecs"); tag != "" {
				if tag != "optional" {
					panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
				}
				isOptional = true
			}
		}

		v.types = append(v.types, ct)
		v.optional = append(v.optional, isOptional)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
		if isOptional {
			v.queryIndex = append(v.queryIndex, -1)
		} else {
			v.queryIndex = append(v.queryIndex, len(required))
			required = append(required, ct)
		}
	}

	v.query = NewQuery(required...)
	return v
}

// Query returns a query over the view's required component types.
func (v *View[T]) Query() *Query {
	return v.query
}

func (v *View[T]) setField(ptr *T, i int, component any) {
	fieldPtr := unsafe.Add(unsafe.Pointer(ptr), v.fieldOffset[i])
	if component == nil {
		*(*unsafe.Pointer)(fieldPtr) = nil
		return
	}
	*(*unsafe.Pointer)(fieldPtr) = dataPointer(component)
}

// Fill populates ptr with e's components. It returns false, leaving ptr
// partially written, if e lacks a required component.
func (v *View[T]) Fill(s *Scene, e *Entity, ptr *T) bool {
	if !s.HasEntity(e) {
		return false
	}
	for i, ct := range v.types {
		component := s.GetComponent(e, ct)
		if component == nil && !v.optional[i] {
			return false
		}
		v.setField(ptr, i, component)
	}
	return true
}

// Get returns a populated view struct for e, or nil if e lacks a required
// component.
func (v *View[T]) Get(s *Scene, e *Entity) *T {
	var result T
	if !v.Fill(s, e, &result) {
		return nil
	}
	return &result
}

// Iter yields every entity of s having the view's required components, in
// ascending entity ID order.
func (v *View[T]) Iter(s *Scene) iter.Seq2[*Entity, T] {
	return func(yield func(*Entity, T) bool) {
		for e, components := range v.query.Iter(s) {
			var result T
			for i, qi := range v.queryIndex {
				if qi >= 0 {
					v.setField(&result, i, components[qi])
				} else {
					v.setField(&result, i, s.GetComponent(e, v.types[i]))
				}
			}
			if !yield(e, result) {
				return
			}
		}
	}
}

// ViewSystem calls a typed callback for every enabled entity matched by a view.
// Like a live QuerySystem, it re-scans the scene on every update.
type ViewSystem[T any] struct {
	name  string
	view  *View[T]
	scene *Scene
	fn    func(dt float64, item T)
}

// NewViewSystem creates a system over NewView[T]().
func NewViewSystem[T any](s *Scene, fn func(dt float64, item T)) *ViewSystem[T] {
	return &ViewSystem[T]{
		view:  NewView[T](),
		scene: s,
		fn:    fn,
	}
}

// Named sets the name reported in scene statistics and logs.
func (vs *ViewSystem[T]) Named(name string) *ViewSystem[T] {
	vs.name = name
	return vs
}

// Name returns the system's name.
func (vs *ViewSystem[T]) Name() string {
	if vs.name == "" {
		return "ViewSystem"
	}
	return vs.name
}

// Update calls the callback for each enabled matched entity.
func (vs *ViewSystem[T]) Update(dt float64) error {
	for e, item := range vs.view.Iter(vs.scene) {
		if e.IsEnabled() {
			vs.fn(dt, item)
		}
	}
	return nil
}
