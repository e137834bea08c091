package ecs

import (
	"fmt"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// ComponentType identifies a component type within a Scene. It is derived from
// the Go type itself, so two same-named types from different packages never
// collide. The zero value is invalid.
type ComponentType struct {
	t reflect.Type
}

// Tagged is implemented by marker components. Embed Tag to implement it.
type Tagged interface {
	IsTag() bool
}

// Tag is an embeddable marker used to group components by category.
//
//	type Flammable struct{ ecs.Tag }
//
// Tag is one byte wide so that every attached marker has its own address.
type Tag struct{ _ byte }

// IsTag always reports true.
func (Tag) IsTag() bool { return true }

var taggedType = reflect.TypeFor[Tagged]()

// TypeFor returns the ComponentType of T. Pointer types resolve to their
// element type, so TypeFor[*Position]() == TypeFor[Position]().
// It panics if T is not a valid component type.
func TypeFor[T any]() ComponentType {
	ct, err := componentTypeOf(reflect.TypeFor[T]())
	if err != nil {
		panic(err.Error())
	}
	return ct
}

// TypeOfComponent returns the ComponentType of a component value or pointer.
func TypeOfComponent(c any) (ComponentType, error) {
	if c == nil {
		return ComponentType{}, fmt.Errorf("%w: nil component", ErrInvalidComponent)
	}
	return componentTypeOf(reflect.TypeOf(c))
}

func componentTypeOf(t reflect.Type) (ComponentType, error) {
	if t == nil {
		return ComponentType{}, fmt.Errorf("%w: nil type", ErrInvalidComponent)
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	// Components can be structs or primitives, but not references or behavior
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return ComponentType{}, fmt.Errorf("%w: %s components are not supported (%s)", ErrInvalidComponent, t.Kind(), t)
	}
	return ComponentType{t: t}, nil
}

// Name returns the declared name of the type, e.g. "Position".
func (ct ComponentType) Name() string {
	if ct.t == nil {
		return ""
	}
	if name := ct.t.Name(); name != "" {
		return name
	}
	return ct.t.String()
}

// String returns the package-qualified type name, e.g. "game.Position".
func (ct ComponentType) String() string {
	if ct.t == nil {
		return "<invalid>"
	}
	return ct.t.String()
}

// ID returns a stable 64-bit identifier derived from the full import path and
// name of the type. It is suitable for display and for keying external data.
func (ct ComponentType) ID() uint64 {
	if ct.t == nil {
		return 0
	}
	return xxhash.Sum64String(ct.t.PkgPath() + "." + ct.t.String())
}

// IsTag reports whether values of this type (or pointers to them) implement Tagged.
func (ct ComponentType) IsTag() bool {
	if ct.t == nil {
		return false
	}
	return ct.t.Implements(taggedType) || reflect.PointerTo(ct.t).Implements(taggedType)
}

// Valid reports whether ct refers to a type.
func (ct ComponentType) Valid() bool {
	return ct.t != nil
}

// ComponentName returns the declared type name of a component, or "" if c is
// not a valid component.
func ComponentName(c any) string {
	ct, err := TypeOfComponent(c)
	if err != nil {
		return ""
	}
	return ct.Name()
}

// IsTagComponent reports whether c is a marker component.
func IsTagComponent(c any) bool {
	tagged, ok := c.(Tagged)
	return ok && tagged.IsTag()
}
