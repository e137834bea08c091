package ecs

import (
	"strconv"
	"sync/atomic"
)

// EntityID is the unique, immutable identifier of an entity. It doubles as the
// entity's slot index in every Scene column.
type EntityID uint32

// IDAllocator hands out entity IDs. IDs start at 0, increase by one per call,
// and are never reused. An allocator is normally owned by whatever assembles
// the application and shared by everything that creates entities.
type IDAllocator struct {
	next atomic.Uint32
}

// NewIDAllocator creates an allocator whose first ID is 0.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

// Next returns the next unused ID.
func (a *IDAllocator) Next() EntityID {
	return EntityID(a.next.Add(1) - 1)
}

// Entity is a handle to an in-game object. It carries no data besides its ID
// and an enabled flag; components live in a Scene.
type Entity struct {
	id       EntityID
	disabled bool
}

// NewEntity creates an enabled entity with a fresh ID from ids.
func NewEntity(ids *IDAllocator) *Entity {
	return &Entity{id: ids.Next()}
}

// EntityFromID creates a handle carrying id verbatim without consuming an ID
// from any allocator. Use it to refer to an entity that already exists in a
// scene; it registers nothing.
func EntityFromID(id EntityID) *Entity {
	return &Entity{id: id}
}

// ID returns the entity's identifier.
func (e *Entity) ID() EntityID {
	return e.id
}

// Enable marks the entity for inclusion in subsequent system updates.
func (e *Entity) Enable() {
	e.disabled = false
}

// Disable excludes the entity from subsequent system updates until re-enabled.
func (e *Entity) Disable() {
	e.disabled = true
}

// IsEnabled reports whether the entity is currently enabled.
func (e *Entity) IsEnabled() bool {
	return !e.disabled
}

func (e *Entity) String() string {
	s := "entity(" + strconv.FormatUint(uint64(e.id), 10)
	if e.disabled {
		s += ", disabled"
	}
	return s + ")"
}
