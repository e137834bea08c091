package ecs

import (
	"fmt"
	"iter"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/kamstrup/intmap"
	"go.uber.org/zap"
)

// Scene holds every ECS element of one game scene: the entities that exist,
// the components attached to them, and the systems that update them.
//
// Components are stored column-wise: one sparse, entity-ID-indexed column per
// registered component type. Systems iterate across columns for all entities
// having a given set of types.
//
// A Scene is owned by a single goroutine (the game loop or setup code) and is
// not safe for concurrent mutation.
type Scene struct {
	id     uuid.UUID
	logger *zap.Logger

	entities sparseArray[*Entity]
	columns  *intmap.Map[int, *Components]
	types    []ComponentType

	systems     []System
	systemStats []*systemStatsInternal
}

// SceneOption configures a Scene.
type SceneOption func(*Scene)

// WithLogger sets the logger used to report rejected operations and system
// failures. The default discards everything.
func WithLogger(logger *zap.Logger) SceneOption {
	return func(s *Scene) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScene creates an empty scene.
func NewScene(opts ...SceneOption) *Scene {
	s := &Scene{
		id:      uuid.New(),
		logger:  zap.NewNop(),
		columns: intmap.New[int, *Components](16),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.Stringer("scene", s.id))
	return s
}

// ID returns the scene's unique identifier.
func (s *Scene) ID() uuid.UUID {
	return s.id
}

// AddEntity adds an entity to the scene. Adding an entity whose ID is already
// present fails with ErrDuplicateEntity and leaves the scene unchanged.
func (s *Scene) AddEntity(e *Entity) error {
	if e == nil {
		return fmt.Errorf("%w: nil entity", ErrConfig)
	}
	if s.HasEntity(e) {
		s.logger.Warn("entity already added", zap.Uint32("entity", uint32(e.id)))
		return fmt.Errorf("%w (id: %d)", ErrDuplicateEntity, e.id)
	}
	s.entities.Set(int(e.id), e)
	return nil
}

// HasEntity reports whether an entity with e's ID has been added.
func (s *Scene) HasEntity(e *Entity) bool {
	if e == nil {
		return false
	}
	return s.entities.Has(int(e.id))
}

// Entity returns the entity added under id, or nil.
func (s *Scene) Entity(id EntityID) *Entity {
	e, _ := s.entities.Get(int(id))
	return e
}

// Entities iterates the scene's entities in ascending ID order.
func (s *Scene) Entities() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for _, e := range s.entities.All() {
			if !yield(e) {
				return
			}
		}
	}
}

// EntityCount returns the number of entities in the scene.
func (s *Scene) EntityCount() int {
	return s.entities.Len()
}

// RegisterComponentType registers a component type with the scene. This must
// be done once per type before components of that type can be set.
func (s *Scene) RegisterComponentType(ct ComponentType) error {
	if !ct.Valid() {
		return fmt.Errorf("%w: invalid component type", ErrInvalidComponent)
	}
	key := typeKey(ct.t)
	if s.columns.Has(key) {
		s.logger.Warn("component type already registered", zap.Stringer("component", ct))
		return fmt.Errorf("%w (%s)", ErrDuplicateComponentType, ct)
	}
	s.columns.Put(key, &Components{typ: ct})
	s.types = append(s.types, ct)
	return nil
}

// RegisterComponent registers T with the scene.
func RegisterComponent[T any](s *Scene) error {
	return s.RegisterComponentType(TypeFor[T]())
}

// IsComponentTypeRegistered reports whether ct has been registered.
func (s *Scene) IsComponentTypeRegistered(ct ComponentType) bool {
	if !ct.Valid() {
		return false
	}
	return s.columns.Has(typeKey(ct.t))
}

// ComponentTypes returns the registered types in registration order.
func (s *Scene) ComponentTypes() []ComponentType {
	types := make([]ComponentType, len(s.types))
	copy(types, s.types)
	return types
}

func (s *Scene) column(ct ComponentType) *Components {
	if !ct.Valid() {
		return nil
	}
	col, _ := s.columns.Get(typeKey(ct.t))
	return col
}

// SetComponent attaches component to e, replacing any component of the same
// type. The component may be a value or a pointer; pointers are stored as-is,
// values are copied into a newly allocated component.
//
//	c0, c1 := &Position{}, &Position{}
//	scene.SetComponent(e, c0) // e now has c0
//	scene.SetComponent(e, c1) // c0 has been replaced by c1
func (s *Scene) SetComponent(e *Entity, component any) error {
	if !s.HasEntity(e) {
		s.logger.Warn("entity must be added prior to setting its components",
			zap.String("component", ComponentName(component)))
		if e == nil {
			return fmt.Errorf("%w: nil entity", ErrEntityNotAdded)
		}
		return fmt.Errorf("%w (id: %d)", ErrEntityNotAdded, e.id)
	}

	ct, err := TypeOfComponent(component)
	if err != nil {
		return err
	}

	col := s.column(ct)
	if col == nil {
		s.logger.Warn("component types must be registered before use",
			zap.Uint32("entity", uint32(e.id)), zap.Stringer("component", ct))
		return fmt.Errorf("%w (received: %s)", ErrComponentTypeNotRegistered, ct)
	}
	return col.set(e.id, component)
}

// GetComponent returns e's component of type ct, or nil if the type is not
// registered or e has no such component. The result is always a pointer.
func (s *Scene) GetComponent(e *Entity, ct ComponentType) any {
	if e == nil {
		return nil
	}
	col := s.column(ct)
	if col == nil {
		return nil
	}
	return col.Get(e.id)
}

// HasComponent reports whether e has a component of type ct.
func (s *Scene) HasComponent(e *Entity, ct ComponentType) bool {
	return s.GetComponent(e, ct) != nil
}

// ReadComponent returns e's component of type T, or nil.
func ReadComponent[T any](s *Scene, e *Entity) *T {
	c, _ := s.GetComponent(e, TypeFor[T]()).(*T)
	return c
}

// GetComponentsOfType returns every component of type ct, or nil if the type
// has not been registered.
func (s *Scene) GetComponentsOfType(ct ComponentType) *Components {
	return s.column(ct)
}

// GetEntity returns the entity a component is attached to. component must be
// the pointer stored in the scene (as returned by GetComponent, or passed to
// SetComponent). Returns nil if it is not attached to any entity.
//
// The lookup scans the component's column; components do not refer back to
// their entity. Pointers to zero-size types may all share one address, so a
// zero-size component only resolves while a single entity holds its type.
func (s *Scene) GetEntity(component any) *Entity {
	ct, err := TypeOfComponent(component)
	if err != nil {
		return nil
	}
	col := s.column(ct)
	if col == nil {
		return nil
	}
	id, ok := col.indexOf(component)
	if !ok {
		return nil
	}
	return s.Entity(id)
}

// AddSystem appends a system. Systems run in the order they were added.
func (s *Scene) AddSystem(system System) {
	if system == nil {
		s.logger.Warn("ignoring nil system")
		return
	}

	name := systemName(system)
	s.systems = append(s.systems, system)
	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        name,
		minDuration: time.Duration(1<<63 - 1),
	})
	s.logger.Debug("system added", zap.String("system", name), zap.Int("index", len(s.systems)-1))
}

// Systems returns the systems attached to the scene.
func (s *Scene) Systems() []System {
	systems := make([]System, len(s.systems))
	copy(systems, s.systems)
	return systems
}

// Update runs every system once, in the order they were added, with the time
// elapsed since the previous update. If a system fails the remaining systems
// are skipped for this update and the error is returned.
func (s *Scene) Update(dt float64) error {
	for i, system := range s.systems {
		start := time.Now()
		err := system.Update(dt)
		s.systemStats[i].record(time.Since(start))

		if err != nil {
			name := s.systemStats[i].name
			s.logger.Error("system update failed", zap.String("system", name), zap.Error(err))
			return fmt.Errorf("system %s: %w", name, err)
		}
	}
	return nil
}

// Deflate would serialize the scene. It is not implemented.
func (s *Scene) Deflate() ([]byte, error) {
	return nil, fmt.Errorf("deflate: %w", ErrNotImplemented)
}

// Inflate would restore a scene produced by Deflate. It is not implemented.
func Inflate(data []byte) (*Scene, error) {
	return nil, fmt.Errorf("inflate: %w", ErrNotImplemented)
}

func systemName(system System) string {
	if named, ok := system.(interface{ Name() string }); ok {
		if name := named.Name(); name != "" {
			return name
		}
	}
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Pointer {
		systemType = systemType.Elem()
	}
	return systemType.Name()
}

// Components is the column of one component type: every component of that
// type in a scene, indexed by entity ID.
type Components struct {
	typ   ComponentType
	slots sparseArray[any]
}

// Type returns the column's component type.
func (c *Components) Type() ComponentType {
	return c.typ
}

// Len returns the number of entities that have a component of this type.
func (c *Components) Len() int {
	return c.slots.Len()
}

// Get returns the component stored for id, or nil.
func (c *Components) Get(id EntityID) any {
	v, _ := c.slots.Get(int(id))
	return v
}

// All iterates stored components in ascending entity ID order.
func (c *Components) All() iter.Seq2[EntityID, any] {
	return func(yield func(EntityID, any) bool) {
		for index, v := range c.slots.All() {
			if !yield(EntityID(index), v) {
				return
			}
		}
	}
}

func (c *Components) set(id EntityID, component any) error {
	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return fmt.Errorf("%w: nil %s pointer", ErrInvalidComponent, c.typ)
		}
	} else {
		ptr := reflect.New(c.typ.t)
		ptr.Elem().Set(v)
		component = ptr.Interface()
	}
	c.slots.Set(int(id), component)
	return nil
}

func (c *Components) indexOf(component any) (EntityID, bool) {
	if reflect.ValueOf(component).Kind() != reflect.Pointer {
		return 0, false
	}
	if c.typ.t.Size() == 0 && c.Len() > 1 {
		return 0, false
	}
	for id, stored := range c.All() {
		if stored == component {
			return id, true
		}
	}
	return 0, false
}
