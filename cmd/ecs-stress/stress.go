package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/plus3/glecs/ecs"
)

type Position struct{ X, Y float64 }
type Velocity struct{ DX, DY float64 }
type Acceleration struct{ AX, AY float64 }
type Health struct{ Current, Max int }
type Damage struct{ PerSecond float64 }
type Lifetime struct{ Remaining float64 }
type Mass struct{ Kg float64 }
type Frozen struct{ ecs.Tag }

var componentTypes = []ecs.ComponentType{
	ecs.TypeFor[Position](),
	ecs.TypeFor[Velocity](),
	ecs.TypeFor[Acceleration](),
	ecs.TypeFor[Health](),
	ecs.TypeFor[Damage](),
	ecs.TypeFor[Lifetime](),
	ecs.TypeFor[Mass](),
	ecs.TypeFor[Frozen](),
}

func newComponent(ct ecs.ComponentType, rng *rand.Rand) any {
	switch ct {
	case ecs.TypeFor[Position]():
		return &Position{X: rng.Float64() * 100, Y: rng.Float64() * 100}
	case ecs.TypeFor[Velocity]():
		return &Velocity{DX: rng.Float64() - 0.5, DY: rng.Float64() - 0.5}
	case ecs.TypeFor[Acceleration]():
		return &Acceleration{AX: rng.Float64() * 0.01, AY: rng.Float64() * 0.01}
	case ecs.TypeFor[Health]():
		return &Health{Current: 100, Max: 100}
	case ecs.TypeFor[Damage]():
		return &Damage{PerSecond: rng.Float64() * 5}
	case ecs.TypeFor[Lifetime]():
		return &Lifetime{Remaining: rng.Float64() * 10_000}
	case ecs.TypeFor[Mass]():
		return &Mass{Kg: 1 + rng.Float64()*50}
	case ecs.TypeFor[Frozen]():
		return &Frozen{}
	}
	panic("unknown stress component " + ct.String())
}

// RegisterComponents registers every stress component type with scene.
func RegisterComponents(scene *ecs.Scene) error {
	for _, ct := range componentTypes {
		if err := scene.RegisterComponentType(ct); err != nil {
			return err
		}
	}
	return nil
}

// SpawnRandomEntity adds an entity with numComponents distinct random
// components. Frozen entities start disabled.
func SpawnRandomEntity(scene *ecs.Scene, ids *ecs.IDAllocator, rng *rand.Rand, numComponents int) (*ecs.Entity, error) {
	e := ecs.NewEntity(ids)
	if err := scene.AddEntity(e); err != nil {
		return nil, err
	}

	for _, i := range rng.Perm(len(componentTypes))[:min(numComponents, len(componentTypes))] {
		ct := componentTypes[i]
		if err := scene.SetComponent(e, newComponent(ct, rng)); err != nil {
			return nil, err
		}
		if ct.IsTag() {
			e.Disable()
		}
	}
	return e, nil
}

var systemFactories = []func(*ecs.Scene) *ecs.QuerySystem{
	func(s *ecs.Scene) *ecs.QuerySystem {
		return ecs.NewSystem(s, ecs.NewQuery(ecs.TypeFor[Position](), ecs.TypeFor[Velocity]()),
			ecs.Each2(func(dt float64, p *Position, v *Velocity) {
				p.X += v.DX * dt
				p.Y += v.DY * dt
			})).Named("movement")
	},
	func(s *ecs.Scene) *ecs.QuerySystem {
		return ecs.NewSystem(s, ecs.NewQuery(ecs.TypeFor[Velocity](), ecs.TypeFor[Acceleration]()),
			ecs.Each2(func(dt float64, v *Velocity, a *Acceleration) {
				v.DX += a.AX * dt
				v.DY += a.AY * dt
			})).Named("acceleration")
	},
	func(s *ecs.Scene) *ecs.QuerySystem {
		return ecs.NewSystem(s, ecs.NewQuery(ecs.TypeFor[Health](), ecs.TypeFor[Damage]()),
			ecs.Each2(func(dt float64, h *Health, d *Damage) {
				h.Current -= int(d.PerSecond * dt / 1000)
				if h.Current < 0 {
					h.Current = h.Max
				}
			})).Named("damage")
	},
	func(s *ecs.Scene) *ecs.QuerySystem {
		return ecs.NewSystem(s, ecs.NewQuery(ecs.TypeFor[Lifetime]()),
			ecs.Each1(func(dt float64, l *Lifetime) {
				l.Remaining -= dt
				if l.Remaining < 0 {
					l.Remaining = 10_000
				}
			})).Named("lifetime")
	},
	func(s *ecs.Scene) *ecs.QuerySystem {
		return ecs.NewSystem(s, ecs.NewQuery(ecs.TypeFor[Velocity](), ecs.TypeFor[Mass]()),
			ecs.Each2(func(dt float64, v *Velocity, m *Mass) {
				drag := 1 - 0.0001*dt/m.Kg
				v.DX *= drag
				v.DY *= drag
			})).Named("drag")
	},
}

// AddSystems adds count live systems, cycling through the stress behaviors.
func AddSystems(scene *ecs.Scene, count int) {
	for i := 0; i < count; i++ {
		system := systemFactories[i%len(systemFactories)](scene)
		scene.AddSystem(system.Named(fmt.Sprintf("%s-%d", system.Name(), i)))
	}
}

// frameProbe brackets a scene's systems to sample whole-update durations.
type frameProbe struct {
	start   time.Time
	samples []time.Duration
}

type probeStart struct{ *frameProbe }
type probeEnd struct{ *frameProbe }

func (p probeStart) Update(float64) error {
	p.start = time.Now()
	return nil
}

func (p probeEnd) Update(float64) error {
	p.samples = append(p.samples, time.Since(p.start))
	return nil
}

func (p probeStart) Name() string { return "probe-start" }
func (p probeEnd) Name() string   { return "probe-end" }
