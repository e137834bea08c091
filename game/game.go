// Package game drives an ecs.Scene with a fixed-rate update loop.
package game

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/plus3/glecs/ecs"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SceneFactory builds the scene a game plays.
type SceneFactory func(ctx context.Context) (*ecs.Scene, error)

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the game's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Game) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// Game is the entry point of an application. It enters the scene built by its
// factory and updates it once per frame until stopped.
type Game struct {
	cfg     Config
	factory SceneFactory
	logger  *zap.Logger
	debug   *DebugInfo

	scene  atomic.Pointer[ecs.Scene]
	frames atomic.Int64

	stopOnce sync.Once
	stop     chan struct{}
}

// New creates a game. cfg must be valid.
func New(factory SceneFactory, cfg Config, opts ...Option) (*Game, error) {
	if factory == nil {
		return nil, fmt.Errorf("%w: nil scene factory", ecs.ErrConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Game{
		cfg:     cfg,
		factory: factory,
		logger:  zap.NewNop(),
		stop:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.debug = NewDebugInfo(cfg.DebugDuration(), g.logger)
	return g, nil
}

// Scene returns the scene being played, or nil before Run has entered it.
func (g *Game) Scene() *ecs.Scene {
	return g.scene.Load()
}

// Frames returns the number of completed scene updates.
func (g *Game) Frames() int64 {
	return g.frames.Load()
}

// DebugInfo returns the game's frame statistics. They are only sampled when
// the config enables ShowDebug.
func (g *Game) DebugInfo() *DebugInfo {
	return g.debug
}

// Stop ends the game loop. It may be called from any goroutine, more than once.
func (g *Game) Stop() {
	g.stopOnce.Do(func() { close(g.stop) })
}

// Run enters the scene and runs the game loop until ctx is done, Stop is
// called, or a scene update fails. With LoopOnce set, the scene is updated
// exactly once. Stopping is not an error; an update failure is returned.
func (g *Game) Run(ctx context.Context) error {
	scene, err := g.factory(ctx)
	if err != nil {
		return fmt.Errorf("enter scene: %w", err)
	}
	if scene == nil {
		return fmt.Errorf("%w: scene factory returned nil scene", ecs.ErrConfig)
	}
	g.scene.Store(scene)
	g.logger.Info("entering scene",
		zap.Stringer("scene", scene.ID()),
		zap.Int("entities", scene.EntityCount()),
		zap.Int("systems", len(scene.Systems())),
		zap.String("mode", string(g.cfg.Build.Mode)),
	)

	if g.cfg.LoopOnce {
		now := time.Now()
		return g.tick(now, now)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	group, ctx := errgroup.WithContext(ctx)
	if g.cfg.ShowDebug {
		group.Go(func() error {
			return g.debug.Run(ctx)
		})
	}
	group.Go(func() error {
		defer cancel()
		return g.loop(ctx)
	})

	err = group.Wait()
	g.logger.Info("game loop stopped", zap.Int64("frames", g.Frames()), zap.Error(err))
	return err
}

func (g *Game) loop(ctx context.Context) error {
	ticker := time.NewTicker(g.cfg.FrameDuration())
	defer ticker.Stop()

	prev := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-g.stop:
			return nil
		case now := <-ticker.C:
			if err := g.tick(prev, now); err != nil {
				return err
			}
			prev = now
		}
	}
}

// tick updates the scene with the milliseconds elapsed between prev and now.
// Systems never see a zero delta.
func (g *Game) tick(prev, now time.Time) error {
	dt := float64(now.Sub(prev)) / float64(time.Millisecond)
	if dt <= 0 {
		dt = math.SmallestNonzeroFloat64
	}

	start := time.Now()
	if err := g.Scene().Update(dt); err != nil {
		return fmt.Errorf("frame %d: %w", g.Frames(), err)
	}
	g.frames.Add(1)

	if g.cfg.ShowDebug {
		if fps := 1000 / dt; !math.IsInf(fps, 0) {
			g.debug.SetFPS(fps)
		}
		g.debug.SetCPU(float64(time.Since(start)) / float64(time.Millisecond))
	}
	return nil
}

// IsStopped reports whether err is a cancellation rather than a failure.
func IsStopped(err error) bool {
	return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
