package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/glecs/ecs"
	"github.com/plus3/glecs/game"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type options struct {
	duration    time.Duration
	entityCount int
	systemCount int
	configPath  string
	cpuProfile  string
	format      string
	seed        uint64
}

func main() {
	var opts options
	flag.DurationVar(&opts.duration, "duration", 10*time.Second, "The total duration the test should run for.")
	flag.IntVar(&opts.entityCount, "entities", 10000, "The initial number of entities to create.")
	flag.IntVar(&opts.systemCount, "systems", 50, "The number of systems to run each update.")
	flag.StringVar(&opts.configPath, "config", "", "Path to a YAML or JSON game config.")
	flag.StringVar(&opts.cpuProfile, "cpuprofile", "", "Write a CPU profile to this directory.")
	flag.StringVar(&opts.format, "format", "text", "Report format: text or yaml.")
	flag.Uint64Var(&opts.seed, "seed", uint64(time.Now().UnixNano()), "Random seed for entity generation.")
	flag.Parse()

	if err := run(context.Background(), opts); err != nil {
		fmt.Fprintf(os.Stderr, "ecs-stress: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (game.Config, error) {
	if path == "" {
		cfg := game.DefaultConfig()
		cfg.Build.Mode = game.Production
		cfg.FrameRate = 1000
		cfg.ShowDebug = true
		return cfg, nil
	}
	cfg, err := game.LoadConfig(path)
	if err != nil {
		return game.Config{}, err
	}
	return *cfg, nil
}

func newLogger(mode game.BuildMode) (*zap.Logger, error) {
	if mode == game.Production {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(ctx context.Context, opts options) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Build.Mode)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if opts.cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(opts.cpuProfile), profile.NoShutdownHook).Stop()
	}

	logger.Info("starting ECS stress test",
		zap.Duration("duration", opts.duration),
		zap.Int("entities", opts.entityCount),
		zap.Int("systems", opts.systemCount),
		zap.Uint64("seed", opts.seed),
	)

	report := &Report{
		Duration:   opts.duration,
		Entities:   opts.entityCount,
		Components: len(componentTypes),
		Systems:    opts.systemCount,
		FrameRate:  cfg.FrameRate,
		Seed:       opts.seed,
	}
	probe := &frameProbe{}

	factory := func(context.Context) (*ecs.Scene, error) {
		scene := ecs.NewScene(ecs.WithLogger(logger))
		if err := RegisterComponents(scene); err != nil {
			return nil, err
		}

		rng := rand.New(rand.NewPCG(opts.seed, opts.seed))
		ids := ecs.NewIDAllocator()
		logger.Info("populating scene", zap.Int("entities", opts.entityCount))
		for i := 0; i < opts.entityCount; i++ {
			// Spawn an entity with 1 to 5 random components
			if _, err := SpawnRandomEntity(scene, ids, rng, rng.IntN(5)+1); err != nil {
				return nil, err
			}
		}

		scene.AddSystem(probeStart{probe})
		AddSystems(scene, opts.systemCount)
		scene.AddSystem(probeEnd{probe})
		return scene, nil
	}

	g, err := game.New(factory, cfg, game.WithLogger(logger))
	if err != nil {
		return err
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(ctx, opts.duration)
	defer cancel()

	group, ctx := errgroup.WithContext(ctx)
	startTime := time.Now()
	group.Go(func() error {
		defer cancel()
		return g.Run(ctx)
	})
	group.Go(func() error {
		return reportProgress(ctx, logger, g)
	})
	if err := group.Wait(); !game.IsStopped(err) {
		return err
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = g.Frames()
	report.UpdateTime.Samples = probe.samples
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.Finish(g.Scene())

	logger.Info("simulation finished", zap.Int64("updates", report.TotalUpdates))

	switch opts.format {
	case "yaml":
		return report.GenerateYAML(os.Stdout)
	default:
		fmt.Println("\n\n--- Stress Test Report ---")
		if err := report.Generate(os.Stdout); err != nil {
			return fmt.Errorf("generate report: %w", err)
		}
		fmt.Println("--- End of Report ---")
		return nil
	}
}

// reportProgress logs the update count every second until ctx is done.
func reportProgress(ctx context.Context, logger *zap.Logger, g *game.Game) error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	var last int64
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			frames := g.Frames()
			logger.Info("progress", zap.Int64("updates", frames), zap.Int64("updates_per_second", frames-last))
			last = frames
		}
	}
}
