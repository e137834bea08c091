package game

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/plus3/glecs/ecs"
	"go.uber.org/zap"
)

// DebugInfo tracks smoothed frame rate and per-frame compute time, and reports
// them periodically.
type DebugInfo struct {
	mu  sync.Mutex
	fps float64
	cpu float64

	interval time.Duration
	logger   *zap.Logger
}

func NewDebugInfo(interval time.Duration, logger *zap.Logger) *DebugInfo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DebugInfo{interval: interval, logger: logger}
}

// SetFPS folds a frame rate sample into the displayed value. Each sample
// moves the value halfway towards it.
func (d *DebugInfo) SetFPS(value float64) {
	d.mu.Lock()
	d.fps = 0.5 * (value + d.fps)
	d.mu.Unlock()
}

// SetCPU folds a compute time sample, in milliseconds, into the displayed
// value.
func (d *DebugInfo) SetCPU(value float64) {
	d.mu.Lock()
	d.cpu = 0.5 * (value + d.cpu)
	d.mu.Unlock()
}

func (d *DebugInfo) FPS() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fps
}

func (d *DebugInfo) CPU() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cpu
}

// String formats both values zero-padded to the same width, e.g.
// "59.87 fps / 01.02 ms".
func (d *DebugInfo) String() string {
	fps := fmt.Sprintf("%.2f", d.FPS())
	cpu := fmt.Sprintf("%.2f", d.CPU())
	width := max(len(fps), len(cpu))
	return pad(fps, width) + " fps / " + pad(cpu, width) + " ms"
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// Report logs the current values.
func (d *DebugInfo) Report() {
	d.logger.Info("debug info",
		zap.Float64("fps", d.FPS()),
		zap.Float64("cpu_ms", d.CPU()),
		zap.Stringer("display", d),
	)
}

// Run reports every interval until ctx is done.
func (d *DebugInfo) Run(ctx context.Context) error {
	if d.interval <= 0 {
		return fmt.Errorf("%w: debug interval must be positive (got %s)", ecs.ErrConfig, d.interval)
	}
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			d.Report()
		}
	}
}
