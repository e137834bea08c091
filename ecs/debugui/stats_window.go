package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/glecs/ecs"
)

// StatsWindow shows scene contents, a frame time graph and per-system timings.
type StatsWindow struct {
	scene         *ecs.Scene
	timer         *FrameTimer
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

func NewStatsWindow(scene *ecs.Scene, historyFrames int) *StatsWindow {
	if historyFrames <= 0 {
		historyFrames = 1
	}
	return &StatsWindow{
		scene:         scene,
		timer:         NewFrameTimer(),
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// Record adds a frame time, in milliseconds, to the history.
func (sw *StatsWindow) Record(frameMillis float32) {
	sw.frameHistory[sw.frameIndex] = frameMillis
	sw.frameIndex = (sw.frameIndex + 1) % sw.historyFrames
}

// AverageFrameTime returns the mean of the frame history in milliseconds.
func (sw *StatsWindow) AverageFrameTime() float32 {
	var total float32
	for _, ft := range sw.frameHistory {
		total += ft
	}
	return total / float32(sw.historyFrames)
}

func (sw *StatsWindow) Render() {
	if !imgui.BeginV("Scene Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	sw.Record(float32(sw.timer.Delta()) / float32(time.Millisecond))
	stats := sw.scene.CollectStats()

	imgui.Text(fmt.Sprintf("Scene: %s", stats.SceneID))
	imgui.Text(fmt.Sprintf("Total Entities: %d", stats.EntityCount))
	imgui.Text(fmt.Sprintf("Component Types: %d", stats.ComponentTypeCount))
	imgui.Text(fmt.Sprintf("Systems: %d", stats.SystemCount))

	avgFrameTime := sw.AverageFrameTime()
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &sw.frameHistory[0], int32(len(sw.frameHistory)))

	if imgui.TreeNodeStr("Component Types") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ComponentTypeTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Type ID")
			imgui.TableSetupColumn("Name")
			imgui.TableSetupColumn("Entity Count")
			imgui.TableHeadersRow()

			for _, ct := range stats.Types {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("0x%X", ct.ID))
				imgui.TableNextColumn()
				if ct.IsTag {
					imgui.Text(ct.Name + " (tag)")
				} else {
					imgui.Text(ct.Name)
				}
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", ct.Count))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, sys := range stats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// FrameTimer measures the time between successive frames.
type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

// Delta returns the time since the previous call, or since the timer was
// created.
func (ft *FrameTimer) Delta() time.Duration {
	now := time.Now()
	delta := now.Sub(ft.lastFrameTime)
	ft.lastFrameTime = now
	return delta
}
