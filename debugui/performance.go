package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/starfield/driver"
	"github.com/plus3/starfield/render"
)

// FieldStats is what the performance panel shows about the particle field.
type FieldStats struct {
	Points int
	Resets int64
	Width  float64
	Height float64
	Render render.Stats
}

// PerformancePanel plots frame times and lists per-system timings.
type PerformancePanel struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	recorded      int
}

func NewPerformancePanel(historyFrames int) *PerformancePanel {
	if historyFrames < 1 {
		historyFrames = 1
	}
	return &PerformancePanel{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// Record adds a frame time sample.
func (pp *PerformancePanel) Record(elapsed time.Duration) {
	pp.frameHistory[pp.frameIndex] = float32(elapsed.Seconds() * 1000)
	pp.frameIndex = (pp.frameIndex + 1) % pp.historyFrames
	if pp.recorded < pp.historyFrames {
		pp.recorded++
	}
}

// AverageFrameTime returns the mean of the recorded samples in
// milliseconds.
func (pp *PerformancePanel) AverageFrameTime() float32 {
	if pp.recorded == 0 {
		return 0
	}
	var total float32
	for _, ft := range pp.frameHistory {
		total += ft
	}
	return total / float32(pp.recorded)
}

func (pp *PerformancePanel) Render(stats driver.Stats, field FieldStats) {
	imgui.SetNextWindowPosV(imgui.NewVec2(380, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 300), imgui.CondOnce)
	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Points: %d", field.Points))
	imgui.Text(fmt.Sprintf("Surface: %.0fx%.0f", field.Width, field.Height))
	imgui.Text(fmt.Sprintf("Circles: %d  Ellipses: %d", field.Render.Circles, field.Render.Ellipses))
	if field.Resets > 0 {
		imgui.TextColored(imgui.NewVec4(1.0, 0.8, 0.0, 1.0), fmt.Sprintf("Repaired points: %d", field.Resets))
	}
	imgui.Separator()

	avg := pp.AverageFrameTime()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}
	imgui.Text(fmt.Sprintf("Frames: %d  Skipped: %d", stats.FrameCount, stats.Skipped))
	imgui.PlotLinesFloatPtr("##frametime", &pp.frameHistory[0], int32(len(pp.frameHistory)))

	if imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, s := range stats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(s.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", s.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(s.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(s.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// FrameTimer measures the wall clock time between calls.
type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

// Elapsed returns the time since the previous call.
func (ft *FrameTimer) Elapsed() time.Duration {
	now := time.Now()
	delta := now.Sub(ft.lastFrameTime)
	ft.lastFrameTime = now
	return delta
}
