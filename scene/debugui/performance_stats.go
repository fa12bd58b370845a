package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/retained/scene"
)

// PerformanceStats plots frame times and summarizes graph contents and pass
// timings. The pipeline is optional; without one only graph statistics are
// shown.
type PerformanceStats struct {
	pipeline      *scene.Pipeline
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

// NewPerformanceStats creates a stats window keeping historyFrames samples.
func NewPerformanceStats(pipeline *scene.Pipeline, historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		pipeline:      pipeline,
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

func (ps *PerformanceStats) Render(frame *scene.Frame) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ps.frameHistory[ps.frameIndex] = float32(frame.DeltaTime) * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames

	stats := frame.Graph.CollectStats()

	imgui.Text(fmt.Sprintf("Live Nodes: %d", stats.EntityCount))
	imgui.Text(fmt.Sprintf("Roots: %d", stats.RootCount))
	imgui.Text(fmt.Sprintf("Max Depth: %d", stats.MaxDepth))

	var avgFrameTime float32
	for _, ft := range ps.frameHistory {
		avgFrameTime += ft
	}
	avgFrameTime /= float32(ps.historyFrames)

	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if imgui.TreeNodeStr("Kind Breakdown") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("KindTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Kind")
			imgui.TableSetupColumn("Count")
			imgui.TableHeadersRow()

			for _, kind := range []scene.ComponentKind{scene.KindShape, scene.KindStyle, scene.KindTransform, scene.KindText} {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(kind.String())
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", stats.KindCounts[kind]))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if ps.pipeline != nil && imgui.TreeNodeStr("Pass Timings") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("PassTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Pass")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, pass := range ps.pipeline.Stats().Passes {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(pass.Name)
				imgui.TableNextColumn()
				imgui.Text(pass.LastDuration.String())
				imgui.TableNextColumn()
				imgui.Text(pass.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(pass.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// FrameTimer measures wall-clock delta between frames for render loops that
// do not get one from their host.
type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{lastFrameTime: time.Now()}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
