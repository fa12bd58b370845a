package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/plus3/retained/scene"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	nodeCount := flag.Int("nodes", 10000, "The initial number of nodes to create.")
	churnPerFrame := flag.Int("churn", 100, "Structural edits (spawn/reparent/remove) per frame.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting scene graph stress test...")

	graph := scene.NewGraph()
	pipeline := scene.NewPipeline(graph)
	pipeline.Register(&LayoutPass{})
	pipeline.Register(&ChurnPass{editsPerFrame: *churnPerFrame})

	log.Printf("Populating graph with %d nodes...\n", *nodeCount)
	populate(graph, *nodeCount)
	log.Println("Population complete.")

	report := &Report{
		Duration:      *duration,
		Nodes:         *nodeCount,
		ChurnPerFrame: *churnPerFrame,

		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalFrames int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			pipeline.Once(deltaTime.Seconds())
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalFrames++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalFrames = totalFrames
	report.FinalStats = graph.CollectStats()
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

// populate builds shallow random trees: every node is attached under an
// earlier one, or spawned as a root roughly one time in ten.
func populate(g *scene.Graph, count int) {
	nodes := make([]scene.Entity, 0, count)
	for i := 0; i < count; i++ {
		components := randomComponents()

		if len(nodes) == 0 || rand.Intn(10) == 0 {
			nodes = append(nodes, g.Spawn(components...))
			continue
		}

		parent := nodes[rand.Intn(len(nodes))]
		child, err := g.SpawnChild(parent, components...)
		if err != nil {
			log.Fatalf("spawn under %v failed: %v", parent, err)
		}
		nodes = append(nodes, child)
	}
}

func randomComponents() []scene.Component {
	components := []scene.Component{
		&scene.Transform{
			X:      rand.Float32() * 1920,
			Y:      rand.Float32() * 1080,
			Width:  rand.Float32()*200 + 1,
			Height: rand.Float32()*200 + 1,
		},
	}

	switch rand.Intn(3) {
	case 0:
		components = append(components, &scene.Shape{
			Kind:   scene.ShapeKind(rand.Intn(4)),
			Corner: scene.UniformCorner(rand.Float32() * 16),
		})
	case 1:
		components = append(components, &scene.Text{
			Content:  fmt.Sprintf("node-%d", rand.Intn(1<<16)),
			FontSize: 10 + rand.Float32()*14,
		})
	case 2:
		components = append(components, &scene.Style{
			Fill: scene.RGBA{R: rand.Float32(), G: rand.Float32(), B: rand.Float32(), A: 1},
		})
	}

	return components
}

// LayoutPass sweeps every transform, standing in for a real layout plus
// render-prep workload.
type LayoutPass struct{}

func (*LayoutPass) Execute(frame *scene.Frame) {
	dt := float32(frame.DeltaTime)
	for _, tr := range scene.IterKind[scene.Transform](frame.Graph.Transforms()) {
		tr.X += dt
		if tr.X > 1920 {
			tr.X = 0
		}
	}
}

// ChurnPass exercises the structural paths: random spawns, subtree removals,
// reparents and hit-tests every frame, all through the command buffer.
type ChurnPass struct {
	editsPerFrame int
}

func (c *ChurnPass) Execute(frame *scene.Frame) {
	g := frame.Graph

	live := make([]scene.Entity, 0, g.Len())
	for e := range g.Allocator().Live() {
		live = append(live, e)
	}
	if len(live) == 0 {
		frame.Commands.Spawn(randomComponents()...)
		return
	}

	for i := 0; i < c.editsPerFrame; i++ {
		switch rand.Intn(4) {
		case 0:
			frame.Commands.SpawnChild(live[rand.Intn(len(live))], randomComponents()...)
		case 1:
			frame.Commands.RemoveSubtree(live[rand.Intn(len(live))])
		case 2:
			e := live[rand.Intn(len(live))]
			newParent := live[rand.Intn(len(live))]
			if e != newParent && !g.Tree().IsDescendantOf(newParent, e) {
				frame.Commands.Reparent(e, newParent)
			}
		case 3:
			scene.HitTest(g, rand.Float32()*1920, rand.Float32()*1080)
		}
	}
}
