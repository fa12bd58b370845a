package scene

import (
	"context"
	"reflect"
	"time"
)

// Pass is one stage of per-frame work over the graph: layout, rendering
// prep, hit-test routing, reactive updates. Passes read and write stores
// through the Frame but queue structural edits on Frame.Commands.
type Pass interface {
	Execute(frame *Frame)
}

// Frame carries per-frame state through the pipeline.
type Frame struct {
	DeltaTime float64
	Commands  *Commands
	Graph     *Graph
}

func newFrame(dt float64, g *Graph) *Frame {
	return &Frame{
		DeltaTime: dt,
		Commands:  newCommands(),
		Graph:     g,
	}
}

// PipelineStats summarizes pass execution.
type PipelineStats struct {
	PassCount       int
	TotalExecutions int64
	Passes          []PassStats
}

// PassStats holds execution statistics for a single pass.
type PassStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type passStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Pipeline runs registered passes in order, once per frame, and flushes the
// frame's buffered structural edits after the last pass. Single-threaded by
// design: the pipeline assumes exclusive ownership of the graph.
type Pipeline struct {
	graph     *Graph
	passes    []Pass
	passStats []*passStatsInternal
}

// NewPipeline creates a pipeline over the given graph.
func NewPipeline(g *Graph) *Pipeline {
	return &Pipeline{
		graph:  g,
		passes: make([]Pass, 0),
	}
}

// Register appends a pass to the execution order.
func (p *Pipeline) Register(pass Pass) {
	p.passes = append(p.passes, pass)

	passType := reflect.TypeOf(pass)
	if passType.Kind() == reflect.Ptr {
		passType = passType.Elem()
	}

	p.passStats = append(p.passStats, &passStatsInternal{
		name:        passType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Once executes all registered passes with the given delta time, then
// flushes the frame's commands.
func (p *Pipeline) Once(dt float64) {
	frame := newFrame(dt, p.graph)

	for i, pass := range p.passes {
		start := time.Now()
		pass.Execute(frame)
		duration := time.Since(start)

		stats := p.passStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	frame.Commands.Flush(p.graph)
}

// Run executes the pipeline repeatedly at the given interval until the
// context is cancelled.
func (p *Pipeline) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			p.Once(dt)
		}
	}
}

// Stats returns statistics about pass execution.
func (p *Pipeline) Stats() *PipelineStats {
	stats := &PipelineStats{
		PassCount: len(p.passes),
		Passes:    make([]PassStats, len(p.passStats)),
	}

	var totalExecs int64
	for i, internal := range p.passStats {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Passes[i] = PassStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
