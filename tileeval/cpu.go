package tileeval

import (
	"context"
	"errors"
	"runtime"

	"github.com/alitto/pond"

	"github.com/roobscoob/jet-lag-core/geo"
	"github.com/roobscoob/jet-lag-core/shape"
	"github.com/roobscoob/jet-lag-core/tile"
)

// CPUConfig configures the fallback evaluator.
type CPUConfig struct {
	// Workers is the worker pool size; zero means one worker per CPU.
	Workers int
}

// CPUEvaluator evaluates compiled shapes over tiles on the CPU, one row
// per pool task. It is the fallback when no GPU context is available.
type CPUEvaluator struct {
	eval *shape.CPUEvaluator
	pool *pond.WorkerPool
}

// NewCPUEvaluator validates the stream and builds the evaluator with its
// worker pool. Close releases the pool.
func NewCPUEvaluator(stream []shape.Instruction, cfg CPUConfig) (*CPUEvaluator, error) {
	eval, err := shape.NewCPUEvaluator(stream)
	if err != nil {
		return nil, err
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &CPUEvaluator{
		eval: eval,
		pool: pond.New(workers, 0, pond.MinWorkers(workers)),
	}, nil
}

// Close stops the worker pool after running tasks finish.
func (e *CPUEvaluator) Close() {
	e.pool.StopAndWait()
}

var errClosed = errors.New("evaluator is closed")

// Evaluate rasterizes the signed distance field over the tile and returns
// the mask. A cancelled context discards the output.
func (e *CPUEvaluator) Evaluate(ctx context.Context, t tile.Tile) (*Mask, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if e.pool.Stopped() {
		return nil, errClosed
	}
	dist := make([]geo.Centimeters, t.Width*t.Height)
	group := e.pool.Group()
	for y := 0; y < t.Height; y++ {
		row := y
		group.Submit(func() {
			if ctx.Err() != nil {
				return
			}
			// Each row gets its own interpreter: the shared one keeps
			// per-evaluation register state.
			eval, err := shape.NewCPUEvaluator(e.eval.Stream())
			if err != nil {
				return
			}
			for x := 0; x < t.Width; x++ {
				dist[row*t.Width+x] = eval.EvaluateAt(t.SampleAt(x, row))
			}
		})
	}
	group.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return maskFromDistances(t.Width, t.Height, dist), nil
}
