//go:build tinygo || !cgo

package tileeval

import (
	"context"
	"errors"

	"github.com/roobscoob/jet-lag-core/shape"
	"github.com/roobscoob/jet-lag-core/tile"
)

var errNoCGO = errors.New("GPU tile evaluation requires CGo and is not supported on TinyGo")

// Platform owns the GL context the GPU evaluator runs against.
type Platform struct{}

// NewPlatform acquires a 1x1 hidden-window GL context.
func NewPlatform() (*Platform, error) {
	return nil, errNoCGO
}

// Terminate releases the GL context.
func (p *Platform) Terminate() {}

// PollEvents pumps the hidden window's event queue.
func (p *Platform) PollEvents() {}

// ValidateSource compiles the composed shader source.
func ValidateSource(p *Platform, source string) error {
	return errNoCGO
}

// ComputeConfig configures the GPU evaluator.
type ComputeConfig struct {
	InvocX int
}

// Evaluator dispatches a compiled SDF kernel over tiles.
type Evaluator struct{}

// NewEvaluator compiles the instruction stream's specialized shader.
func NewEvaluator(p *Platform, stream []shape.Instruction, cfg ComputeConfig) (*Evaluator, error) {
	return nil, errNoCGO
}

// Evaluations returns total samples evaluated.
func (e *Evaluator) Evaluations() uint64 { return 0 }

// Delete releases the GL program.
func (e *Evaluator) Delete() {}

// Evaluate dispatches the kernel over the tile.
func (e *Evaluator) Evaluate(ctx context.Context, t tile.Tile) (*Mask, error) {
	return nil, errNoCGO
}
