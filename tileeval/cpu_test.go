package tileeval

import (
	"context"
	"testing"

	"github.com/roobscoob/jet-lag-core/geo"
	"github.com/roobscoob/jet-lag-core/shape"
	"github.com/roobscoob/jet-lag-core/tile"
)

func circleStream(t *testing.T, radius geo.Centimeters) []shape.Instruction {
	t.Helper()
	c := shape.NewCompiler()
	shape.Circle{Radius: radius}.BuildInto(c)
	if err := c.Err(); err != nil {
		t.Fatal(err)
	}
	return c.Instructions()
}

func TestCPUEvaluatorCircleMask(t *testing.T) {
	e, err := NewCPUEvaluator(circleStream(t, geo.FromMeters(20_000)), CPUConfig{Workers: 2})
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	tl := tile.Tile{MinLat: -1, MaxLat: 1, MinLon: -1, MaxLon: 1, Width: 9, Height: 9}
	mask, err := e.Evaluate(context.Background(), tl)
	if err != nil {
		t.Fatal(err)
	}
	if !mask.At(4, 4) {
		t.Error("tile center inside the 20 km circle must be possible")
	}
	if mask.At(0, 0) {
		t.Error("tile corner ~150 km away must be excluded")
	}
}

func TestCPUEvaluatorCancelled(t *testing.T) {
	e, err := NewCPUEvaluator(circleStream(t, 1000), CPUConfig{Workers: 1})
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Evaluate(ctx, tile.Tile{MinLat: 0, MaxLat: 1, MinLon: 0, MaxLon: 1, Width: 4, Height: 4}); err == nil {
		t.Error("cancelled evaluation must fail")
	}
}

func TestCPUEvaluatorBadTile(t *testing.T) {
	e, err := NewCPUEvaluator(circleStream(t, 1000), CPUConfig{})
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	if _, err := e.Evaluate(context.Background(), tile.Tile{}); err == nil {
		t.Error("empty tile must fail")
	}
}

func TestMaskImageScaled(t *testing.T) {
	mask := &Mask{Width: 2, Height: 2, Possible: []bool{true, false, false, true}}
	img := mask.Image()
	if img.AlphaAt(0, 0).A != 0xff || img.AlphaAt(1, 0).A != 0 {
		t.Error("mask image values")
	}
	scaled := mask.ImageScaled(4, 4)
	if got := scaled.Bounds().Dx(); got != 4 {
		t.Errorf("scaled width %d", got)
	}
	if scaled.AlphaAt(0, 0).A != 0xff {
		t.Error("nearest-neighbor upscale must keep the possible corner")
	}
}
