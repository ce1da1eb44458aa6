// Package tile defines the raster tile rectangle the evaluators dispatch
// over.
package tile

import (
	"errors"

	"github.com/roobscoob/jet-lag-core/geo"
)

// Tile is a bounded lat/lon rectangle with a raster resolution. Pixel (0,0)
// is the north-west corner; samples are taken at pixel centers.
type Tile struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
	Width, Height  int
}

var errEmptyTile = errors.New("tile has empty bounds or zero resolution")

// Validate reports whether the tile bounds a non-empty raster.
func (t Tile) Validate() error {
	if t.Width < 1 || t.Height < 1 || t.MinLat >= t.MaxLat || t.MinLon >= t.MaxLon {
		return errEmptyTile
	}
	return nil
}

// SampleAt returns the geographic sample position of pixel (x, y).
func (t Tile) SampleAt(x, y int) geo.Position {
	fx := (float64(x) + 0.5) / float64(t.Width)
	fy := (float64(y) + 0.5) / float64(t.Height)
	return geo.Point{
		Lon: t.MinLon + fx*(t.MaxLon-t.MinLon),
		Lat: t.MaxLat - fy*(t.MaxLat-t.MinLat),
	}.Position()
}

// Samples returns every pixel's sample position in row-major order.
func (t Tile) Samples() []geo.Position {
	pos := make([]geo.Position, 0, t.Width*t.Height)
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			pos = append(pos, t.SampleAt(x, y))
		}
	}
	return pos
}
