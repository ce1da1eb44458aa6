// Package tileeval dispatches compiled SDF shapes over raster tiles and
// reads back hider-possibility masks. The GPU driver binds the packed
// argument buffers to the compiled compute kernel; the CPU driver
// interprets the instruction stream with identical semantics.
package tileeval

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"

	"github.com/roobscoob/jet-lag-core/geo"
)

// Mask is the raster result of a tile evaluation. A pixel is a possible
// hider location iff its signed distance is negative.
type Mask struct {
	Width, Height int
	// Possible is row-major, pixel (0,0) north-west.
	Possible []bool
}

func maskFromDistances(w, h int, dist []geo.Centimeters) *Mask {
	m := &Mask{Width: w, Height: h, Possible: make([]bool, len(dist))}
	for i, d := range dist {
		m.Possible[i] = d < 0
	}
	return m
}

// At reports whether pixel (x, y) is a possible hider location.
func (m *Mask) At(x, y int) bool {
	return m.Possible[y*m.Width+x]
}

// Image renders the mask with possible pixels opaque white, matching the
// overlay the map layer expects.
func (m *Mask) Image() *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.At(x, y) {
				img.SetAlpha(x, y, color.Alpha{A: 0xff})
			}
		}
	}
	return img
}

// ImageScaled renders the mask rescaled to the display tile resolution.
// Evaluation often runs at a coarser grid than the on-screen tile.
func (m *Mask) ImageScaled(width, height int) *image.Alpha {
	src := m.Image()
	if width == m.Width && height == m.Height {
		return src
	}
	dst := image.NewAlpha(image.Rect(0, 0, width, height))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
