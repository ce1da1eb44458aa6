package shape

import (
	"encoding/binary"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"

	"github.com/roobscoob/jet-lag-core/geo"
)

// Ring is a closed polygon ring of scaled integer positions. The closing
// edge from the last vertex back to the first is implicit.
type Ring []geo.Position

// VoronoiDiagram is a Voronoi diagram over a polygon set, consumed by the
// vdg primitive to evaluate signed distance to the polygon union. The
// diagram carries the source rings; cell structure is recovered on the GPU
// from edge distances.
type VoronoiDiagram struct {
	Rings []Ring
}

// NewVoronoiDiagram builds a diagram over polygon rings given in degrees.
// Rings with fewer than three vertices are dropped.
func NewVoronoiDiagram(rings [][]geo.Point) *VoronoiDiagram {
	d := &VoronoiDiagram{}
	for _, ring := range rings {
		if len(ring) < 3 {
			continue
		}
		r := make(Ring, len(ring))
		for i, p := range ring {
			r[i] = p.Position()
		}
		d.Rings = append(d.Rings, r)
	}
	return d
}

// SerializedSizeU32 is the serialized size in 32-bit words: a one word ring
// count, one word per ring for its vertex count, and two words per vertex.
func (d *VoronoiDiagram) SerializedSizeU32() int {
	size := 1 + len(d.Rings)
	for _, r := range d.Rings {
		size += 2 * len(r)
	}
	return size
}

// AppendTo serializes the diagram little-endian.
// Layout: [ring_count, (vertex_count, vertices...)...].
func (d *VoronoiDiagram) AppendTo(buf []byte) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(d.Rings)))
	for _, r := range d.Rings {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(r)))
		for _, v := range r {
			buf = binary.LittleEndian.AppendUint32(buf, uint32(v.X))
			buf = binary.LittleEndian.AppendUint32(buf, uint32(v.Y))
		}
	}
	return buf
}

// SignedDistance evaluates the signed distance from pos to the union of the
// diagram's polygons: negative inside any ring, positive outside, magnitude
// the distance to the nearest edge.
func (d *VoronoiDiagram) SignedDistance(pos geo.Position) geo.Centimeters {
	best := float32(math32.MaxFloat32)
	inside := false
	for _, r := range d.Rings {
		if edgeDist := r.edgeDistance(pos); edgeDist < best {
			best = edgeDist
		}
		if r.contains(pos) {
			inside = true
		}
	}
	if best == math32.MaxFloat32 {
		return geo.Centimeters(1<<31 - 1)
	}
	if inside {
		return geo.Centimeters(-best)
	}
	return geo.Centimeters(best)
}

// vecZero is the frame origin itself.
var vecZero ms2.Vec

// localFrame projects q into an equirectangular frame centered on origin,
// in centimeters. Accurate for the edge-relative distances the diagram
// needs; edges are short relative to the earth.
func localFrame(origin, q geo.Position) ms2.Vec {
	const degCm = math32.Pi / 180 * geo.EarthRadiusCm / geo.CoordScale
	cosLat := math32.Cos(float32(origin.Y) * (math32.Pi / 180 / geo.CoordScale))
	return ms2.Vec{
		X: float32(q.X-origin.X) * degCm * cosLat,
		Y: float32(q.Y-origin.Y) * degCm,
	}
}

func (r Ring) edgeDistance(pos geo.Position) float32 {
	best := float32(math32.MaxFloat32)
	for i := range r {
		a := localFrame(pos, r[i])
		b := localFrame(pos, r[(i+1)%len(r)])
		if d := segmentDistance(ms2.Vec{}, a, b); d < best {
			best = d
		}
	}
	return best
}

// segmentDistance returns the distance from p to segment ab in the local
// frame.
func segmentDistance(p, a, b ms2.Vec) float32 {
	pa := ms2.Sub(p, a)
	ba := ms2.Sub(b, a)
	den := ms2.Dot(ba, ba)
	var h float32
	if den > 0 {
		h = ms2.Dot(pa, ba) / den
		if h < 0 {
			h = 0
		} else if h > 1 {
			h = 1
		}
	}
	return ms2.Norm(ms2.Sub(pa, ms2.Scale(h, ba)))
}

// contains is the even-odd rule over the ring's edges in scaled integer
// coordinates.
func (r Ring) contains(pos geo.Position) bool {
	inside := false
	for i := range r {
		a, b := r[i], r[(i+1)%len(r)]
		if (a.Y > pos.Y) == (b.Y > pos.Y) {
			continue
		}
		t := float64(pos.Y-a.Y) / float64(b.Y-a.Y)
		crossX := float64(a.X) + t*float64(b.X-a.X)
		if float64(pos.X) < crossX {
			inside = !inside
		}
	}
	return inside
}
