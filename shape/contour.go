package shape

import (
	"encoding/binary"
	"errors"

	"github.com/chewxy/math32"

	"github.com/roobscoob/jet-lag-core/geo"
)

// ContourTexture is a raster of a scalar field in centimeters (elevation
// above sea level) sampled bilinearly at query points. Values are row-major
// with the first row at MinLat.
type ContourTexture struct {
	Width, Height  int
	MinLat, MaxLat float64
	MinLon, MaxLon float64
	Values         []float32
}

var errContourSize = errors.New("contour texture value count does not match dimensions")

// NewContourTexture validates the raster dimensions against the payload.
func NewContourTexture(width, height int, minLat, maxLat, minLon, maxLon float64, values []float32) (*ContourTexture, error) {
	if width < 1 || height < 1 || len(values) != width*height {
		return nil, errContourSize
	}
	if minLat >= maxLat || minLon >= maxLon {
		return nil, errors.New("contour texture bounds are empty")
	}
	return &ContourTexture{
		Width: width, Height: height,
		MinLat: minLat, MaxLat: maxLat,
		MinLon: minLon, MaxLon: maxLon,
		Values: values,
	}, nil
}

// contourHeaderSizeU32 is the shader-visible header: width, height, min_lat,
// max_lat, min_lon, max_lon, zero_value.
const contourHeaderSizeU32 = 7

// AppendHeader serializes the header the shader expects ahead of the
// payload. Bounds are scaled integer degrees, the zero value centimeters.
func (t *ContourTexture) AppendHeader(buf []byte, zero geo.Centimeters) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(t.Width))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(t.Height))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(geo.Point{Lat: t.MinLat}.Position().Y))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(geo.Point{Lat: t.MaxLat}.Position().Y))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(geo.Point{Lon: t.MinLon}.Position().X))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(geo.Point{Lon: t.MaxLon}.Position().X))
	return binary.LittleEndian.AppendUint32(buf, uint32(zero))
}

// AppendPayload serializes the raw float payload little-endian.
func (t *ContourTexture) AppendPayload(buf []byte) []byte {
	for _, v := range t.Values {
		buf = binary.LittleEndian.AppendUint32(buf, math32.Float32bits(v))
	}
	return buf
}

// Sample bilinearly interpolates the field at pos. Positions outside the
// raster bounds clamp to the border texel.
func (t *ContourTexture) Sample(pos geo.Position) float32 {
	pt := pos.Point()
	fx := (pt.Lon - t.MinLon) / (t.MaxLon - t.MinLon) * float64(t.Width-1)
	fy := (pt.Lat - t.MinLat) / (t.MaxLat - t.MinLat) * float64(t.Height-1)
	fx = clamp(fx, 0, float64(t.Width-1))
	fy = clamp(fy, 0, float64(t.Height-1))
	x0, y0 := int(fx), int(fy)
	x1 := min(x0+1, t.Width-1)
	y1 := min(y0+1, t.Height-1)
	tx := float32(fx - float64(x0))
	ty := float32(fy - float64(y0))
	v00 := t.Values[y0*t.Width+x0]
	v10 := t.Values[y0*t.Width+x1]
	v01 := t.Values[y1*t.Width+x0]
	v11 := t.Values[y1*t.Width+x1]
	top := v00*(1-tx) + v10*tx
	bot := v01*(1-tx) + v11*tx
	return top*(1-ty) + bot*ty
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	} else if v > hi {
		return hi
	}
	return v
}
