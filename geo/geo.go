// Package geo defines the geometric primitive types shared by the SDF
// compilation pipeline: integer centimeter distances, scaled integer
// lat/lon positions and floating point geographic points.
package geo

import (
	"math"

	"github.com/chewxy/math32"
)

// CoordScale is the factor between degrees and the scaled integer
// representation used on the GPU, giving 1e-7 degree resolution.
const CoordScale = 10_000_000

// EarthRadiusCm is the mean earth radius used for great-circle math.
const EarthRadiusCm = 637_100_000

// Centimeters is a signed 32-bit distance in centimeters. All distances in
// the instruction stream and in argument buffers are Centimeters.
type Centimeters int32

// FromMeters converts meters to Centimeters rounding toward zero.
func FromMeters(m float32) Centimeters {
	return Centimeters(m * 100)
}

// FromMillimeters converts millimeters to Centimeters rounding toward zero.
func FromMillimeters(mm int64) Centimeters {
	return Centimeters(mm / 10)
}

// Meters returns the distance in meters.
func (cm Centimeters) Meters() float32 {
	return float32(cm) / 100
}

// Millimeters returns the distance in millimeters.
func (cm Centimeters) Millimeters() int64 {
	return int64(cm) * 10
}

// Position is a (longitude, latitude) pair scaled by CoordScale.
type Position struct {
	// X is longitude, Y is latitude, both in 1e-7 degree units.
	X, Y int32
}

// Valid reports whether the position lies within ±180°/±90°.
func (p Position) Valid() bool {
	return p.X >= -180*CoordScale && p.X <= 180*CoordScale &&
		p.Y >= -90*CoordScale && p.Y <= 90*CoordScale
}

// Point returns the position in degrees.
func (p Position) Point() Point {
	return Point{
		Lon: float64(p.X) / CoordScale,
		Lat: float64(p.Y) / CoordScale,
	}
}

// Point is a geographic point in degrees.
type Point struct {
	Lon, Lat float64
}

// Position returns the scaled integer form of the point, rounded to the
// nearest 1e-7 degree.
func (pt Point) Position() Position {
	return Position{
		X: int32(math.Round(pt.Lon * CoordScale)),
		Y: int32(math.Round(pt.Lat * CoordScale)),
	}
}

// Distance returns the great-circle distance between two points using the
// haversine formula.
func Distance(a, b Point) Centimeters {
	return DistanceScaled(a.Position(), b.Position())
}

// DistanceScaled is [Distance] over scaled integer positions. This is the
// same arithmetic the compute shader performs, so CPU and GPU evaluation
// agree to float precision.
func DistanceScaled(a, b Position) Centimeters {
	const degToRad = math32.Pi / 180 / CoordScale
	lat1 := float32(a.Y) * degToRad
	lat2 := float32(b.Y) * degToRad
	dLat := float32(b.Y-a.Y) * degToRad
	dLon := float32(b.X-a.X) * degToRad
	sLat := math32.Sin(dLat / 2)
	sLon := math32.Sin(dLon / 2)
	h := sLat*sLat + math32.Cos(lat1)*math32.Cos(lat2)*sLon*sLon
	if h > 1 {
		h = 1
	}
	d := 2 * math32.Asin(math32.Sqrt(h))
	return Centimeters(d * EarthRadiusCm)
}
