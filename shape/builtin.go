package shape

import "github.com/roobscoob/jet-lag-core/geo"

// Circle is the filled great-circle disc of the given radius: a point
// distance field dilated by the radius.
type Circle struct {
	Center geo.Point
	Radius geo.Centimeters
}

// BuildInto implements [Shape].
func (s Circle) BuildInto(c *Compiler) Register {
	return c.Dilate(c.Point(s.Center), s.Radius)
}

// Geodesic is a great-circle polyline distance field.
type Geodesic struct {
	Path []geo.Point
}

// BuildInto implements [Shape].
func (s Geodesic) BuildInto(c *Compiler) Register {
	return c.GeodesicString(s.Path)
}
