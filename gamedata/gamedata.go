// Package gamedata is an in-memory implementation of the question context:
// points of interest under an R-tree spatial index, polygon categories as
// Voronoi diagrams, rail lines, an optional elevation raster and a transit
// provider. It backs tests and the mobile shell alike.
package gamedata

import (
	"github.com/dhconnelly/rtreego"

	"github.com/roobscoob/jet-lag-core/geo"
	"github.com/roobscoob/jet-lag-core/question"
	"github.com/roobscoob/jet-lag-core/shape"
	"github.com/roobscoob/jet-lag-core/transit"
)

// indexedPOI wraps a point of interest for R-tree storage.
type indexedPOI struct {
	poi question.POI
}

// Bounds implements the rtreego.Spatial interface. Points get a small
// epsilon extent since the R-tree requires non-zero dimensions.
func (e *indexedPOI) Bounds() rtreego.Rect {
	const epsilon = 0.0001
	rect, _ := rtreego.NewRect(
		rtreego.Point{e.poi.Position.Lon, e.poi.Position.Lat},
		[]float64{epsilon, epsilon},
	)
	return rect
}

type poiCategory struct {
	rtree *rtreego.Rtree
	byID  map[string]question.POI
	all   []question.POI
}

// Context holds the loaded game datasets. Build it up front with the Add
// methods; afterwards it is read-only and safe for concurrent readers.
type Context struct {
	pois    map[string]*poiCategory
	areas   map[string]*shape.VoronoiDiagram
	rail    []question.RailLine
	contour *shape.ContourTexture
	transit transit.Provider
	state   question.GameState
}

var _ question.Context = (*Context)(nil)

// NewContext returns an empty context with the given game state.
func NewContext(state question.GameState) *Context {
	return &Context{
		pois:  make(map[string]*poiCategory),
		areas: make(map[string]*shape.VoronoiDiagram),
		state: state,
	}
}

// AddPOIs loads a point-of-interest category.
func (c *Context) AddPOIs(category string, pois []question.POI) {
	cat := &poiCategory{
		rtree: rtreego.NewTree(2, 25, 50),
		byID:  make(map[string]question.POI, len(pois)),
		all:   pois,
	}
	for _, p := range pois {
		cat.byID[p.ID] = p
		cat.rtree.Insert(&indexedPOI{poi: p})
	}
	c.pois[category] = cat
}

// AddAreas loads a polygon category as its Voronoi diagram.
func (c *Context) AddAreas(category string, diagram *shape.VoronoiDiagram) {
	c.areas[category] = diagram
}

// AddRailLines loads the high-speed rail polylines.
func (c *Context) AddRailLines(lines []question.RailLine) {
	c.rail = lines
}

// SetContourTexture loads the sea-level elevation raster.
func (c *Context) SetContourTexture(t *shape.ContourTexture) {
	c.contour = t
}

// SetTransit attaches a transit provider.
func (c *Context) SetTransit(p transit.Provider) {
	c.transit = p
}

// HasPOICategory implements question.Context.
func (c *Context) HasPOICategory(category string) bool {
	_, ok := c.pois[category]
	return ok
}

// POI implements question.Context.
func (c *Context) POI(category, id string) (question.POI, bool) {
	cat, ok := c.pois[category]
	if !ok {
		return question.POI{}, false
	}
	p, ok := cat.byID[id]
	return p, ok
}

// AllPOIs implements question.Context.
func (c *Context) AllPOIs(category string) []question.POI {
	cat, ok := c.pois[category]
	if !ok {
		return nil
	}
	return cat.all
}

// NearestPOI returns the category's point of interest closest to pt via
// the spatial index.
func (c *Context) NearestPOI(category string, pt geo.Point) (question.POI, bool) {
	cat, ok := c.pois[category]
	if !ok || cat.rtree.Size() == 0 {
		return question.POI{}, false
	}
	nearest := cat.rtree.NearestNeighbor(rtreego.Point{pt.Lon, pt.Lat})
	if nearest == nil {
		return question.POI{}, false
	}
	return nearest.(*indexedPOI).poi, true
}

// POIsWithin returns every point of interest of the category within radius
// of pt, using a bounding-rectangle query refined by great-circle distance.
func (c *Context) POIsWithin(category string, pt geo.Point, radius geo.Centimeters) []question.POI {
	cat, ok := c.pois[category]
	if !ok {
		return nil
	}
	// Bounding box in degrees; one degree of latitude is ~11,119,000 cm.
	// Longitude degrees shrink toward the poles, so the box doubles that
	// axis rather than scaling by the local cosine.
	halfDeg := float64(radius) / 11_119_000
	rect, _ := rtreego.NewRect(
		rtreego.Point{pt.Lon - 2*halfDeg, pt.Lat - halfDeg},
		[]float64{4 * halfDeg, 2 * halfDeg},
	)
	var out []question.POI
	for _, spatial := range cat.rtree.SearchIntersect(rect) {
		poi := spatial.(*indexedPOI).poi
		if geo.Distance(pt, poi.Position) <= radius {
			out = append(out, poi)
		}
	}
	return out
}

// HasAreaCategory implements question.Context.
func (c *Context) HasAreaCategory(category string) bool {
	_, ok := c.areas[category]
	return ok
}

// AllAreasAsVdg implements question.Context.
func (c *Context) AllAreasAsVdg(category string) (*shape.VoronoiDiagram, bool) {
	d, ok := c.areas[category]
	return d, ok
}

// HasHighSpeedRailLineData implements question.Context.
func (c *Context) HasHighSpeedRailLineData() bool {
	return len(c.rail) > 0
}

// HighSpeedRailLines implements question.Context.
func (c *Context) HighSpeedRailLines() ([]question.RailLine, bool) {
	return c.rail, len(c.rail) > 0
}

// HasSeaLevelContourTexture implements question.Context.
func (c *Context) HasSeaLevelContourTexture() bool {
	return c.contour != nil
}

// SeaLevelContourTexture implements question.Context.
func (c *Context) SeaLevelContourTexture() (*shape.ContourTexture, bool) {
	return c.contour, c.contour != nil
}

// Transit implements question.Context.
func (c *Context) Transit() transit.Provider {
	return c.transit
}

// GameState implements question.Context.
func (c *Context) GameState() question.GameState {
	return c.state
}
