package question

import (
	"github.com/roobscoob/jet-lag-core/geo"
	"github.com/roobscoob/jet-lag-core/shape"
	"github.com/roobscoob/jet-lag-core/transit"
)

// POI is one point of interest of a category.
type POI struct {
	ID       string
	Position geo.Point
}

// RailLine is one high-speed rail line polyline.
type RailLine struct {
	Positions []geo.Point
}

// GameState carries the game parameters shape construction needs.
type GameState struct {
	// SeekerHidingRadius is the radius hiders may roam around their spot.
	SeekerHidingRadius geo.Centimeters
}

// Context answers the spatial queries shape construction performs. It is
// read-mostly: many compilation sessions may borrow it concurrently as
// long as only these read operations are used.
type Context interface {
	// HasPOICategory reports whether the category's dataset is loaded.
	HasPOICategory(category string) bool
	// POI looks one point of interest up by id.
	POI(category, id string) (POI, bool)
	// AllPOIs returns every point of interest of the category.
	AllPOIs(category string) []POI

	// HasAreaCategory reports whether the category's polygon dataset is
	// loaded.
	HasAreaCategory(category string) bool
	// AllAreasAsVdg returns the category's polygon set as a Voronoi
	// diagram.
	AllAreasAsVdg(category string) (*shape.VoronoiDiagram, bool)

	// HasHighSpeedRailLineData reports whether rail lines are loaded.
	HasHighSpeedRailLineData() bool
	// HighSpeedRailLines returns every high-speed rail line.
	HighSpeedRailLines() ([]RailLine, bool)

	// HasSeaLevelContourTexture reports whether the elevation raster is
	// loaded.
	HasSeaLevelContourTexture() bool
	// SeaLevelContourTexture returns the elevation raster.
	SeaLevelContourTexture() (*shape.ContourTexture, bool)

	// Transit returns the transit provider, or nil when absent.
	Transit() transit.Provider

	// GameState returns the current game parameters.
	GameState() GameState
}
