package question

import (
	"github.com/samber/lo"

	"github.com/roobscoob/jet-lag-core/geo"
	"github.com/roobscoob/jet-lag-core/shape"
	"github.com/roobscoob/jet-lag-core/transit"
)

// MeasuringTarget is what a measuring question measures distance to.
type MeasuringTarget uint8

const (
	MeasureCommercialAirport MeasuringTarget = iota
	MeasureHighSpeedRailLine
	MeasureRailStation
	MeasureInternationalBorder
	MeasureFirstAdministrativeDivisionBorder
	MeasureSecondAdministrativeDivisionBorder
	MeasureSeaLevel
	MeasureBodyOfWater
	MeasureCoastline
	MeasureMountain
	MeasurePark
	MeasureAmusementPark
	MeasureZoo
	MeasureAquarium
	MeasureGolfCourse
	MeasureMuseum
	MeasureMovieTheater
	MeasureHospital
	MeasureLibrary
	MeasureForeignConsulate
)

// measuringPOITargets maps point-of-interest targets to their dataset
// category and the bundle name used in download hints.
var measuringPOITargets = map[MeasuringTarget]struct {
	category string
	niceName string
}{
	MeasureCommercialAirport: {"airport", "Airports"},
	MeasureMountain:          {"mountain", "Mountains"},
	MeasurePark:              {"park", "Parks"},
	MeasureAmusementPark:     {"amusement_park", "Amusement Parks"},
	MeasureZoo:               {"zoo", "Zoos"},
	MeasureAquarium:          {"aquarium", "Aquariums"},
	MeasureGolfCourse:        {"golf_course", "Golf Courses"},
	MeasureMuseum:            {"museum", "Museums"},
	MeasureMovieTheater:      {"movie_theater", "Movie Theaters"},
	MeasureHospital:          {"hospital", "Hospitals"},
	MeasureLibrary:           {"library", "Libraries"},
	MeasureForeignConsulate:  {"foreign_consulate", "Foreign Consulates"},
}

// measuringAreaTargets maps polygon-set targets to their dataset category
// and bundle name.
var measuringAreaTargets = map[MeasuringTarget]struct {
	category string
	niceName string
}{
	MeasureInternationalBorder:                {"international_border", "Administrative Divisions"},
	MeasureFirstAdministrativeDivisionBorder:  {"first_administrative_division", "Administrative Divisions"},
	MeasureSecondAdministrativeDivisionBorder: {"second_administrative_division", "Administrative Divisions"},
	MeasureBodyOfWater:                        {"water_body", "Water Bodies"},
	MeasureCoastline:                          {"landmass", "Landmasses"},
}

// MeasuringQuestion is "compared to me, are you closer to or further from
// <target>?". Distance is the asker's own distance to the target; for the
// SeaLevel target it holds the asker's altitude instead.
type MeasuringQuestion struct {
	Target   MeasuringTarget
	Distance geo.Centimeters
}

// MeasuringAnswer answers a measuring question.
type MeasuringAnswer uint8

const (
	// MeasuringNull is the sentinel for "no data to compare against"; it
	// constrains nothing and never reaches shape construction.
	MeasuringNull MeasuringAnswer = iota
	MeasuringCloser
	MeasuringFurther
)

// Template implements [Question].
func (q MeasuringQuestion) Template() Template {
	return Template{Text: []TextSegment{
		literal("Compared to me are you closer or further from "),
		field("category"),
		literal("?"),
	}}
}

// ToShape validates the answer against the context's datasets and returns
// the shape of the still-possible region.
func (q MeasuringQuestion) ToShape(answer MeasuringAnswer, ctx Context) (shape.Shape, error) {
	if answer == MeasuringNull {
		return nil, noEntropy(
			"No POIs available to answer Measuring Question.",
			"Your game map should include POIs for this category.",
		)
	}
	switch q.Target {
	case MeasureRailStation:
		if ctx.Transit() == nil {
			return nil, missingData("Transit")
		}
	case MeasureHighSpeedRailLine:
		if !ctx.HasHighSpeedRailLineData() {
			return nil, missingData("High-Speed Rail Lines")
		}
	case MeasureSeaLevel:
		if !ctx.HasSeaLevelContourTexture() {
			return nil, missingData("Sea Level Contour Texture")
		}
	default:
		if poi, ok := measuringPOITargets[q.Target]; ok {
			if !ctx.HasPOICategory(poi.category) {
				return nil, missingData(poi.niceName)
			}
			break
		}
		area, ok := measuringAreaTargets[q.Target]
		if !ok {
			return nil, invalidParameters("unknown measuring target")
		}
		if !ctx.HasAreaCategory(area.category) {
			return nil, missingData(area.niceName)
		}
	}
	return measuringShape{question: q, answer: answer, ctx: ctx}, nil
}

type measuringShape struct {
	question MeasuringQuestion
	answer   MeasuringAnswer
	ctx      Context
}

// BuildInto implements shape.Shape. The target's distance field is dilated
// by the asker's distance; "closer" keeps it, "further" inverts it. The
// SeaLevel target instead thresholds the elevation raster at the asker's
// altitude.
func (s measuringShape) BuildInto(c *shape.Compiler) shape.Register {
	if s.question.Target == MeasureSeaLevel {
		tex, _ := s.ctx.SeaLevelContourTexture()
		contour := c.WithContourTexture(tex, s.question.Distance)
		// A "further from sea level" hider has the greater elevation, so
		// the possible region is where the raster exceeds the threshold.
		if s.answer == MeasuringFurther {
			return c.Invert(contour)
		}
		return contour
	}

	var vdf shape.Register
	switch s.question.Target {
	case MeasureHighSpeedRailLine:
		lines, _ := s.ctx.HighSpeedRailLines()
		paths := lo.Map(lines, func(line RailLine, _ int) shape.Register {
			return c.GeodesicString(line.Positions)
		})
		vdf = c.Union(paths)

	case MeasureRailStation:
		vdf = c.PointCloud(lo.Map(s.ctx.Transit().AllComplexes(), func(cx transit.Complex, _ int) geo.Point {
			return cx.Center()
		}))

	default:
		if poi, ok := measuringPOITargets[s.question.Target]; ok {
			vdf = c.PointCloud(lo.Map(s.ctx.AllPOIs(poi.category), func(p POI, _ int) geo.Point {
				return p.Position
			}))
			break
		}
		area := measuringAreaTargets[s.question.Target]
		diagram, _ := s.ctx.AllAreasAsVdg(area.category)
		vdf = c.Edge(c.WithVdg(diagram))
	}

	dilated := c.Dilate(vdf, s.question.Distance)
	if s.answer == MeasuringFurther {
		return c.Invert(dilated)
	}
	return dilated
}
