package question

import (
	"github.com/samber/lo"

	"github.com/roobscoob/jet-lag-core/geo"
	"github.com/roobscoob/jet-lag-core/shape"
)

// MatchingTarget is the POI category a matching question compares nearest
// neighbors over.
type MatchingTarget uint8

const (
	MatchCommercialAirport MatchingTarget = iota
	MatchMuseum
	MatchLibrary
	MatchMovieTheater
	MatchHospital
	MatchZoo
	MatchAquarium
	MatchAmusementPark
	MatchPark
)

var matchingTargets = map[MatchingTarget]struct {
	category string
	niceName string
}{
	MatchCommercialAirport: {"airport", "Airports"},
	MatchMuseum:            {"museum", "Museums"},
	MatchLibrary:           {"library", "Libraries"},
	MatchMovieTheater:      {"movie_theater", "Movie Theaters"},
	MatchHospital:          {"hospital", "Hospitals"},
	MatchZoo:               {"zoo", "Zoos"},
	MatchAquarium:          {"aquarium", "Aquariums"},
	MatchAmusementPark:     {"amusement_park", "Amusement Parks"},
	MatchPark:              {"park", "Parks"},
}

// MatchingQuestion is "is your nearest <category> the same as my nearest
// <category>?". Center is the asker's position.
type MatchingQuestion struct {
	Target MatchingTarget
	Center geo.Point
}

// MatchingAnswer answers a matching question.
type MatchingAnswer uint8

const (
	MatchingSame MatchingAnswer = iota
	MatchingDifferent
)

// Template implements [Question].
func (q MatchingQuestion) Template() Template {
	return Template{Text: []TextSegment{
		literal("Is your nearest "),
		field("category"),
		literal(" the same as my nearest "),
		field("category"),
		literal("?"),
	}}
}

// ToShape validates the dataset and returns the Voronoi-cell shape of the
// asker's nearest point of interest.
func (q MatchingQuestion) ToShape(answer MatchingAnswer, ctx Context) (shape.Shape, error) {
	target, ok := matchingTargets[q.Target]
	if !ok {
		return nil, invalidParameters("unknown matching target")
	}
	if !ctx.HasPOICategory(target.category) {
		return nil, missingData(target.niceName)
	}
	pois := ctx.AllPOIs(target.category)
	if len(pois) < 2 {
		return nil, noEntropy(
			"Fewer than two POIs in category; every location shares the same nearest one.",
			"Your game map should include more POIs for this category.",
		)
	}
	return matchingShape{question: q, answer: answer, pois: pois}, nil
}

type matchingShape struct {
	question MatchingQuestion
	answer   MatchingAnswer
	pois     []POI
}

// BuildInto implements shape.Shape: the Voronoi cell of the asker's
// nearest point of interest, that is the region closer to it than to any
// other of the category. Shared cell edges resolve to the cell itself.
func (s matchingShape) BuildInto(c *shape.Compiler) shape.Register {
	mine := lo.MinBy(s.pois, func(a, b POI) bool {
		return geo.Distance(s.question.Center, a.Position) < geo.Distance(s.question.Center, b.Position)
	})
	others := lo.FilterMap(s.pois, func(p POI, _ int) (geo.Point, bool) {
		return p.Position, p.ID != mine.ID
	})
	cell := c.Boundary(c.Point(mine.Position), c.PointCloud(others), shape.BoundaryInside)
	if s.answer == MatchingDifferent {
		return c.Invert(cell)
	}
	return cell
}
