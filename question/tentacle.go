package question

import (
	"github.com/samber/lo"

	"github.com/roobscoob/jet-lag-core/geo"
	"github.com/roobscoob/jet-lag-core/shape"
	"github.com/roobscoob/jet-lag-core/transit"
)

// TentacleTarget is the venue category a tentacle question reaches over.
type TentacleTarget uint8

const (
	TentacleMuseum TentacleTarget = iota
	TentacleLibrary
	TentacleMovieTheater
	TentacleHospital
	TentacleMetroLine
	TentacleZoo
	TentacleAquarium
	TentacleAmusementPark
)

var tentaclePOITargets = map[TentacleTarget]struct {
	category string
	niceName string
}{
	TentacleMuseum:        {"museum", "Museums"},
	TentacleLibrary:       {"library", "Libraries"},
	TentacleMovieTheater:  {"movie_theater", "Movie Theaters"},
	TentacleHospital:      {"hospital", "Hospitals"},
	TentacleZoo:           {"zoo", "Zoos"},
	TentacleAquarium:      {"aquarium", "Aquariums"},
	TentacleAmusementPark: {"amusement_park", "Amusement Parks"},
}

// TentacleQuestion is "of all the <category> within <radius> of me, which
// are you closest to?".
type TentacleQuestion struct {
	Center geo.Point
	Radius geo.Centimeters
	Target TentacleTarget
}

// TentacleAnswer answers a tentacle question: either the hider is outside
// the radius entirely, or names the closest venue.
type TentacleAnswer struct {
	OutOfRadius bool
	// ClosestID names the chosen venue when OutOfRadius is false: a POI id,
	// or a trip identifier for the MetroLine target.
	ClosestID string
}

// Template implements [Question].
func (q TentacleQuestion) Template() Template {
	return Template{Text: []TextSegment{
		literal("Of all the "),
		field("category"),
		literal(" within "),
		field("distance"),
		literal(" of me, which are you closest to?"),
	}}
}

// ToShape validates the datasets and the named venue.
func (q TentacleQuestion) ToShape(answer TentacleAnswer, ctx Context) (shape.Shape, error) {
	if q.Radius <= 0 {
		return nil, invalidParameters("tentacle radius must be positive")
	}
	if answer.OutOfRadius {
		return tentacleShape{question: q, answer: answer, ctx: ctx}, nil
	}
	if q.Target == TentacleMetroLine {
		provider := ctx.Transit()
		if provider == nil {
			return nil, missingData("Transit")
		}
		if _, ok := provider.Trip(transit.TripIdentifier(answer.ClosestID)); !ok {
			return nil, invalidParameters("tentacle answer names an unknown trip")
		}
		return tentacleShape{question: q, answer: answer, ctx: ctx}, nil
	}
	target, ok := tentaclePOITargets[q.Target]
	if !ok {
		return nil, invalidParameters("unknown tentacle target")
	}
	if !ctx.HasPOICategory(target.category) {
		return nil, missingData(target.niceName)
	}
	if _, ok := ctx.POI(target.category, answer.ClosestID); !ok {
		return nil, invalidParameters("tentacle answer names an unknown venue")
	}
	return tentacleShape{question: q, answer: answer, ctx: ctx}, nil
}

type tentacleShape struct {
	question TentacleQuestion
	answer   TentacleAnswer
	ctx      Context
}

// BuildInto implements shape.Shape. Out of radius excludes the whole disc;
// otherwise the possible region is closer to the named venue than to every
// other venue of the category. The metro variant compares the complexes of
// the closest trip against all other complexes, each dilated by the hiding
// radius.
func (s tentacleShape) BuildInto(c *shape.Compiler) shape.Register {
	if s.answer.OutOfRadius {
		center := c.Point(s.question.Center)
		circle := c.Dilate(center, s.question.Radius)
		return c.Invert(circle)
	}

	var tentacle, other shape.Register
	if s.question.Target == TentacleMetroLine {
		provider := s.ctx.Transit()
		trip, _ := provider.Trip(transit.TripIdentifier(s.answer.ClosestID))
		complexes := lo.UniqBy(
			lo.FilterMap(trip.StopEvents(), func(e transit.StopEvent, _ int) (transit.Complex, bool) {
				station, ok := provider.Station(e.Station)
				if !ok {
					return nil, false
				}
				return station.Complex(), true
			}),
			func(cx transit.Complex) transit.ComplexIdentifier { return cx.Identifier() },
		)
		onTrip := lo.SliceToMap(complexes, func(cx transit.Complex) (transit.ComplexIdentifier, struct{}) {
			return cx.Identifier(), struct{}{}
		})
		others := lo.FilterMap(provider.AllComplexes(), func(cx transit.Complex, _ int) (geo.Point, bool) {
			_, on := onTrip[cx.Identifier()]
			return cx.Center(), !on
		})
		hiding := s.ctx.GameState().SeekerHidingRadius
		osp := c.PointCloud(others)
		qsp := c.PointCloud(lo.Map(complexes, func(cx transit.Complex, _ int) geo.Point {
			return cx.Center()
		}))
		other = c.Dilate(osp, hiding)
		tentacle = c.Dilate(qsp, hiding)
	} else {
		category := tentaclePOITargets[s.question.Target].category
		chosen, _ := s.ctx.POI(category, s.answer.ClosestID)
		others := lo.FilterMap(s.ctx.AllPOIs(category), func(p POI, _ int) (geo.Point, bool) {
			return p.Position, p.ID != s.answer.ClosestID
		})
		other = c.PointCloud(others)
		tentacle = c.Point(chosen.Position)
	}
	return c.Boundary(tentacle, other, shape.BoundaryInside)
}
