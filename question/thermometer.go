package question

import (
	"github.com/roobscoob/jet-lag-core/geo"
	"github.com/roobscoob/jet-lag-core/shape"
)

// ThermometerQuestion is "I've just traveled from Start to End; am I hotter
// or colder?". The possible region is the half-plane on one side of the
// great-circle bisector of the leg.
type ThermometerQuestion struct {
	Start, End geo.Point
}

// ThermometerAnswer answers a thermometer question.
type ThermometerAnswer uint8

const (
	// ThermometerHotter means the seeker moved toward the hider: the
	// hider is on the End side of the bisector.
	ThermometerHotter ThermometerAnswer = iota
	// ThermometerColder means the seeker moved away: the Start side.
	ThermometerColder
)

// Template implements [Question].
func (q ThermometerQuestion) Template() Template {
	return Template{Text: []TextSegment{
		literal("I've just traveled "),
		field("distance"),
		literal(". Am I hotter or colder?"),
	}}
}

// ToShape validates the leg and returns the half-plane shape.
func (q ThermometerQuestion) ToShape(answer ThermometerAnswer, ctx Context) (shape.Shape, error) {
	if q.Start.Position() == q.End.Position() {
		return nil, invalidParameters(
			"thermometer endpoints coincide; the leg has no bisector")
	}
	return thermometerShape{question: q, answer: answer}, nil
}

type thermometerShape struct {
	question ThermometerQuestion
	answer   ThermometerAnswer
}

// BuildInto implements shape.Shape: the region closer to one endpoint than
// the other, which is exactly the bisector half-plane.
func (s thermometerShape) BuildInto(c *shape.Compiler) shape.Register {
	near, far := s.question.End, s.question.Start
	if s.answer == ThermometerColder {
		near, far = far, near
	}
	return c.Boundary(c.Point(near), c.Point(far), shape.BoundaryInside)
}
