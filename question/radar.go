package question

import (
	"github.com/roobscoob/jet-lag-core/geo"
	"github.com/roobscoob/jet-lag-core/shape"
)

// RadarQuestion is "are you within <radius> of me?".
type RadarQuestion struct {
	Center geo.Point
	Radius geo.Centimeters
}

// RadarAnswer answers a radar question.
type RadarAnswer uint8

const (
	RadarHit RadarAnswer = iota
	RadarMiss
)

// Template implements [Question].
func (q RadarQuestion) Template() Template {
	return Template{Text: []TextSegment{
		literal("Are you within "),
		field("distance"),
		literal(" of me?"),
	}}
}

// ToShape returns the radar disc, inverted on a miss.
func (q RadarQuestion) ToShape(answer RadarAnswer, ctx Context) (shape.Shape, error) {
	if q.Radius <= 0 {
		return nil, invalidParameters("radar radius must be positive")
	}
	return radarShape{question: q, answer: answer}, nil
}

type radarShape struct {
	question RadarQuestion
	answer   RadarAnswer
}

// BuildInto implements shape.Shape.
func (s radarShape) BuildInto(c *shape.Compiler) shape.Register {
	result := c.With(shape.Circle{Center: s.question.Center, Radius: s.question.Radius})
	if s.answer == RadarMiss {
		return c.Invert(result)
	}
	return result
}
