package question

import "github.com/roobscoob/jet-lag-core/shape"

// PhotoQuestion is "send a photo of <subject>". Photos constrain the hider
// only out of band; there is no region to draw.
type PhotoQuestion struct {
	Subject string
}

// Template implements [Question].
func (q PhotoQuestion) Template() Template {
	return Template{Text: []TextSegment{
		literal("Send a photo of "),
		field("subject"),
		literal("."),
	}}
}

// ToShape always fails: photo evidence is not representable as a shape.
func (q PhotoQuestion) ToShape(ctx Context) (shape.Shape, error) {
	return nil, &ShapeError{
		Message: "Photo questions cannot be visualized as a map region.",
		Class:   Uncomputable,
	}
}
