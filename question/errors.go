package question

import "fmt"

// ShapeErrorClass classifies why a question could not be turned into a
// shape.
type ShapeErrorClass uint8

const (
	// Uncomputable shapes are representable only out of band; even with
	// complete data there is no region to draw. The UI must skip them.
	Uncomputable ShapeErrorClass = iota

	// MissingData means a required dataset is absent from the context.
	// Always recoverable by downloading the named bundle.
	MissingData

	// NoEntropy means the answer does not constrain the region at all,
	// such as a null measuring answer. Filter before shape build.
	NoEntropy

	// InvalidParameters means the question parameters do not define a
	// region, such as a thermometer with coincident endpoints.
	InvalidParameters
)

func (c ShapeErrorClass) String() string {
	switch c {
	case Uncomputable:
		return "uncomputable"
	case MissingData:
		return "missing data"
	case NoEntropy:
		return "no entropy"
	case InvalidParameters:
		return "invalid parameters"
	}
	return "unknown"
}

// ShapeError is a classified shape-construction failure with an optional
// user-resolvable hint.
type ShapeError struct {
	Message        string
	ResolutionHint string
	Class          ShapeErrorClass
}

func (e *ShapeError) Error() string {
	return e.Message
}

func missingData(niceName string) *ShapeError {
	return &ShapeError{
		Message:        fmt.Sprintf("Missing %s Data!", niceName),
		ResolutionHint: fmt.Sprintf("Download the '%s' data bundle to visualize this question.", niceName),
		Class:          MissingData,
	}
}

func invalidParameters(msg string) *ShapeError {
	return &ShapeError{Message: msg, Class: InvalidParameters}
}

func noEntropy(msg, hint string) *ShapeError {
	return &ShapeError{Message: msg, ResolutionHint: hint, Class: NoEntropy}
}
