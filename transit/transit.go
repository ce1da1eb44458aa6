// Package transit declares the transit-data capabilities the question
// layer consumes: stations grouped into complexes and trips over stop
// events, each keyed by opaque string identifiers. Data providers live
// outside the core.
package transit

import "github.com/roobscoob/jet-lag-core/geo"

// StationIdentifier keys a station.
type StationIdentifier string

// ComplexIdentifier keys a station complex.
type ComplexIdentifier string

// TripIdentifier keys a trip.
type TripIdentifier string

// StopEvent is one scheduled stop of a trip.
type StopEvent struct {
	Station StationIdentifier
}

// Complex is a group of stations sharing one physical site.
type Complex interface {
	Identifier() ComplexIdentifier
	Center() geo.Point
}

// Station is a single station belonging to a complex.
type Station interface {
	Identifier() StationIdentifier
	Complex() Complex
}

// Trip is an ordered sequence of stop events.
type Trip interface {
	Identifier() TripIdentifier
	StopEvents() []StopEvent
}

// Provider answers transit lookups. Implementations are read-mostly and
// safe for concurrent readers.
type Provider interface {
	AllComplexes() []Complex
	Station(id StationIdentifier) (Station, bool)
	Trip(id TripIdentifier) (Trip, bool)
}
