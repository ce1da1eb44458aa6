package gamedata

import (
	"github.com/roobscoob/jet-lag-core/geo"
	"github.com/roobscoob/jet-lag-core/transit"
)

// TransitNetwork is an in-memory transit.Provider.
type TransitNetwork struct {
	complexes map[transit.ComplexIdentifier]*networkComplex
	stations  map[transit.StationIdentifier]*networkStation
	trips     map[transit.TripIdentifier]*networkTrip
	order     []transit.Complex
}

var _ transit.Provider = (*TransitNetwork)(nil)

type networkComplex struct {
	id     transit.ComplexIdentifier
	center geo.Point
}

func (c *networkComplex) Identifier() transit.ComplexIdentifier { return c.id }
func (c *networkComplex) Center() geo.Point                     { return c.center }

type networkStation struct {
	id      transit.StationIdentifier
	complex *networkComplex
}

func (s *networkStation) Identifier() transit.StationIdentifier { return s.id }
func (s *networkStation) Complex() transit.Complex              { return s.complex }

type networkTrip struct {
	id    transit.TripIdentifier
	stops []transit.StopEvent
}

func (t *networkTrip) Identifier() transit.TripIdentifier { return t.id }
func (t *networkTrip) StopEvents() []transit.StopEvent    { return t.stops }

// NewTransitNetwork returns an empty network.
func NewTransitNetwork() *TransitNetwork {
	return &TransitNetwork{
		complexes: make(map[transit.ComplexIdentifier]*networkComplex),
		stations:  make(map[transit.StationIdentifier]*networkStation),
		trips:     make(map[transit.TripIdentifier]*networkTrip),
	}
}

// AddComplex registers a station complex.
func (n *TransitNetwork) AddComplex(id transit.ComplexIdentifier, center geo.Point) {
	cx := &networkComplex{id: id, center: center}
	n.complexes[id] = cx
	n.order = append(n.order, cx)
}

// AddStation registers a station belonging to an existing complex.
func (n *TransitNetwork) AddStation(id transit.StationIdentifier, complex transit.ComplexIdentifier) {
	n.stations[id] = &networkStation{id: id, complex: n.complexes[complex]}
}

// AddTrip registers a trip over existing stations.
func (n *TransitNetwork) AddTrip(id transit.TripIdentifier, stations ...transit.StationIdentifier) {
	trip := &networkTrip{id: id}
	for _, s := range stations {
		trip.stops = append(trip.stops, transit.StopEvent{Station: s})
	}
	n.trips[id] = trip
}

// AllComplexes implements transit.Provider.
func (n *TransitNetwork) AllComplexes() []transit.Complex {
	return n.order
}

// Station implements transit.Provider.
func (n *TransitNetwork) Station(id transit.StationIdentifier) (transit.Station, bool) {
	s, ok := n.stations[id]
	return s, ok
}

// Trip implements transit.Provider.
func (n *TransitNetwork) Trip(id transit.TripIdentifier) (transit.Trip, bool) {
	t, ok := n.trips[id]
	return t, ok
}
