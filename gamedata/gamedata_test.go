package gamedata

import (
	"testing"

	"github.com/roobscoob/jet-lag-core/geo"
	"github.com/roobscoob/jet-lag-core/question"
)

func testContext() *Context {
	ctx := NewContext(question.GameState{SeekerHidingRadius: geo.FromMeters(400)})
	ctx.AddPOIs("museum", []question.POI{
		{ID: "m1", Position: geo.Point{Lon: 0, Lat: 0}},
		{ID: "m2", Position: geo.Point{Lon: 1, Lat: 0}},
		{ID: "m3", Position: geo.Point{Lon: 0, Lat: 2}},
	})
	return ctx
}

func TestPOILookups(t *testing.T) {
	ctx := testContext()
	if !ctx.HasPOICategory("museum") || ctx.HasPOICategory("zoo") {
		t.Error("category presence")
	}
	if p, ok := ctx.POI("museum", "m2"); !ok || p.Position.Lon != 1 {
		t.Errorf("POI lookup: %v %v", p, ok)
	}
	if _, ok := ctx.POI("museum", "nope"); ok {
		t.Error("unknown id must miss")
	}
	if got := len(ctx.AllPOIs("museum")); got != 3 {
		t.Errorf("AllPOIs: %d", got)
	}
}

func TestNearestPOI(t *testing.T) {
	ctx := testContext()
	p, ok := ctx.NearestPOI("museum", geo.Point{Lon: 0.9, Lat: 0.1})
	if !ok || p.ID != "m2" {
		t.Errorf("nearest: %v %v", p, ok)
	}
	if _, ok := ctx.NearestPOI("zoo", geo.Point{}); ok {
		t.Error("missing category must miss")
	}
}

func TestPOIsWithin(t *testing.T) {
	ctx := testContext()
	got := ctx.POIsWithin("museum", geo.Point{Lon: 0, Lat: 0}, geo.FromMeters(150_000))
	if len(got) != 2 {
		t.Fatalf("within 150 km of origin: %d POIs", len(got))
	}
	for _, p := range got {
		if p.ID == "m3" {
			t.Error("m3 is ~222 km away and must be excluded")
		}
	}
}

func TestTransitNetwork(t *testing.T) {
	n := NewTransitNetwork()
	n.AddComplex("c1", geo.Point{Lon: 0})
	n.AddComplex("c2", geo.Point{Lon: 1})
	n.AddStation("s1", "c1")
	n.AddStation("s2", "c2")
	n.AddTrip("t1", "s1", "s2")

	if got := len(n.AllComplexes()); got != 2 {
		t.Errorf("complexes: %d", got)
	}
	s, ok := n.Station("s2")
	if !ok || s.Complex().Identifier() != "c2" {
		t.Errorf("station: %v %v", s, ok)
	}
	trip, ok := n.Trip("t1")
	if !ok || len(trip.StopEvents()) != 2 {
		t.Errorf("trip: %v %v", trip, ok)
	}
	if _, ok := n.Trip("missing"); ok {
		t.Error("unknown trip must miss")
	}
}
