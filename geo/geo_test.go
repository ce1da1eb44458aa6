package geo

import "testing"

func TestCentimeterConversions(t *testing.T) {
	if got := FromMeters(12.349); got != 1234 {
		t.Errorf("FromMeters rounds toward zero: got %d", got)
	}
	if got := FromMeters(-12.349); got != -1234 {
		t.Errorf("FromMeters negative: got %d", got)
	}
	if got := FromMillimeters(1239); got != 123 {
		t.Errorf("FromMillimeters: got %d", got)
	}
	if got := FromMillimeters(-1239); got != -123 {
		t.Errorf("FromMillimeters negative: got %d", got)
	}
	if got := Centimeters(150).Meters(); got != 1.5 {
		t.Errorf("Meters: got %f", got)
	}
	if got := Centimeters(42).Millimeters(); got != 420 {
		t.Errorf("Millimeters: got %d", got)
	}
}

func TestPositionValid(t *testing.T) {
	cases := []struct {
		pos  Position
		want bool
	}{
		{Position{0, 0}, true},
		{Position{180 * CoordScale, 90 * CoordScale}, true},
		{Position{-180 * CoordScale, -90 * CoordScale}, true},
		{Position{180*CoordScale + 1, 0}, false},
		{Position{0, -90*CoordScale - 1}, false},
	}
	for _, tc := range cases {
		if got := tc.pos.Valid(); got != tc.want {
			t.Errorf("Valid(%v) = %v, want %v", tc.pos, got, tc.want)
		}
	}
}

func TestPointRoundTrip(t *testing.T) {
	pt := Point{Lon: -58.3815591, Lat: -34.6036844}
	pos := pt.Position()
	if pos.X != -583815591 || pos.Y != -346036844 {
		t.Fatalf("scaled position: got %v", pos)
	}
	back := pos.Point()
	if back != pt {
		t.Errorf("round trip: got %v want %v", back, pt)
	}
}

func TestDistance(t *testing.T) {
	// One degree of latitude is ~111.19 km for the spherical earth model.
	d := Distance(Point{0, 0}, Point{0, 1})
	const want = 11119000 // cm
	if d < want-Centimeters(want/100) || d > want+Centimeters(want/100) {
		t.Errorf("1 degree latitude: got %d cm, want ~%d", d, want)
	}
	if Distance(Point{10, 20}, Point{10, 20}) != 0 {
		t.Error("distance to self must be zero")
	}
	// Symmetry.
	a, b := Point{2.35, 48.85}, Point{-0.12, 51.5}
	if Distance(a, b) != Distance(b, a) {
		t.Error("distance not symmetric")
	}
}
