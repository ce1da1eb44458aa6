package tile

import "testing"

func TestTileValidate(t *testing.T) {
	good := Tile{MinLat: 0, MaxLat: 1, MinLon: 0, MaxLon: 1, Width: 4, Height: 4}
	if err := good.Validate(); err != nil {
		t.Fatal(err)
	}
	bad := []Tile{
		{MinLat: 1, MaxLat: 0, MinLon: 0, MaxLon: 1, Width: 4, Height: 4},
		{MinLat: 0, MaxLat: 1, MinLon: 0, MaxLon: 1, Width: 0, Height: 4},
	}
	for _, tc := range bad {
		if tc.Validate() == nil {
			t.Errorf("expected error for %+v", tc)
		}
	}
}

func TestTileSamples(t *testing.T) {
	tl := Tile{MinLat: -1, MaxLat: 1, MinLon: -1, MaxLon: 1, Width: 2, Height: 2}
	pos := tl.Samples()
	if len(pos) != 4 {
		t.Fatalf("sample count %d", len(pos))
	}
	// First pixel is north-west: negative lon, positive lat.
	if pos[0].X >= 0 || pos[0].Y <= 0 {
		t.Errorf("first sample not north-west: %v", pos[0])
	}
	// Last pixel is south-east.
	if pos[3].X <= 0 || pos[3].Y >= 0 {
		t.Errorf("last sample not south-east: %v", pos[3])
	}
	if pos[0] != tl.SampleAt(0, 0) || pos[3] != tl.SampleAt(1, 1) {
		t.Error("Samples order does not match SampleAt")
	}
}
