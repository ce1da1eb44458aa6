package shape

import (
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/roobscoob/jet-lag-core/geo"
)

func TestBvhSingleLeaf(t *testing.T) {
	b := BuildBvh([]geo.Point{{Lon: 0, Lat: 0}, {Lon: 10, Lat: 0}, {Lon: 0, Lat: 10}})
	if len(b.Nodes) != 1 {
		t.Fatalf("want one leaf, got %d nodes", len(b.Nodes))
	}
	n := b.Nodes[0]
	if n.Count != 3 || n.LeftFirst != 0 {
		t.Errorf("leaf fields: %+v", n)
	}
	if n.MinLat != 0 || n.MaxLat != 10*geo.CoordScale || n.MinLon != 0 || n.MaxLon != 10*geo.CoordScale {
		t.Errorf("leaf bounds: %+v", n)
	}
	if got := b.SerializedSizeU32(); got != 15 {
		t.Errorf("serialized size: got %d want 15", got)
	}
}

func TestBvhEmpty(t *testing.T) {
	b := BuildBvh(nil)
	if len(b.Nodes) != 1 || len(b.Points) != 0 {
		t.Fatalf("empty input must give a single zero leaf, got %+v", b)
	}
	if b.Nodes[0] != (BvhNode{}) {
		t.Errorf("zero-bounds leaf: %+v", b.Nodes[0])
	}
	if _, ok := b.NearestDistance(geo.Position{}); ok {
		t.Error("nearest over empty BVH must report not ok")
	}
}

// checkSubtree verifies the soundness invariant: node bounds contain every
// point of the subtree and leaves index exactly their contiguous range.
func checkSubtree(t *testing.T, b *PointBvh, node uint32) (start, end uint32) {
	t.Helper()
	n := b.Nodes[node]
	if n.Count > 0 {
		if n.Count > MaxLeafSize {
			t.Errorf("leaf %d holds %d > %d points", node, n.Count, MaxLeafSize)
		}
		for _, p := range b.Points[n.LeftFirst : n.LeftFirst+n.Count] {
			if p.Y < n.MinLat || p.Y > n.MaxLat || p.X < n.MinLon || p.X > n.MaxLon {
				t.Errorf("leaf %d bounds %+v exclude point %v", node, n, p)
			}
		}
		return n.LeftFirst, n.LeftFirst + n.Count
	}
	ls, le := checkSubtree(t, b, n.LeftFirst)
	rs, re := checkSubtree(t, b, n.RightChild)
	if le != rs {
		t.Errorf("node %d children not contiguous: [%d,%d) [%d,%d)", node, ls, le, rs, re)
	}
	for _, p := range b.Points[ls:re] {
		if p.Y < n.MinLat || p.Y > n.MaxLat || p.X < n.MinLon || p.X > n.MaxLon {
			t.Errorf("node %d bounds %+v exclude point %v", node, n, p)
		}
	}
	return ls, re
}

func TestBvhSoundness(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pts := make([]geo.Point, 300)
	for i := range pts {
		pts[i] = geo.Point{Lon: rng.Float64()*10 - 5, Lat: rng.Float64()*10 - 5}
	}
	b := BuildBvh(pts)
	start, end := checkSubtree(t, b, 0)
	if start != 0 || end != uint32(len(pts)) {
		t.Errorf("root covers [%d,%d), want [0,%d)", start, end, len(pts))
	}
	if got := b.SerializedSizeU32(); got != 2+7*len(b.Nodes)+2*len(b.Points) {
		t.Errorf("size formula violated: %d", got)
	}
}

func TestBvhDegenerateDuplicates(t *testing.T) {
	pts := make([]geo.Point, 40)
	for i := range pts {
		pts[i] = geo.Point{Lon: 1, Lat: 2}
	}
	b := BuildBvh(pts)
	checkSubtree(t, b, 0)
	if len(b.Points) != len(pts) {
		t.Errorf("points dropped: %d", len(b.Points))
	}
}

func TestBvhNearestMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pts := make([]geo.Point, 120)
	for i := range pts {
		pts[i] = geo.Point{Lon: rng.Float64()*2 - 1, Lat: rng.Float64()*2 - 1}
	}
	b := BuildBvh(pts)
	for trial := 0; trial < 50; trial++ {
		q := geo.Point{Lon: rng.Float64()*4 - 2, Lat: rng.Float64()*4 - 2}.Position()
		got, ok := b.NearestDistance(q)
		if !ok {
			t.Fatal("nearest not ok")
		}
		want := maxDistance
		for _, p := range b.Points {
			if d := geo.DistanceScaled(q, p); d < want {
				want = d
			}
		}
		if got != want {
			t.Errorf("nearest(%v) = %d, brute force %d", q, got, want)
		}
	}
}

func TestBvhSerializationLayout(t *testing.T) {
	b := BuildBvh([]geo.Point{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}})
	buf := b.AppendTo(nil)
	if len(buf) != 4*b.SerializedSizeU32() {
		t.Fatalf("buffer length %d, want %d", len(buf), 4*b.SerializedSizeU32())
	}
	if n := binary.LittleEndian.Uint32(buf); n != uint32(len(b.Nodes)) {
		t.Errorf("node count header: %d", n)
	}
	if n := binary.LittleEndian.Uint32(buf[4:]); n != uint32(len(b.Points)) {
		t.Errorf("point count header: %d", n)
	}
	// First node starts at word 2; its LeftFirst is word 2+4.
	if got := binary.LittleEndian.Uint32(buf[4*(2+4):]); got != b.Nodes[0].LeftFirst {
		t.Errorf("node layout: left_first %d", got)
	}
}
