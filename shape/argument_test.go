package shape

import (
	"encoding/binary"
	"testing"

	"github.com/roobscoob/jet-lag-core/geo"
)

func TestPackPoint(t *testing.T) {
	var p ArgumentPacker
	arg := p.PackPoint(geo.Point{Lon: 1, Lat: -2}.Position())
	if arg.Offset != 0 || arg.Length != 2 {
		t.Fatalf("handle: %+v", arg)
	}
	buf := p.Bytes()
	if len(buf) != 8 {
		t.Fatalf("buffer length %d", len(buf))
	}
	if x := int32(binary.LittleEndian.Uint32(buf)); x != 1*geo.CoordScale {
		t.Errorf("lon word: %d", x)
	}
	if y := int32(binary.LittleEndian.Uint32(buf[4:])); y != -2*geo.CoordScale {
		t.Errorf("lat word: %d", y)
	}
}

func TestPackOffsetsAreWordUnits(t *testing.T) {
	var p ArgumentPacker
	first := p.PackCentimeters(42)
	second := p.PackPoint(geo.Position{})
	third := p.PackCentimeters(-1)
	if first.Offset != 0 || second.Offset != 1 || third.Offset != 3 {
		t.Errorf("offsets: %d %d %d", first.Offset, second.Offset, third.Offset)
	}
	if len(p.Bytes())%4 != 0 {
		t.Error("buffer not 4-byte aligned")
	}
	if v := int32(binary.LittleEndian.Uint32(p.Bytes()[4*third.Offset:])); v != -1 {
		t.Errorf("centimeters word: %d", v)
	}
}

func TestPackBvhLength(t *testing.T) {
	b := BuildBvh([]geo.Point{{Lon: 0, Lat: 0}, {Lon: 10, Lat: 0}, {Lon: 0, Lat: 10}})
	var p ArgumentPacker
	arg := p.PackBvh(b)
	if arg.Length != uint32(b.SerializedSizeU32()) || arg.Length != 15 {
		t.Errorf("bvh handle: %+v", arg)
	}
	if len(p.Bytes()) != int(4*arg.Length) {
		t.Errorf("buffer length %d", len(p.Bytes()))
	}
}

func TestPackStreamOrderAndArgumentLen(t *testing.T) {
	c := NewCompiler()
	pt := c.Point(geo.Point{Lon: 1})
	circle := c.Dilate(pt, 1000)
	cloud := c.PointCloud([]geo.Point{{Lon: 0}, {Lon: 2}})
	c.Union([]Register{circle, cloud})
	if err := c.Err(); err != nil {
		t.Fatal(err)
	}
	var p ArgumentPacker
	args := p.PackStream(c.Instructions())

	wantHandles := 0
	for _, inst := range c.Instructions() {
		wantHandles += inst.ArgumentLen()
	}
	if len(args) != wantHandles {
		t.Fatalf("handle count %d, want %d", len(args), wantHandles)
	}
	// Point payload, then the dilate distance, then the BVH; union packs
	// nothing.
	if args[0].Length != 2 || args[1].Length != 1 {
		t.Errorf("leading handles: %+v", args[:2])
	}
	if args[1].Offset != args[0].Offset+args[0].Length {
		t.Errorf("packing not contiguous: %+v", args[:2])
	}
	if args[2].Offset != args[1].Offset+args[1].Length {
		t.Errorf("bvh offset: %+v", args[1:3])
	}
}

func TestPackContourTexture(t *testing.T) {
	tex, err := NewContourTexture(2, 2, 0, 1, 0, 1, []float32{1, 2, 3, 4})
	if err != nil {
		t.Fatal(err)
	}
	var p ArgumentPacker
	header, payload := p.PackContourTexture(tex, 250)
	if header.Length != 7 {
		t.Errorf("header length %d", header.Length)
	}
	if payload.Offset != header.Offset+header.Length || payload.Length != 4 {
		t.Errorf("payload handle: %+v", payload)
	}
	buf := p.Bytes()
	if w := binary.LittleEndian.Uint32(buf); w != 2 {
		t.Errorf("width word: %d", w)
	}
	if zero := int32(binary.LittleEndian.Uint32(buf[4*6:])); zero != 250 {
		t.Errorf("zero value word: %d", zero)
	}
}
