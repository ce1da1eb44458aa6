package shape

import (
	"encoding/binary"

	"github.com/roobscoob/jet-lag-core/geo"
)

// ShaderArgument is a handle into the packed argument buffer. Offset and
// Length are in 32-bit-word units.
type ShaderArgument struct {
	Offset, Length uint32
}

// ArgumentPacker serializes primitive parameters into a single
// little-endian byte buffer read positionally by the compute kernel. All
// appends are multiples of four bytes.
type ArgumentPacker struct {
	buf []byte
}

// Bytes returns the packed buffer.
func (p *ArgumentPacker) Bytes() []byte {
	return p.buf
}

func (p *ArgumentPacker) offset() uint32 {
	return uint32(len(p.buf) / 4)
}

// PackPoint appends a scaled (lon, lat) pair, length 2.
func (p *ArgumentPacker) PackPoint(pos geo.Position) ShaderArgument {
	arg := ShaderArgument{Offset: p.offset(), Length: 2}
	p.buf = binary.LittleEndian.AppendUint32(p.buf, uint32(pos.X))
	p.buf = binary.LittleEndian.AppendUint32(p.buf, uint32(pos.Y))
	return arg
}

// PackCentimeters appends a single signed word, length 1.
func (p *ArgumentPacker) PackCentimeters(cm geo.Centimeters) ShaderArgument {
	arg := ShaderArgument{Offset: p.offset(), Length: 1}
	p.buf = binary.LittleEndian.AppendUint32(p.buf, uint32(cm))
	return arg
}

// PackBvh appends the BVH serialization of §bvh layout.
func (p *ArgumentPacker) PackBvh(b *PointBvh) ShaderArgument {
	arg := ShaderArgument{Offset: p.offset(), Length: uint32(b.SerializedSizeU32())}
	p.buf = b.AppendTo(p.buf)
	return arg
}

// PackGeodesic appends a polyline: [vertex_count, (lon, lat)...].
func (p *ArgumentPacker) PackGeodesic(path []geo.Position) ShaderArgument {
	arg := ShaderArgument{Offset: p.offset(), Length: uint32(1 + 2*len(path))}
	p.buf = binary.LittleEndian.AppendUint32(p.buf, uint32(len(path)))
	for _, v := range path {
		p.buf = binary.LittleEndian.AppendUint32(p.buf, uint32(v.X))
		p.buf = binary.LittleEndian.AppendUint32(p.buf, uint32(v.Y))
	}
	return arg
}

// PackVdg appends the diagram serialization.
func (p *ArgumentPacker) PackVdg(d *VoronoiDiagram) ShaderArgument {
	arg := ShaderArgument{Offset: p.offset(), Length: uint32(d.SerializedSizeU32())}
	p.buf = d.AppendTo(p.buf)
	return arg
}

// PackContourTexture appends the header the shader expects followed by the
// raw float payload, returning one handle per block.
func (p *ArgumentPacker) PackContourTexture(t *ContourTexture, zero geo.Centimeters) (header, payload ShaderArgument) {
	header = ShaderArgument{Offset: p.offset(), Length: contourHeaderSizeU32}
	p.buf = t.AppendHeader(p.buf, zero)
	payload = ShaderArgument{Offset: p.offset(), Length: uint32(len(t.Values))}
	p.buf = t.AppendPayload(p.buf)
	return header, payload
}

// PackStream packs the arguments of every instruction in stream order: for
// each primitive its payload, then its Centimeters parameter if it has one.
// The returned handles are in consumption order, matching each
// instruction's ArgumentLen.
func (p *ArgumentPacker) PackStream(stream []Instruction) []ShaderArgument {
	var args []ShaderArgument
	for _, inst := range stream {
		switch inst.Op {
		case OpPoint:
			args = append(args, p.PackPoint(inst.Position))
		case OpPointCloud:
			args = append(args, p.PackBvh(inst.Bvh))
		case OpGeodesic:
			args = append(args, p.PackGeodesic(inst.Path))
		case OpLoadVdg:
			args = append(args, p.PackVdg(inst.Diagram))
		case OpContourTexture:
			header, payload := p.PackContourTexture(inst.Texture, inst.Amount)
			args = append(args, header, payload)
		case OpDilate:
			args = append(args, p.PackCentimeters(inst.Amount))
		}
	}
	return args
}
