package shape

import "github.com/roobscoob/jet-lag-core/geo"

// Register identifies one distance-field sample in the instruction stream.
// Registers are in SSA form: produced by exactly one instruction, read by
// many, and valid only for the compiler that allocated them.
type Register uint32

// Op tags an instruction variant.
type Op uint8

const (
	// OpPoint evaluates the great-circle distance to a fixed position.
	OpPoint Op = iota
	// OpPointCloud evaluates the minimum distance to any point of a BVH.
	OpPointCloud
	// OpGeodesic evaluates the distance to a great-circle polyline.
	OpGeodesic
	// OpLoadVdg evaluates the signed distance to a polygon union via its
	// Voronoi diagram; negative inside.
	OpLoadVdg
	// OpContourTexture samples a raster scalar field minus a zero value.
	OpContourTexture
	// OpEdge takes the absolute value of its input.
	OpEdge
	// OpInvert negates its input.
	OpInvert
	// OpDilate subtracts a non-negative amount from its input, growing the
	// negative region.
	OpDilate
	// OpUnion takes the minimum over its inputs.
	OpUnion
	// OpIntersection takes the maximum over its inputs.
	OpIntersection
	// OpSubtract computes max(a, -b).
	OpSubtract
	// OpBoundary selects the region closer to the inside input than to the
	// outside input, with a tie policy on the shared boundary.
	OpBoundary
)

func (op Op) String() string {
	switch op {
	case OpPoint:
		return "point"
	case OpPointCloud:
		return "point_cloud"
	case OpGeodesic:
		return "geodesic"
	case OpLoadVdg:
		return "vdg"
	case OpContourTexture:
		return "contour_texture"
	case OpEdge:
		return "edge"
	case OpInvert:
		return "invert"
	case OpDilate:
		return "dilate"
	case OpUnion:
		return "union"
	case OpIntersection:
		return "intersection"
	case OpSubtract:
		return "subtract"
	case OpBoundary:
		return "boundary"
	}
	return "unknown"
}

// BoundaryOverlapResolution selects which side of a boundary owns the
// shared zero set.
type BoundaryOverlapResolution uint8

const (
	// BoundaryInside assigns ties to the inside operand.
	BoundaryInside BoundaryOverlapResolution = iota
	// BoundaryOutside assigns ties to the outside operand.
	BoundaryOutside
)

// Instruction is one tagged record of the SDF instruction stream. Only the
// fields relevant to Op are set.
type Instruction struct {
	Op     Op
	Output Register

	// A is the sole input of unary operations and the left/inside input of
	// Subtract and Boundary. B is the right/outside input.
	A, B Register
	// Inputs holds the operands of Union and Intersection.
	Inputs []Register

	Position geo.Position    // OpPoint
	Bvh      *PointBvh       // OpPointCloud
	Path     []geo.Position  // OpGeodesic
	Diagram  *VoronoiDiagram // OpLoadVdg
	Texture  *ContourTexture // OpContourTexture

	// Amount is the dilation distance for OpDilate and the zero value for
	// OpContourTexture.
	Amount geo.Centimeters

	Policy BoundaryOverlapResolution // OpBoundary
}

// ArgumentLen is the number of {offset, length} argument handles the
// instruction's shader routine consumes from the packed buffer.
func (inst Instruction) ArgumentLen() int {
	switch inst.Op {
	case OpPoint, OpPointCloud, OpGeodesic, OpLoadVdg, OpDilate:
		return 1
	case OpContourTexture:
		return 2
	}
	return 0
}

// inputs appends every register the instruction reads to dst.
func (inst Instruction) inputs(dst []Register) []Register {
	switch inst.Op {
	case OpEdge, OpInvert, OpDilate:
		dst = append(dst, inst.A)
	case OpSubtract, OpBoundary:
		dst = append(dst, inst.A, inst.B)
	case OpUnion, OpIntersection:
		dst = append(dst, inst.Inputs...)
	}
	return dst
}
