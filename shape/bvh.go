package shape

import (
	"encoding/binary"
	"sort"

	"github.com/roobscoob/jet-lag-core/geo"
)

// MaxLeafSize is the largest point count a BVH leaf may hold.
const MaxLeafSize = 8

// BvhNode is a flattened BVH node for GPU consumption.
// Layout: [min_lat, max_lat, min_lon, max_lon, left_first, right_child, count].
// Internal nodes store child node indices in LeftFirst/RightChild with Count
// zero; leaves store the first point index in LeftFirst with Count > 0.
type BvhNode struct {
	MinLat, MaxLat int32
	MinLon, MaxLon int32
	LeftFirst      uint32
	RightChild     uint32
	Count          uint32
}

// bvhNodeSizeU32 is the serialized node size in 32-bit words.
const bvhNodeSizeU32 = 7

func (n BvhNode) appendTo(b []byte) []byte {
	b = binary.LittleEndian.AppendUint32(b, uint32(n.MinLat))
	b = binary.LittleEndian.AppendUint32(b, uint32(n.MaxLat))
	b = binary.LittleEndian.AppendUint32(b, uint32(n.MinLon))
	b = binary.LittleEndian.AppendUint32(b, uint32(n.MaxLon))
	b = binary.LittleEndian.AppendUint32(b, n.LeftFirst)
	b = binary.LittleEndian.AppendUint32(b, n.RightChild)
	return binary.LittleEndian.AppendUint32(b, n.Count)
}

// PointBvh is a median-split bounding volume hierarchy over scaled integer
// lat/lon points. Points are stored in traversal order so every leaf indexes
// the contiguous range [LeftFirst, LeftFirst+Count).
type PointBvh struct {
	Nodes  []BvhNode
	Points []geo.Position
}

// BuildBvh builds a PointBvh over the argument points. Degenerate inputs
// (duplicates, collinear sets) are accepted; an empty input produces a
// single zero-bounds leaf.
func BuildBvh(points []geo.Point) *PointBvh {
	if len(points) == 0 {
		return &PointBvh{Nodes: []BvhNode{{}}}
	}
	scaled := make([]geo.Position, len(points))
	for i, p := range points {
		scaled[i] = p.Position()
	}
	indices := make([]int, len(scaled))
	for i := range indices {
		indices[i] = i
	}
	b := &PointBvh{}
	b.buildRecursive(indices, scaled, 0, len(scaled))

	b.Points = make([]geo.Position, len(scaled))
	for i, idx := range indices {
		b.Points[i] = scaled[idx]
	}
	return b
}

func bvhBounds(indices []int, points []geo.Position, start, end int) (minLat, maxLat, minLon, maxLon int32) {
	first := points[indices[start]]
	minLon, maxLon = first.X, first.X
	minLat, maxLat = first.Y, first.Y
	for _, idx := range indices[start+1 : end] {
		p := points[idx]
		minLat = min(minLat, p.Y)
		maxLat = max(maxLat, p.Y)
		minLon = min(minLon, p.X)
		maxLon = max(maxLon, p.X)
	}
	return minLat, maxLat, minLon, maxLon
}

// buildRecursive assigns node indices in pre-order: the parent is pushed
// with placeholder children and patched after both subtrees are built.
func (b *PointBvh) buildRecursive(indices []int, points []geo.Position, start, end int) uint32 {
	minLat, maxLat, minLon, maxLon := bvhBounds(indices, points, start, end)
	count := end - start
	nodeIndex := uint32(len(b.Nodes))

	if count <= MaxLeafSize {
		b.Nodes = append(b.Nodes, BvhNode{
			MinLat: minLat, MaxLat: maxLat,
			MinLon: minLon, MaxLon: maxLon,
			LeftFirst: uint32(start),
			Count:     uint32(count),
		})
		return nodeIndex
	}

	// Split on the longer integer extent; ties pick longitude.
	splitOnLat := maxLat-minLat > maxLon-minLon
	sub := indices[start:end]
	if splitOnLat {
		sort.Slice(sub, func(i, j int) bool { return points[sub[i]].Y < points[sub[j]].Y })
	} else {
		sort.Slice(sub, func(i, j int) bool { return points[sub[i]].X < points[sub[j]].X })
	}
	mid := start + count/2

	b.Nodes = append(b.Nodes, BvhNode{
		MinLat: minLat, MaxLat: maxLat,
		MinLon: minLon, MaxLon: maxLon,
	})
	left := b.buildRecursive(indices, points, start, mid)
	right := b.buildRecursive(indices, points, mid, end)
	b.Nodes[nodeIndex].LeftFirst = left
	b.Nodes[nodeIndex].RightChild = right
	return nodeIndex
}

// SerializedSizeU32 is the total serialized size in 32-bit words:
// a two word header plus seven words per node and two per point.
func (b *PointBvh) SerializedSizeU32() int {
	return 2 + len(b.Nodes)*bvhNodeSizeU32 + len(b.Points)*2
}

// AppendTo serializes the BVH little-endian for GPU consumption.
// Layout: [node_count, point_count, nodes..., points...].
func (b *PointBvh) AppendTo(buf []byte) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(b.Nodes)))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(b.Points)))
	for _, n := range b.Nodes {
		buf = n.appendTo(buf)
	}
	for _, p := range b.Points {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(p.X))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(p.Y))
	}
	return buf
}

// NearestDistance returns the great-circle distance from pos to the closest
// point in the BVH, traversing near children first. Returns false when the
// BVH is empty.
func (b *PointBvh) NearestDistance(pos geo.Position) (geo.Centimeters, bool) {
	if len(b.Points) == 0 {
		return 0, false
	}
	best := geo.Centimeters(1<<31 - 1)
	b.nearest(0, pos, &best)
	return best, true
}

func (b *PointBvh) nearest(node uint32, pos geo.Position, best *geo.Centimeters) {
	n := b.Nodes[node]
	if boxDistance(n, pos) >= *best {
		return
	}
	if n.Count > 0 {
		for _, p := range b.Points[n.LeftFirst : n.LeftFirst+n.Count] {
			if d := geo.DistanceScaled(pos, p); d < *best {
				*best = d
			}
		}
		return
	}
	// Visit the nearer child first so the far child prunes more often.
	left, right := n.LeftFirst, n.RightChild
	if boxDistance(b.Nodes[right], pos) < boxDistance(b.Nodes[left], pos) {
		left, right = right, left
	}
	b.nearest(left, pos, best)
	b.nearest(right, pos, best)
}

// boxDistance is a lower bound on the distance from pos to any point inside
// the node bounds: the great-circle distance to the clamped position.
func boxDistance(n BvhNode, pos geo.Position) geo.Centimeters {
	clamped := geo.Position{
		X: min(max(pos.X, n.MinLon), n.MaxLon),
		Y: min(max(pos.Y, n.MinLat), n.MaxLat),
	}
	if clamped == pos {
		return 0
	}
	return geo.DistanceScaled(pos, clamped)
}
