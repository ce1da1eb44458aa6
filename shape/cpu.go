package shape

import (
	"errors"

	"github.com/roobscoob/jet-lag-core/geo"
)

// maxDistance stands in for "no geometry anywhere": primitives over empty
// data evaluate to it so unions and dilations stay well defined.
const maxDistance = geo.Centimeters(1<<31 - 1)

var (
	errEmptyStream          = errors.New("empty instruction stream")
	errMismatchBufferLength = errors.New("position and distance buffer length mismatch")
)

// CPUEvaluator interprets an SDF instruction stream on the CPU with the
// same semantics the synthesized compute kernel has. It backs the fallback
// tile evaluator and makes compiled shapes testable without a GPU.
type CPUEvaluator struct {
	stream []Instruction
	regs   []geo.Centimeters
}

// NewCPUEvaluator validates the stream's SSA invariants and returns an
// evaluator over it.
func NewCPUEvaluator(stream []Instruction) (*CPUEvaluator, error) {
	if len(stream) == 0 {
		return nil, errEmptyStream
	}
	if err := ValidateStream(stream); err != nil {
		return nil, err
	}
	return &CPUEvaluator{
		stream: stream,
		regs:   make([]geo.Centimeters, len(stream)),
	}, nil
}

// Stream returns the instruction stream the evaluator interprets.
func (e *CPUEvaluator) Stream() []Instruction {
	return e.stream
}

// Evaluate evaluates the signed distance field over pos positions. dist and
// pos must be of same length; resulting distances are stored in dist.
func (e *CPUEvaluator) Evaluate(pos []geo.Position, dist []geo.Centimeters) error {
	if len(pos) != len(dist) {
		return errMismatchBufferLength
	}
	for i, p := range pos {
		dist[i] = e.evaluateAt(p)
	}
	return nil
}

// EvaluateAt evaluates the field at a single position.
func (e *CPUEvaluator) EvaluateAt(pos geo.Position) geo.Centimeters {
	return e.evaluateAt(pos)
}

func (e *CPUEvaluator) evaluateAt(pos geo.Position) geo.Centimeters {
	regs := e.regs
	for _, inst := range e.stream {
		var v geo.Centimeters
		switch inst.Op {
		case OpPoint:
			v = geo.DistanceScaled(pos, inst.Position)
		case OpPointCloud:
			var ok bool
			v, ok = inst.Bvh.NearestDistance(pos)
			if !ok {
				v = maxDistance
			}
		case OpGeodesic:
			v = geodesicDistance(pos, inst.Path)
		case OpLoadVdg:
			v = inst.Diagram.SignedDistance(pos)
		case OpContourTexture:
			v = geo.Centimeters(inst.Texture.Sample(pos)) - inst.Amount
		case OpEdge:
			v = regs[inst.A]
			if v < 0 {
				v = -v
			}
		case OpInvert:
			v = -regs[inst.A]
		case OpDilate:
			v = satSub(regs[inst.A], inst.Amount)
		case OpUnion:
			v = regs[inst.Inputs[0]]
			for _, r := range inst.Inputs[1:] {
				v = min(v, regs[r])
			}
		case OpIntersection:
			v = regs[inst.Inputs[0]]
			for _, r := range inst.Inputs[1:] {
				v = max(v, regs[r])
			}
		case OpSubtract:
			v = max(regs[inst.A], -regs[inst.B])
		case OpBoundary:
			v = boundaryDistance(regs[inst.A], regs[inst.B], inst.Policy)
		}
		regs[inst.Output] = v
	}
	return regs[e.stream[len(e.stream)-1].Output]
}

// satSub subtracts without wrapping past the int32 minimum, so dilating a
// far-away primitive cannot flip sign.
func satSub(a, b geo.Centimeters) geo.Centimeters {
	d := int64(a) - int64(b)
	if d < -(1<<31 - 1) {
		return -maxDistance
	}
	return geo.Centimeters(d)
}

// boundaryDistance is the bisector field between two distance fields:
// negative where inside is the closer one. The policy decides which side
// owns exact ties.
func boundaryDistance(inside, outside geo.Centimeters, policy BoundaryOverlapResolution) geo.Centimeters {
	v := geo.Centimeters((int64(inside) - int64(outside)) / 2)
	if v == 0 && policy == BoundaryInside {
		return -1
	}
	return v
}

// geodesicDistance is the minimum distance from pos to the polyline's
// great-circle segments, measured in a local equirectangular frame.
func geodesicDistance(pos geo.Position, path []geo.Position) geo.Centimeters {
	if len(path) == 0 {
		return maxDistance
	}
	if len(path) == 1 {
		return geo.DistanceScaled(pos, path[0])
	}
	best := maxDistance
	for i := 0; i+1 < len(path); i++ {
		a := localFrame(pos, path[i])
		b := localFrame(pos, path[i+1])
		// Vec{} is pos in its own frame.
		if d := geo.Centimeters(segmentDistance(vecZero, a, b)); d < best {
			best = d
		}
	}
	return best
}
