// Package shape holds the SDF expression layer: an instruction stream over
// SSA registers, the compiler that assembles it from shape values, the
// point BVH and argument packing for GPU consumption, and a CPU
// interpreter with identical semantics.
package shape

import (
	"errors"
	"fmt"

	"github.com/roobscoob/jet-lag-core/geo"
)

// Shape is a value that can lower itself into an instruction stream.
type Shape interface {
	// BuildInto appends the shape's instructions to the compiler and
	// returns the register holding its distance field.
	BuildInto(c *Compiler) Register
}

// Compiler assembles an SDF instruction stream. Registers are allocated
// monotonically and are valid only for this compiler instance. Construction
// errors accumulate and surface through [Compiler.Err]; instructions built
// after an error still allocate registers so streams stay well formed.
type Compiler struct {
	instructions []Instruction
	next         Register
	accumErrs    []error
}

// NewCompiler returns an empty compiler.
func NewCompiler() *Compiler {
	return &Compiler{}
}

// Instructions returns the assembled stream. The slice is owned by the
// compiler; callers must not append to it.
func (c *Compiler) Instructions() []Instruction {
	return c.instructions
}

// Err returns errors accumulated during shape construction. The returned
// error implements `Unwrap() []error`.
func (c *Compiler) Err() error {
	if len(c.accumErrs) == 0 {
		return nil
	}
	return errors.Join(c.accumErrs...)
}

// ClearErrors clears accumulated errors such that [Compiler.Err] returns nil
// on next call.
func (c *Compiler) ClearErrors() {
	c.accumErrs = c.accumErrs[:0]
}

func (c *Compiler) errorf(msg string, args ...any) {
	c.accumErrs = append(c.accumErrs, fmt.Errorf(msg, args...))
}

func (c *Compiler) push(inst Instruction) Register {
	out := c.next
	c.next++
	inst.Output = out
	c.instructions = append(c.instructions, inst)
	return out
}

func (c *Compiler) checkInput(op Op, r Register) {
	if r >= c.next {
		c.errorf("%s reads register %d before assignment", op, r)
	}
}

// With dispatches to the shape's BuildInto.
func (c *Compiler) With(s Shape) Register {
	return s.BuildInto(c)
}

// Point emits the great-circle distance field around pos.
func (c *Compiler) Point(pos geo.Point) Register {
	p := pos.Position()
	if !p.Valid() {
		c.errorf("point position out of range: %v", pos)
	}
	return c.push(Instruction{Op: OpPoint, Position: p})
}

// PointCloud builds a BVH over the points and emits its minimum-distance
// field.
func (c *Compiler) PointCloud(points []geo.Point) Register {
	return c.push(Instruction{Op: OpPointCloud, Bvh: BuildBvh(points)})
}

// GeodesicString emits the distance field of a great-circle polyline.
func (c *Compiler) GeodesicString(path []geo.Point) Register {
	if len(path) < 2 {
		c.errorf("geodesic path needs at least two positions, got %d", len(path))
	}
	scaled := make([]geo.Position, len(path))
	for i, p := range path {
		scaled[i] = p.Position()
	}
	return c.push(Instruction{Op: OpGeodesic, Path: scaled})
}

// WithVdg emits the signed distance field of a polygon-set Voronoi diagram.
func (c *Compiler) WithVdg(d *VoronoiDiagram) Register {
	return c.push(Instruction{Op: OpLoadVdg, Diagram: d})
}

// WithContourTexture emits `tex(p) - zero` over a raster scalar field.
func (c *Compiler) WithContourTexture(t *ContourTexture, zero geo.Centimeters) Register {
	return c.push(Instruction{Op: OpContourTexture, Texture: t, Amount: zero})
}

// Edge emits the absolute value of r, the distance to r's zero boundary.
func (c *Compiler) Edge(r Register) Register {
	c.checkInput(OpEdge, r)
	return c.push(Instruction{Op: OpEdge, A: r})
}

// Invert emits the negation of r.
func (c *Compiler) Invert(r Register) Register {
	c.checkInput(OpInvert, r)
	return c.push(Instruction{Op: OpInvert, A: r})
}

// Dilate emits `r - amount`, growing the negative region by amount.
// The amount must be non-negative.
func (c *Compiler) Dilate(r Register, amount geo.Centimeters) Register {
	c.checkInput(OpDilate, r)
	if amount < 0 {
		c.errorf("dilate amount must be non-negative, got %d", amount)
	}
	return c.push(Instruction{Op: OpDilate, A: r, Amount: amount})
}

// Union emits the minimum over the inputs. Empty input is an error.
func (c *Compiler) Union(rs []Register) Register {
	if len(rs) == 0 {
		c.errorf("union of zero shapes")
	}
	for _, r := range rs {
		c.checkInput(OpUnion, r)
	}
	return c.push(Instruction{Op: OpUnion, Inputs: rs})
}

// Intersection emits the maximum over the inputs. Empty input is an error.
func (c *Compiler) Intersection(rs []Register) Register {
	if len(rs) == 0 {
		c.errorf("intersection of zero shapes")
	}
	for _, r := range rs {
		c.checkInput(OpIntersection, r)
	}
	return c.push(Instruction{Op: OpIntersection, Inputs: rs})
}

// Subtract emits `max(a, -b)`, removing b's negative region from a's.
func (c *Compiler) Subtract(a, b Register) Register {
	c.checkInput(OpSubtract, a)
	c.checkInput(OpSubtract, b)
	return c.push(Instruction{Op: OpSubtract, A: a, B: b})
}

// Boundary emits the region closer to inside than to outside; the policy
// decides which operand owns the shared boundary.
func (c *Compiler) Boundary(inside, outside Register, policy BoundaryOverlapResolution) Register {
	c.checkInput(OpBoundary, inside)
	c.checkInput(OpBoundary, outside)
	return c.push(Instruction{Op: OpBoundary, A: inside, B: outside, Policy: policy})
}

// ValidateStream checks the SSA invariants of an instruction stream: every
// output assigned exactly once and in order, every input assigned earlier,
// non-empty union/intersection lists and non-negative dilation amounts.
func ValidateStream(stream []Instruction) error {
	var inputs []Register
	for i, inst := range stream {
		if inst.Output != Register(i) {
			return fmt.Errorf("instruction %d assigns register %d out of order", i, inst.Output)
		}
		inputs = inst.inputs(inputs[:0])
		for _, r := range inputs {
			if r >= inst.Output {
				return fmt.Errorf("instruction %d reads register %d before assignment", i, r)
			}
		}
		switch inst.Op {
		case OpUnion, OpIntersection:
			if len(inst.Inputs) == 0 {
				return fmt.Errorf("instruction %d: empty %s", i, inst.Op)
			}
		case OpDilate:
			if inst.Amount < 0 {
				return fmt.Errorf("instruction %d: negative dilate amount %d", i, inst.Amount)
			}
		}
	}
	return nil
}
