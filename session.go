// Package jetlag is the engine core of a location-based hide-and-seek
// game: it compiles question answers into signed distance fields over
// geographic coordinates and specializes a compute shader that rasterizes
// them into map-tile masks.
package jetlag

import (
	"errors"

	"github.com/roobscoob/jet-lag-core/shape"
	"github.com/roobscoob/jet-lag-core/shaderbuild"
)

// Session is one compilation session: it owns one shape compiler, one
// argument buffer and one shader module under construction. Registers and
// argument offsets are meaningless outside the session that produced them.
// A session is single-use and not safe for concurrent use.
type Session struct {
	compiler *shape.Compiler
	done     bool
}

// NewSession returns a fresh compilation session.
func NewSession() *Session {
	return &Session{compiler: shape.NewCompiler()}
}

var errSessionUsed = errors.New("compilation session already consumed")

// Compiled is the output of a session: the instruction stream, the
// specialized compute shader source and the packed argument buffers the
// tile evaluator binds.
type Compiled struct {
	Stream    []shape.Instruction
	Source    string
	Arguments []byte
	Handles   []shape.ShaderArgument
}

// Compile lowers the shape, specializes the shader template for its
// instruction stream and packs the argument buffer. Shape construction
// errors accumulated by the compiler surface here.
func (s *Session) Compile(sh shape.Shape) (*Compiled, error) {
	if s.done {
		return nil, errSessionUsed
	}
	s.done = true
	s.compiler.With(sh)
	if err := s.compiler.Err(); err != nil {
		return nil, err
	}
	stream := s.compiler.Instructions()
	source, err := shaderbuild.BuildComputeSource(stream)
	if err != nil {
		return nil, err
	}
	var packer shape.ArgumentPacker
	handles := packer.PackStream(stream)
	return &Compiled{
		Stream:    stream,
		Source:    source,
		Arguments: packer.Bytes(),
		Handles:   handles,
	}, nil
}
