package shaderbuild

import "github.com/roobscoob/jet-lag-core/shape"

// computeHeader is the section header the shader compiler expects ahead of
// compute source.
const computeHeader = "#shader compute\n#version 430\n"

// InvocX is the workgroup size the template declares in its
// local_size_x layout; dispatch must divide work accordingly.
const InvocX = 32

// BuildComputeSource specializes the shader template for an instruction
// stream: the composed fragments followed by the synthesized evaluate_sdf
// routine, ready for submission to the shader compiler. Specialization is
// deterministic; a composition or emission failure indicates a malformed
// stream or template and is not recoverable at runtime.
func BuildComputeSource(stream []shape.Instruction) (string, error) {
	composed, err := ComposeTemplate()
	if err != nil {
		return "", err
	}
	fn, err := EmitEvaluateSDF(stream)
	if err != nil {
		return "", err
	}
	return computeHeader + composed + "\n" + RenderGLSL(fn), nil
}
