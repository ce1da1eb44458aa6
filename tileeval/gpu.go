//go:build !tinygo && cgo

package tileeval

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/soypat/glgl/v4.6-core/glgl"

	"github.com/roobscoob/jet-lag-core/geo"
	"github.com/roobscoob/jet-lag-core/shaderbuild"
	"github.com/roobscoob/jet-lag-core/shape"
	"github.com/roobscoob/jet-lag-core/tile"
)

// Platform owns the GL context the GPU evaluator runs against. It must be
// created and used on the same OS thread; callers lock the goroutine with
// runtime.LockOSThread before acquiring it.
type Platform struct {
	terminate func()
}

// NewPlatform acquires a 1x1 hidden-window GL context.
func NewPlatform() (*Platform, error) {
	_, terminate, err := glgl.InitWithCurrentWindow33(glgl.WindowConfig{
		Title:   "tile-eval",
		Version: [2]int{4, 6},
		Width:   1,
		Height:  1,
	})
	if err != nil {
		return nil, err
	}
	return &Platform{terminate: terminate}, nil
}

// Terminate releases the GL context.
func (p *Platform) Terminate() {
	p.terminate()
}

// PollEvents pumps the hidden window's event queue. Long-lived evaluators
// call it between dispatches; some window systems stall the context when
// events back up.
func (p *Platform) PollEvents() {
	glfw.PollEvents()
}

// ValidateSource compiles the composed shader source, reporting syntax and
// link errors without dispatching anything.
func ValidateSource(p *Platform, source string) error {
	combined, err := glgl.ParseCombined(strings.NewReader(source))
	if err != nil {
		return err
	}
	prog, err := glgl.CompileProgram(combined)
	if err != nil {
		return err
	}
	prog.Delete()
	return nil
}

// ComputeConfig configures the GPU evaluator.
type ComputeConfig struct {
	// InvocX is the workgroup size declared by the shader template.
	// Zero selects the template default.
	InvocX int
}

// Evaluator dispatches a compiled SDF kernel over tiles. One evaluator
// corresponds to one compilation session's shader module and argument
// buffer.
type Evaluator struct {
	prog    glgl.Program
	handles []shape.ShaderArgument
	args    []byte
	invocX  int
	evals   uint64
}

// NewEvaluator compiles the instruction stream's specialized shader and
// packs its argument buffers. The platform's context must be current.
func NewEvaluator(p *Platform, stream []shape.Instruction, cfg ComputeConfig) (*Evaluator, error) {
	if p == nil {
		return nil, errors.New("nil platform")
	}
	source, err := shaderbuild.BuildComputeSource(stream)
	if err != nil {
		return nil, err
	}
	combined, err := glgl.ParseCombined(strings.NewReader(source))
	if err != nil {
		return nil, err
	}
	prog, err := glgl.CompileProgram(combined)
	if err != nil {
		return nil, errors.New(string(combined.Compute) + "\n" + err.Error())
	}
	var packer shape.ArgumentPacker
	handles := packer.PackStream(stream)
	invocX := cfg.InvocX
	if invocX == 0 {
		invocX = shaderbuild.InvocX
	}
	return &Evaluator{
		prog:    prog,
		handles: handles,
		args:    packer.Bytes(),
		invocX:  invocX,
	}, nil
}

// Evaluations returns total samples evaluated during the evaluator's
// lifetime.
func (e *Evaluator) Evaluations() uint64 { return e.evals }

// Delete releases the GL program.
func (e *Evaluator) Delete() { e.prog.Delete() }

// Evaluate dispatches one workgroup slice per tile row batch and reads the
// mask back. Transient device loss is retried once; a cancelled context
// discards the output and leaves the program and argument buffers intact.
func (e *Evaluator) Evaluate(ctx context.Context, t tile.Tile) (*Mask, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	mask, err := e.evaluate(ctx, t)
	if err != nil && isDeviceLost(err) {
		mask, err = e.evaluate(ctx, t)
	}
	if err != nil && !errors.Is(err, context.Canceled) && !isDeviceLost(err) {
		return nil, fmt.Errorf("tile evaluation failed: %w", err)
	}
	return mask, err
}

func (e *Evaluator) evaluate(ctx context.Context, t tile.Tile) (*Mask, error) {
	e.prog.Bind()
	defer e.prog.Unbind()
	if err := glgl.Err(); err != nil {
		return nil, fmt.Errorf("binding tile evaluator program: %w", err)
	}

	samples := t.Samples()
	pos := make([]int32, 0, 2*len(samples))
	for _, s := range samples {
		pos = append(pos, s.X, s.Y)
	}
	handleWords := make([]int32, 0, 2*len(e.handles))
	for _, h := range e.handles {
		handleWords = append(handleWords, int32(h.Offset), int32(h.Length))
	}
	if len(handleWords) == 0 {
		handleWords = []int32{0, 0}
	}
	payload := e.args
	if len(payload) == 0 {
		payload = make([]byte, 4)
	}

	var p runtime.Pinner
	var posSSBO, distSSBO, handleSSBO, payloadSSBO uint32
	p.Pin(&posSSBO)
	p.Pin(&distSSBO)
	p.Pin(&handleSSBO)
	p.Pin(&payloadSSBO)
	defer p.Unpin()

	posSSBO = loadSSBO(pos, 0, gl.STATIC_DRAW)
	if posSSBO == 0 {
		return nil, glErrOrMessage("zero SSBO id loading sample positions")
	}
	defer gl.DeleteBuffers(1, &posSSBO)

	distSSBO = createSSBO(4*len(samples), 1, gl.DYNAMIC_READ)
	if distSSBO == 0 {
		return nil, glErrOrMessage("zero SSBO id creating distance buffer")
	}
	defer gl.DeleteBuffers(1, &distSSBO)

	handleSSBO = loadSSBO(handleWords, 2, gl.STATIC_DRAW)
	if handleSSBO == 0 {
		return nil, glErrOrMessage("zero SSBO id loading argument handles")
	}
	defer gl.DeleteBuffers(1, &handleSSBO)

	payloadSSBO = loadSSBO(payload, 3, gl.STATIC_DRAW)
	if payloadSSBO == 0 {
		return nil, glErrOrMessage("zero SSBO id loading argument payload")
	}
	defer gl.DeleteBuffers(1, &payloadSSBO)

	nWorkX := (len(samples) + e.invocX - 1) / e.invocX
	gl.DispatchCompute(uint32(nWorkX), 1, 1)
	if err := glgl.Err(); err != nil {
		return nil, err
	}
	gl.MemoryBarrier(gl.SHADER_STORAGE_BARRIER_BIT)
	if err := ctx.Err(); err != nil {
		// The dispatch result is discarded without mapping it back.
		return nil, err
	}
	dist := make([]geo.Centimeters, len(samples))
	if err := copySSBO(dist, distSSBO); err != nil {
		return nil, err
	}
	e.evals += uint64(len(samples))
	return maskFromDistances(t.Width, t.Height, dist), nil
}

// isDeviceLost classifies transient context-loss errors worth one retry.
func isDeviceLost(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "context lost") || strings.Contains(msg, "device lost")
}

func elemSize[T any]() int {
	var z T
	return int(unsafe.Sizeof(z))
}

func loadSSBO[T any](slice []T, base, usage uint32) (ssbo uint32) {
	var p runtime.Pinner
	p.Pin(&ssbo)
	gl.GenBuffers(1, &ssbo)
	p.Unpin()
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, ssbo)
	size := len(slice) * elemSize[T]()
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, size, unsafe.Pointer(&slice[0]), usage)
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, base, ssbo)
	return ssbo
}

func createSSBO(size int, base, usage uint32) (ssbo uint32) {
	gl.GenBuffers(1, &ssbo)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, ssbo)
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, size, nil, usage)
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, base, ssbo)
	return ssbo
}

func copySSBO[T any](dst []T, ssbo uint32) error {
	singleSize := elemSize[T]()
	bufSize := singleSize * len(dst)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, ssbo)
	ptr := gl.MapBufferRange(gl.SHADER_STORAGE_BUFFER, 0, bufSize, gl.MAP_READ_BIT)
	if ptr == nil {
		return glErrOrMessage("failed to map SSBO buffer during copy")
	}
	defer gl.UnmapBuffer(gl.SHADER_STORAGE_BUFFER)
	gpuBytes := unsafe.Slice((*byte)(ptr), bufSize)
	bufBytes := unsafe.Slice((*byte)(unsafe.Pointer(&dst[0])), bufSize)
	copy(bufBytes, gpuBytes)
	return glgl.Err()
}

func glErrOrMessage(defaultMsg string) (err error) {
	err = glgl.Err()
	if err == nil {
		err = errors.New(defaultMsg)
	} else {
		err = fmt.Errorf("%s: %w", defaultMsg, err)
	}
	return err
}
