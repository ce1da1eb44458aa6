package shaderbuild

import (
	"fmt"

	"github.com/roobscoob/jet-lag-core/shape"
)

// Function argument indices of evaluate_sdf.
const (
	argSample = 0
	argIdx    = 1
)

// RoutineResult is what each per-operator routine reports back: the local
// variable now holding the instruction's value and how many packed-buffer
// argument handles the operator consumes at kernel runtime.
type RoutineResult struct {
	ArgumentLen int
	Variable    LocalHandle
}

// EmitEvaluateSDF synthesizes the evaluate_sdf IR function for the
// instruction stream. Every routine follows the three-phase contract:
// pointer expressions for the input locals first, then the value
// expressions closed under one Emit statement, then a Store into a fresh
// result local.
func EmitEvaluateSDF(stream []shape.Instruction) (*Function, error) {
	if err := shape.ValidateStream(stream); err != nil {
		return nil, err
	}
	if len(stream) == 0 {
		return nil, errEmptyStream
	}
	fn := &Function{
		Name:   "evaluate_sdf",
		Return: "int",
		Params: []Param{
			{Name: "sample_pos", Type: "ivec2"},
			{Name: "idx", Type: "inout int"},
		},
	}
	registerMap := make(map[shape.Register]LocalHandle, len(stream))
	for _, inst := range stream {
		res, err := emitRoutine(fn, inst, registerMap)
		if err != nil {
			return nil, err
		}
		if res.ArgumentLen != inst.ArgumentLen() {
			return nil, fmt.Errorf("%s routine consumed %d argument handles, stream packs %d",
				inst.Op, res.ArgumentLen, inst.ArgumentLen())
		}
		registerMap[inst.Output] = res.Variable
	}

	// Load the final register and return it.
	last := registerMap[stream[len(stream)-1].Output]
	ptr := fn.AppendExpression(Expression{Kind: ExprLocalVariable, Local: last})
	start := fn.ExprLen()
	load := fn.AppendExpression(Expression{Kind: ExprLoad, Pointer: ptr})
	fn.PushEmit(start)
	fn.Push(Statement{Kind: StmtReturn, Value: load})

	if err := fn.Validate(); err != nil {
		return nil, fmt.Errorf("emitted evaluate_sdf is malformed: %w", err)
	}
	return fn, nil
}

var errEmptyStream = fmt.Errorf("empty instruction stream")

func emitRoutine(fn *Function, inst shape.Instruction, registerMap map[shape.Register]LocalHandle) (RoutineResult, error) {
	switch inst.Op {
	case shape.OpEdge:
		return emitUnaryMath(fn, inst, registerMap, MathAbs), nil
	case shape.OpInvert:
		return emitUnaryMath(fn, inst, registerMap, MathNegate), nil
	case shape.OpSubtract:
		return emitSubtract(fn, inst, registerMap), nil
	case shape.OpUnion:
		return emitMinMaxTree(fn, inst, registerMap, MathMin), nil
	case shape.OpIntersection:
		return emitMinMaxTree(fn, inst, registerMap, MathMax), nil
	case shape.OpDilate:
		return emitDilate(fn, inst, registerMap), nil
	case shape.OpBoundary:
		return emitBoundary(fn, inst, registerMap), nil
	case shape.OpPoint, shape.OpPointCloud, shape.OpGeodesic, shape.OpLoadVdg, shape.OpContourTexture:
		return emitPrimitive(fn, inst), nil
	}
	return RoutineResult{}, fmt.Errorf("no routine for op %d", inst.Op)
}

// storeResult creates the result local for the instruction, stores value
// into it and returns its handle.
func storeResult(fn *Function, inst shape.Instruction, value ExprHandle) LocalHandle {
	result := fn.AddLocal(fmt.Sprintf("r%d__%s_distance", inst.Output, inst.Op), "int")
	ptr := fn.AppendExpression(Expression{Kind: ExprLocalVariable, Local: result})
	fn.Push(Statement{Kind: StmtStore, Pointer: ptr, Value: value})
	return result
}

func inputPtr(fn *Function, registerMap map[shape.Register]LocalHandle, r shape.Register) ExprHandle {
	return fn.AppendExpression(Expression{Kind: ExprLocalVariable, Local: registerMap[r]})
}

func emitUnaryMath(fn *Function, inst shape.Instruction, registerMap map[shape.Register]LocalHandle, fun MathFun) RoutineResult {
	ptr := inputPtr(fn, registerMap, inst.A)
	start := fn.ExprLen()
	load := fn.AppendExpression(Expression{Kind: ExprLoad, Pointer: ptr})
	value := fn.AppendExpression(Expression{Kind: ExprMath, Fun: fun, A: load})
	fn.PushEmit(start)
	return RoutineResult{Variable: storeResult(fn, inst, value)}
}

func emitSubtract(fn *Function, inst shape.Instruction, registerMap map[shape.Register]LocalHandle) RoutineResult {
	aPtr := inputPtr(fn, registerMap, inst.A)
	bPtr := inputPtr(fn, registerMap, inst.B)
	start := fn.ExprLen()
	a := fn.AppendExpression(Expression{Kind: ExprLoad, Pointer: aPtr})
	b := fn.AppendExpression(Expression{Kind: ExprLoad, Pointer: bPtr})
	negB := fn.AppendExpression(Expression{Kind: ExprMath, Fun: MathNegate, A: b})
	value := fn.AppendExpression(Expression{Kind: ExprMath, Fun: MathMax, A: a, B: negB})
	fn.PushEmit(start)
	return RoutineResult{Variable: storeResult(fn, inst, value)}
}

// emitMinMaxTree builds a balanced binary tree over the input loads,
// splitting at len/2 and recursing left then right.
func emitMinMaxTree(fn *Function, inst shape.Instruction, registerMap map[shape.Register]LocalHandle, fun MathFun) RoutineResult {
	ptrs := make([]ExprHandle, len(inst.Inputs))
	for i, r := range inst.Inputs {
		ptrs[i] = inputPtr(fn, registerMap, r)
	}
	start := fn.ExprLen()
	value := buildTree(fn, ptrs, fun)
	fn.PushEmit(start)
	return RoutineResult{Variable: storeResult(fn, inst, value)}
}

func buildTree(fn *Function, ptrs []ExprHandle, fun MathFun) ExprHandle {
	if len(ptrs) == 1 {
		return fn.AppendExpression(Expression{Kind: ExprLoad, Pointer: ptrs[0]})
	}
	mid := len(ptrs) / 2
	left := buildTree(fn, ptrs[:mid], fun)
	right := buildTree(fn, ptrs[mid:], fun)
	return fn.AppendExpression(Expression{Kind: ExprMath, Fun: fun, A: left, B: right})
}

func emitDilate(fn *Function, inst shape.Instruction, registerMap map[shape.Register]LocalHandle) RoutineResult {
	ptr := inputPtr(fn, registerMap, inst.A)
	start := fn.ExprLen()
	load := fn.AppendExpression(Expression{Kind: ExprLoad, Pointer: ptr})
	fn.PushEmit(start)

	sample := fn.AppendExpression(Expression{Kind: ExprFunctionArgument, Arg: argSample})
	idx := fn.AppendExpression(Expression{Kind: ExprFunctionArgument, Arg: argIdx})
	result := fn.AppendExpression(Expression{Kind: ExprCallResult})
	fn.Push(Statement{
		Kind:     StmtCall,
		Function: "dilate",
		Args:     []ExprHandle{load, sample, idx},
		Result:   result,
	})
	return RoutineResult{ArgumentLen: 1, Variable: storeResult(fn, inst, result)}
}

func emitBoundary(fn *Function, inst shape.Instruction, registerMap map[shape.Register]LocalHandle) RoutineResult {
	aPtr := inputPtr(fn, registerMap, inst.A)
	bPtr := inputPtr(fn, registerMap, inst.B)
	start := fn.ExprLen()
	a := fn.AppendExpression(Expression{Kind: ExprLoad, Pointer: aPtr})
	b := fn.AppendExpression(Expression{Kind: ExprLoad, Pointer: bPtr})
	fn.PushEmit(start)

	policy := fn.AppendExpression(Expression{Kind: ExprLiteral, Literal: int32(inst.Policy)})
	result := fn.AppendExpression(Expression{Kind: ExprCallResult})
	fn.Push(Statement{
		Kind:     StmtCall,
		Function: "boundary",
		Args:     []ExprHandle{a, b, policy},
		Result:   result,
	})
	return RoutineResult{Variable: storeResult(fn, inst, result)}
}

// emitPrimitive calls the namesake shader function; the routine locates its
// parameters in the packed argument buffer through idx.
func emitPrimitive(fn *Function, inst shape.Instruction) RoutineResult {
	sample := fn.AppendExpression(Expression{Kind: ExprFunctionArgument, Arg: argSample})
	idx := fn.AppendExpression(Expression{Kind: ExprFunctionArgument, Arg: argIdx})
	result := fn.AppendExpression(Expression{Kind: ExprCallResult})
	fn.Push(Statement{
		Kind:     StmtCall,
		Function: inst.Op.String(),
		Args:     []ExprHandle{sample, idx},
		Result:   result,
	})
	return RoutineResult{ArgumentLen: inst.ArgumentLen(), Variable: storeResult(fn, inst, result)}
}
