package analysis

import (
	"fmt"

	"zebra/internal/ir"
	"zebra/internal/types"
)

// funcFrame is pushed at BeginFunctionDefinition and popped at
// EndFunctionDefinition: the function's own variable plus its parameter
// temporaries, and the accumulated return type widened by every Return seen
// inside the body.
type funcFrame struct {
	vars       []ir.Variable
	outputType types.Type
}

// TypeAnalyzer infers and propagates types across the instructions the
// program builder emits, per opcode, per §4.3's rules.
type TypeAnalyzer struct {
	typeMap      map[uint32]types.Type
	functionStack []funcFrame
	signatureMap map[uint32]*types.FunctionSignature
}

// NewTypeAnalyzer returns an analyzer with no known variables.
func NewTypeAnalyzer() *TypeAnalyzer {
	return &TypeAnalyzer{
		typeMap:      make(map[uint32]types.Type),
		signatureMap: make(map[uint32]*types.FunctionSignature),
	}
}

// SetType merges varType into whatever is already known about variable,
// replacing the shape when the new type carries one.
func (t *TypeAnalyzer) SetType(variable ir.Variable, varType types.Type) {
	if cur, ok := t.typeMap[uint32(variable)]; ok {
		cur.PType |= varType.PType
		if varType.Shape != types.ShapeNone {
			cur.Shape = varType.Shape
		}
		t.typeMap[uint32(variable)] = cur
		return
	}
	t.typeMap[uint32(variable)] = varType
}

// GetType returns the currently known type of variable. Panics if the
// variable has never been typed — a program-builder invariant violation.
func (t *TypeAnalyzer) GetType(variable ir.Variable) types.Type {
	vtype, ok := t.typeMap[uint32(variable)]
	if !ok {
		panic(fmt.Sprintf("variable %s not found in type map", variable.Print()))
	}
	return vtype
}

// GetSignatureFor returns the signature registered for a function variable.
func (t *TypeAnalyzer) GetSignatureFor(fn ir.Variable) *types.FunctionSignature {
	return t.signatureMap[uint32(fn)]
}

func (t *TypeAnalyzer) setIfUnknown(v ir.Variable, fallback types.Type) {
	if t.GetType(v).IsUnknown() {
		t.SetType(v, fallback)
	}
}

// Analyze applies the per-opcode inference rule for inst, updating the
// type map (and, for function definitions, the signature map and function
// stack) in place.
func (t *TypeAnalyzer) Analyze(inst *ir.Instruction) {
	op := inst.Operation

	switch op.Op {
	case ir.Nop, ir.EndIf, ir.Continue, ir.Break, ir.BeginElse, ir.EndFor:
		// No output produced; nothing to type.

	case ir.LoadInt:
		t.SetType(inst.OutputAt(0), types.Int)
	case ir.LoadFloat:
		t.SetType(inst.OutputAt(0), types.Float)
	case ir.LoadBool:
		t.SetType(inst.OutputAt(0), types.Bool)
	case ir.LoadString:
		t.SetType(inst.OutputAt(0), types.String)
	case ir.LoadUndefined:
		t.SetType(inst.OutputAt(0), types.Undefined)

	case ir.BeginIf:
		arg := inst.InputAt(0)
		t.setIfUnknown(arg, types.Bool.Or(types.Unknown))

	case ir.Copy:
		v := t.GetType(inst.InputAt(1))
		t.SetType(inst.InputAt(0), v)

	case ir.BeginFor:
		t.SetType(inst.TempAt(0), types.Int.Or(types.Float).Or(types.Bool))

	case ir.BinaryOp:
		t.analyzeBinaryOp(inst)

	case ir.UnaryOp:
		t.analyzeUnaryOp(inst)

	case ir.CompareOp:
		lhs, rhs := inst.InputAt(0), inst.InputAt(1)
		t.setIfUnknown(lhs, types.Int.Or(types.Unknown))
		t.setIfUnknown(rhs, types.Int.Or(types.Unknown))
		t.SetType(inst.OutputAt(0), types.Bool)

	case ir.BeginFunctionDefinition:
		t.analyzeBeginFunctionDefinition(inst)

	case ir.EndFunctionDefinition:
		t.analyzeEndFunctionDefinition(inst)

	case ir.Return:
		outputType := t.GetType(inst.InputAt(0))
		top := len(t.functionStack) - 1
		t.functionStack[top].outputType = t.functionStack[top].outputType.Or(outputType)

	case ir.FunctionCall:
		funcVar := inst.InputAt(0)
		sig := t.signatureMap[uint32(funcVar)]
		t.SetType(inst.OutputAt(0), sig.OutputType())

	case ir.CreateArray:
		t.SetType(inst.OutputAt(0), types.Array)

	case ir.LoadElement:
		input, idx := inst.InputAt(0), inst.InputAt(1)
		t.setIfUnknown(input, types.Array)
		t.setIfUnknown(idx, types.Int)
		t.SetType(inst.OutputAt(0), types.Int.Or(types.Float).Or(types.Object))

	case ir.StoreElement:
		array, index, value := inst.InputAt(0), inst.InputAt(1), inst.InputAt(2)
		t.setIfUnknown(array, types.Array)
		t.setIfUnknown(index, types.Int)
		if t.GetType(value).IsUnknown() {
			// Mirrors the original source exactly: the element-value branch
			// widens the array's type, not the value's.
			t.SetType(array, types.Int.Or(types.Float).Or(types.Object))
		}

	case ir.MethodCall:
		t.analyzeMethodCall(inst)

	case ir.LoadProperty:
		input := inst.InputAt(0)
		t.setIfUnknown(input, types.Object)
		t.SetType(inst.OutputAt(0), types.Float.Or(types.Int).Or(types.Object))

	case ir.StoreProperty:
		input, value := inst.InputAt(0), inst.InputAt(1)
		t.setIfUnknown(input, types.Object)
		if t.GetType(value).IsUnknown() {
			t.SetType(input, types.Float.Or(types.Int).Or(types.Object))
		}

	case ir.LoadBuiltin:
		var otype types.Type
		if op.Constructor.IsCallable() {
			otype = op.Constructor.Callable.OutputType()
		} else {
			otype = op.Constructor.NonCallable.Type
		}
		t.SetType(inst.OutputAt(0), otype)

	case ir.CreateObject:
		t.SetType(inst.OutputAt(0), types.Type{PType: types.PObject, Shape: types.ShapeCustom})

	case ir.Delete:
		object, prop := inst.InputAt(0), inst.InputAt(1)
		isIndexedProp := op.BoolVal
		if isIndexedProp {
			t.setIfUnknown(prop, types.Int)
		}
		t.setIfUnknown(object, types.Type{PType: types.PObject, Shape: types.ShapeCustom})

	default:
		panic(fmt.Sprintf("unimplemented type analysis for opcode %s", op.Op))
	}
}

func (t *TypeAnalyzer) analyzeBinaryOp(inst *ir.Instruction) {
	lhs, rhs := inst.InputAt(0), inst.InputAt(1)
	t.setIfUnknown(lhs, types.Int.Or(types.Unknown))
	t.setIfUnknown(rhs, types.Int.Or(types.Unknown))

	lhsType, rhsType := t.GetType(lhs), t.GetType(rhs)
	output := inst.OutputAt(0)

	switch inst.Operation.BinaryOperator {
	case ir.Add:
		switch {
		case lhsType.IsNumeric() && rhsType.IsNumeric() && lhsType.IsInteger() && rhsType.IsInteger():
			t.SetType(output, types.Int)
		case lhsType.IsNumeric() && rhsType.IsNumeric():
			t.SetType(output, types.Float)
		default:
			t.SetType(output, types.String)
		}
	case ir.Sub, ir.Mul:
		if lhsType.IsInteger() && rhsType.IsInteger() {
			t.SetType(output, types.Int)
		} else {
			t.SetType(output, types.Float)
		}
	case ir.Div:
		t.SetType(output, types.Float)
	case ir.Mod:
		t.SetType(output, types.Int)
	case ir.BitAnd, ir.BitOr, ir.Xor, ir.LShift, ir.RShift:
		t.SetType(output, types.Int)
	case ir.LogicAnd, ir.LogicOr:
		t.SetType(output, types.Bool)
	}
}

func (t *TypeAnalyzer) analyzeUnaryOp(inst *ir.Instruction) {
	lhs := inst.InputAt(0)
	t.setIfUnknown(lhs, types.Int.Or(types.Unknown))

	output := inst.OutputAt(0)
	inputType := t.GetType(lhs)

	switch inst.Operation.UnaryOperator {
	case ir.Inc, ir.Dec, ir.BitwiseNot:
		if inputType.IsInt() || inputType.IsBool() {
			t.SetType(output, types.Int)
		} else {
			t.SetType(output, types.Float)
		}
	case ir.LogicalNot:
		t.SetType(output, types.Bool)
	}
}

func (t *TypeAnalyzer) analyzeBeginFunctionDefinition(inst *ir.Instruction) {
	outputVar := inst.OutputAt(0)

	inputs := make([]ir.Variable, len(inst.Temp))
	copy(inputs, inst.Temp)
	for _, v := range inputs {
		t.SetType(v, types.Unknown)
	}
	inputs = append([]ir.Variable{outputVar}, inputs...)

	sig := inst.Operation.FunctionSignature
	sig.SetIsConstructing()

	t.functionStack = append(t.functionStack, funcFrame{
		vars:       inputs,
		outputType: sig.OutputType(),
	})
	t.signatureMap[uint32(outputVar)] = sig

	t.SetType(outputVar, types.Function)
}

func (t *TypeAnalyzer) analyzeEndFunctionDefinition(inst *ir.Instruction) {
	top := len(t.functionStack) - 1
	frame := t.functionStack[top]
	t.functionStack = t.functionStack[:top]

	funcName := frame.vars[0]
	funcVars := frame.vars[1:]

	inputTypes := make([]types.Type, 0, len(funcVars))
	for _, v := range funcVars {
		inputTypes = append(inputTypes, t.GetType(v))
	}

	sig := t.signatureMap[uint32(funcName)]
	sig.SetOutputType(frame.outputType)
	sig.SetInputTypes(inputTypes)
	sig.DoneConstructing()
}

func (t *TypeAnalyzer) analyzeMethodCall(inst *ir.Instruction) {
	sig := inst.Operation.MethodSignature
	output := inst.OutputAt(0)

	for idx, inp := range inst.Inputs[1:] {
		if !t.GetType(inp).IsUnknown() {
			continue
		}
		argIdx := idx % sig.MinArgsCount()
		arg := sig.InputTypeAt(argIdx)
		t.SetType(inp, arg.Type)
	}

	t.SetType(output, sig.OutputType())
}
