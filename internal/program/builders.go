package program

import (
	"zebra/internal/ir"
	"zebra/internal/jsruntime"
	"zebra/internal/rng"
	"zebra/internal/types"
)

func one(v ir.Variable) []ir.Variable { return []ir.Variable{v} }

func (p *Program) Nop() {
	p.insert(&ir.Operation{Op: ir.Nop}, nil)
}

func (p *Program) LoadInt(v int64) ir.Variable {
	out := p.insert(&ir.Operation{Op: ir.LoadInt, IntVal: v}, nil)
	return out[0]
}

func (p *Program) LoadFloat(v float64) ir.Variable {
	out := p.insert(&ir.Operation{Op: ir.LoadFloat, FloatVal: v}, nil)
	return out[0]
}

func (p *Program) LoadBool(v bool) ir.Variable {
	out := p.insert(&ir.Operation{Op: ir.LoadBool, BoolVal: v}, nil)
	return out[0]
}

func (p *Program) LoadString(v string) ir.Variable {
	out := p.insert(&ir.Operation{Op: ir.LoadString, StringVal: v}, nil)
	return out[0]
}

func (p *Program) LoadUndefined() ir.Variable {
	out := p.insert(&ir.Operation{Op: ir.LoadUndefined}, nil)
	return out[0]
}

// Copy emits `dst = src`. dst is both the instruction's input and where the
// type analyzer writes the widened type, matching the original's aliasing
// of Copy's first input as an assignment target.
func (p *Program) Copy(dst, src ir.Variable) {
	p.insert(&ir.Operation{Op: ir.Copy}, []ir.Variable{dst, src})
}

func (p *Program) BeginIf(cond ir.Variable) {
	p.insert(&ir.Operation{Op: ir.BeginIf}, one(cond))
}

func (p *Program) EndIf() {
	p.insert(&ir.Operation{Op: ir.EndIf}, nil)
}

func (p *Program) BeginElse() {
	p.insert(&ir.Operation{Op: ir.BeginElse}, nil)
}

// BeginFor emits a `for` loop header: `for (var tmp = start; tmp cmp end; tmp
// stepOp)`. step is only bound for scope/type purposes; the lifter doesn't
// use it in the emitted increment text, matching the original. Returns the
// loop counter variable, visible as a temp in the loop's own scope.
func (p *Program) BeginFor(start, end, step ir.Variable, stepOp string, cmp ir.Comparator) ir.Variable {
	op := &ir.Operation{Op: ir.BeginFor, ForStep: stepOp, Comparator: cmp}
	p.insert(op, []ir.Variable{start, end, step})
	return p.Buffer[len(p.Buffer)-1].Temp[0]
}

func (p *Program) EndFor() {
	p.insert(&ir.Operation{Op: ir.EndFor}, nil)
}

func (p *Program) InsertBreak() {
	p.insert(&ir.Operation{Op: ir.Break}, nil)
}

func (p *Program) InsertContinue() {
	p.insert(&ir.Operation{Op: ir.Continue}, nil)
}

func (p *Program) BinaryOp(lhs, rhs ir.Variable, op ir.BinaryOperator) ir.Variable {
	out := p.insert(&ir.Operation{Op: ir.BinaryOp, BinaryOperator: op}, []ir.Variable{lhs, rhs})
	return out[0]
}

func (p *Program) CompareOp(lhs, rhs ir.Variable, c ir.Comparator) ir.Variable {
	out := p.insert(&ir.Operation{Op: ir.CompareOp, Comparator: c}, []ir.Variable{lhs, rhs})
	return out[0]
}

func (p *Program) UnaryOp(v ir.Variable, op ir.UnaryOperator) ir.Variable {
	out := p.insert(&ir.Operation{Op: ir.UnaryOp, UnaryOperator: op}, one(v))
	return out[0]
}

// BeginFunctionDefinition opens a function body with numArgs parameters,
// returning the function's own variable and its parameter variables (in the
// new, inner scope).
func (p *Program) BeginFunctionDefinition(numArgs uint8) (ir.Variable, []ir.Variable) {
	sig := types.NewFunctionSignature(numArgs)
	op := &ir.Operation{Op: ir.BeginFunctionDefinition, FunctionSignature: sig}
	out := p.insert(op, nil)
	return out[0], p.Buffer[len(p.Buffer)-1].Temp
}

func (p *Program) EndFunctionDefinition() {
	p.insert(&ir.Operation{Op: ir.EndFunctionDefinition}, nil)
}

func (p *Program) InsertReturn(v ir.Variable) {
	p.insert(&ir.Operation{Op: ir.Return}, one(v))
}

// FunctionCall emits a call to fn with args.
func (p *Program) FunctionCall(fn ir.Variable, args []ir.Variable) ir.Variable {
	op := &ir.Operation{Op: ir.FunctionCall, ArgCount: uint8(len(args))}
	inputs := append([]ir.Variable{fn}, args...)
	out := p.insert(op, inputs)
	return out[0]
}

// CreateArray emits `[elems...]`.
func (p *Program) CreateArray(elems []ir.Variable) ir.Variable {
	op := &ir.Operation{Op: ir.CreateArray, ArgCount: uint8(len(elems))}
	out := p.insert(op, elems)
	return out[0]
}

func (p *Program) LoadElement(array, index ir.Variable) ir.Variable {
	out := p.insert(&ir.Operation{Op: ir.LoadElement}, []ir.Variable{array, index})
	return out[0]
}

func (p *Program) StoreElement(array, index, value ir.Variable) {
	p.insert(&ir.Operation{Op: ir.StoreElement}, []ir.Variable{array, index, value})
}

// MethodCall emits `receiver.name(args...)`. inputs[0] is the receiver;
// the rest are the call arguments, typically produced by
// GenerateMethodArgs(sig, &receiver).
func (p *Program) MethodCall(inputs []ir.Variable, sig types.MethodSignature) ir.Variable {
	op := &ir.Operation{Op: ir.MethodCall, MethodSignature: &sig, ArgCount: uint8(len(inputs) - 1)}
	out := p.insert(op, inputs)
	return out[0]
}

func (p *Program) LoadProperty(obj ir.Variable, name string) ir.Variable {
	op := &ir.Operation{Op: ir.LoadProperty, StringVal: name}
	out := p.insert(op, one(obj))
	return out[0]
}

func (p *Program) StoreProperty(obj ir.Variable, name string, value ir.Variable) {
	op := &ir.Operation{Op: ir.StoreProperty, StringVal: name}
	p.insert(op, []ir.Variable{obj, value})
}

// CreateObject emits `{name: value, ...}` in input/propertyNames order.
func (p *Program) CreateObject(propertyNames []string, values []ir.Variable) ir.Variable {
	op := &ir.Operation{Op: ir.CreateObject, PropertyNames: propertyNames}
	out := p.insert(op, values)
	return out[0]
}

func (p *Program) DeleteProperty(obj, prop ir.Variable, indexed bool) {
	op := &ir.Operation{Op: ir.Delete, BoolVal: indexed}
	p.insert(op, []ir.Variable{obj, prop})
}

// typedArrayStaticType is the NonCallable "this" type shared by every
// typed-array static namespace object (e.g. bare `Int32Array` used as
// `Int32Array.of(...)`, before a concrete name is substituted in).
var typedArrayStaticType = types.Obj(types.ShapeStatic | types.ShapeTypedArray)

// LoadBuiltin emits a reference to a registered constructor. When the
// constructor's declared output/this type is the generic TypedArray shape,
// the name is first solidified to a concrete typed array name drawn from
// jsruntime.TypedArrayNames (e.g. "Int32Array"), matching both the
// Callable (`new Int32Array(...)`) and NonCallable (bare namespace) forms.
// args is nil for a NonCallable constructor reference, non-nil (possibly
// empty) for a Callable one.
func (p *Program) LoadBuiltin(ctor types.ConstructorType, args []ir.Variable) ir.Variable {
	if ctor.IsCallable() && ctor.Callable.OutputType() == types.TypedArray {
		name := rng.RandomElement(p.RNG, jsruntime.TypedArrayNames)
		renamed := *types.NewMethodSignature(name, ctor.Callable.ThisType(), ctor.Callable.InputTypes(), ctor.Callable.OutputType())
		ctor = types.NewCallableConstructor(&renamed)
	}
	if ctor.IsNonCallable() && ctor.NonCallable.Type == typedArrayStaticType {
		name := rng.RandomElement(p.RNG, jsruntime.TypedArrayNames)
		ctor = types.NewNonCallableConstructor(name, ctor.NonCallable.Type)
	}

	if args == nil {
		out := p.insert(&ir.Operation{Op: ir.LoadBuiltin, Constructor: ctor}, nil)
		return out[0]
	}

	op := &ir.Operation{Op: ir.LoadBuiltin, Constructor: ctor, ArgCount: uint8(len(args))}
	out := p.insert(op, args)
	return out[0]
}
