package types

// FunctionSignature records the shape of a user-defined function: its
// arity, inferred input/output types, and whether it is still being built
// (is_constructing) while the program builder is emitting its body.
type FunctionSignature struct {
	numInputs      uint8
	inputTypes     []Type
	isConstructing bool
	outputType     Type
}

// NewFunctionSignature allocates a signature for a function with numInputs
// parameters, all initially Unknown.
func NewFunctionSignature(numInputs uint8) *FunctionSignature {
	inputs := make([]Type, numInputs)
	for i := range inputs {
		inputs[i] = Default()
	}
	return &FunctionSignature{
		numInputs:      numInputs,
		inputTypes:     inputs,
		isConstructing: true,
		outputType:     Default(),
	}
}

func (f *FunctionSignature) IsConstructing() bool { return f.isConstructing }
func (f *FunctionSignature) ArgsCount() uint8      { return f.numInputs }

// SetOutputType merges ptype into the accumulated output type and replaces
// the shape, matching how repeated `return` statements widen a function's
// inferred result.
func (f *FunctionSignature) SetOutputType(outputType Type) {
	f.outputType.PType |= outputType.PType
	f.outputType.Shape = outputType.Shape
}

func (f *FunctionSignature) OutputType() Type { return f.outputType }

func (f *FunctionSignature) SetIsConstructing() { f.isConstructing = true }
func (f *FunctionSignature) DoneConstructing()  { f.isConstructing = false }

// SetInputTypeAt overwrites a single parameter's inferred type.
func (f *FunctionSignature) SetInputTypeAt(idx int, itype Type) {
	f.inputTypes[idx] = itype
}

// SetInputTypes replaces all parameter types at once. Panics if the count
// does not match the signature's arity.
func (f *FunctionSignature) SetInputTypes(inputTypes []Type) {
	if len(inputTypes) != int(f.numInputs) {
		panic("incorrect num of input types for signature")
	}
	f.inputTypes = inputTypes
}

func (f *FunctionSignature) InputTypes() []Type { return f.inputTypes }

// ConstructorType is either a Callable constructor (invoked with `new`) or
// a NonCallable static namespace object (Math, Reflect) that only exposes a
// name and type.
type ConstructorType struct {
	Callable    *MethodSignature
	NonCallable *NonCallableConstructor
}

// NonCallableConstructor names a static namespace object's binding and type.
type NonCallableConstructor struct {
	Name string
	Type Type
}

func NewCallableConstructor(sig *MethodSignature) ConstructorType {
	return ConstructorType{Callable: sig}
}

func NewNonCallableConstructor(name string, t Type) ConstructorType {
	return ConstructorType{NonCallable: &NonCallableConstructor{Name: name, Type: t}}
}

func (c ConstructorType) IsCallable() bool    { return c.Callable != nil }
func (c ConstructorType) IsNonCallable() bool { return c.NonCallable != nil }

// MethodArgKind distinguishes a method's plain, optional, and variadic
// parameter slots.
type MethodArgKind int

const (
	ArgPlain MethodArgKind = iota
	ArgOptional
	ArgRepeat
)

// MethodArg is one parameter slot of a MethodSignature. Repeat carries the
// number of times Type is expected to repeat.
type MethodArg struct {
	Kind   MethodArgKind
	Type   Type
	Repeat uint8
}

func PlainArg(t Type) MethodArg    { return MethodArg{Kind: ArgPlain, Type: t} }
func OptionalArg(t Type) MethodArg { return MethodArg{Kind: ArgOptional, Type: t} }
func RepeatArg(n uint8, t Type) MethodArg {
	return MethodArg{Kind: ArgRepeat, Type: t, Repeat: n}
}

// MethodSignature describes a callable method on some `this` type: its
// name, receiver type, parameter slots, and output type.
type MethodSignature struct {
	name       string
	thisType   Type
	inputTypes []MethodArg
	outputType Type
}

// NewMethodSignature builds a method signature.
func NewMethodSignature(name string, thisType Type, inputTypes []MethodArg, outputType Type) *MethodSignature {
	return &MethodSignature{
		name:       name,
		thisType:   thisType,
		inputTypes: inputTypes,
		outputType: outputType,
	}
}

func (m *MethodSignature) SetName(name string) { m.name = name }

// SetOutputType merges ptype into the accumulated output type.
func (m *MethodSignature) SetOutputType(outputType Type) {
	m.outputType.PType |= outputType.PType
	m.outputType.Shape = outputType.Shape
}

// MinArgsCount returns the number of parameter slots. Optional and repeat
// slots can make the actual argument count lower or higher, so the exact
// count is only knowable at generation time.
func (m *MethodSignature) MinArgsCount() int { return len(m.inputTypes) }

func (m *MethodSignature) OutputType() Type             { return m.outputType }
func (m *MethodSignature) ThisType() Type                { return m.thisType }
func (m *MethodSignature) InputTypeAt(idx int) MethodArg { return m.inputTypes[idx] }
func (m *MethodSignature) InputTypes() []MethodArg       { return m.inputTypes }
func (m *MethodSignature) Name() string                  { return m.name }
