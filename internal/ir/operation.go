package ir

import "zebra/internal/types"

// Attributes flags the structural role of an opcode for the analyzers:
// whether it opens/closes a lexical block, a loop, or a function, and
// whether it is a primitive literal load.
type Attributes uint8

const (
	AttrNone            Attributes = 0
	AttrIsBlockStart    Attributes = 1 << 0
	AttrIsBlockEnd      Attributes = 1 << 1
	AttrIsLoopStart     Attributes = AttrIsBlockStart | 1<<2
	AttrIsLoopEnd       Attributes = AttrIsBlockEnd | 1<<3
	AttrIsPrimitive     Attributes = 1 << 4
	AttrIsFunctionStart Attributes = AttrIsBlockStart | 1<<5
	AttrIsFunctionEnd   Attributes = AttrIsBlockEnd | 1<<6
)

// Operation carries an instruction's opcode plus whatever typed payload
// that opcode needs. Only the fields relevant to Op are populated; this
// mirrors the "one struct, several purpose-specific fields" shape the
// teacher uses for heterogeneous per-instruction state, generalized from
// the original's per-opcode struct + trait-object design since Go has no
// cheap equivalent of downcasting a boxed trait object.
type Operation struct {
	Op Op

	IntVal    int64
	FloatVal  float64
	StringVal string
	BoolVal   bool

	BinaryOperator BinaryOperator
	UnaryOperator  UnaryOperator
	Comparator     Comparator

	// BeginFor
	ForStep string

	// BeginFunctionDefinition
	FunctionSignature *types.FunctionSignature

	// FunctionCall: number of argument inputs, excluding the callee.
	ArgCount uint8

	// MethodCall
	MethodSignature *types.MethodSignature

	// LoadBuiltin
	Constructor types.ConstructorType

	// CreateObject: property names, in input order.
	PropertyNames []string
}

// Op is an alias kept distinct from Opcode so Operation.Op reads naturally;
// the two are the same underlying type.
type Op = Opcode

var opAttributes = map[Opcode]Attributes{
	Nop:                     AttrNone,
	LoadInt:                 AttrIsPrimitive,
	LoadFloat:               AttrIsPrimitive,
	LoadString:              AttrIsPrimitive,
	LoadUndefined:           AttrIsPrimitive,
	LoadBool:                AttrIsPrimitive,
	Copy:                    AttrNone,
	BeginIf:                 AttrIsBlockStart,
	EndIf:                   AttrIsBlockEnd,
	BeginElse:               AttrIsBlockStart | AttrIsBlockEnd,
	BeginFor:                AttrIsLoopStart,
	EndFor:                  AttrIsLoopEnd,
	Break:                   AttrNone,
	Continue:                AttrNone,
	BinaryOp:                AttrNone,
	UnaryOp:                 AttrNone,
	CompareOp:               AttrNone,
	BeginFunctionDefinition: AttrIsFunctionStart,
	EndFunctionDefinition:   AttrIsFunctionEnd,
	Return:                  AttrNone,
	FunctionCall:            AttrNone,
	CreateArray:             AttrNone,
	LoadElement:             AttrNone,
	StoreElement:            AttrNone,
	MethodCall:              AttrNone,
	LoadProperty:            AttrNone,
	StoreProperty:           AttrNone,
	LoadBuiltin:             AttrNone,
	CreateObject:            AttrNone,
	Delete:                  AttrNone,
}

// Attributes returns the structural flags for this operation's opcode.
func (o *Operation) Attributes() Attributes {
	return opAttributes[o.Op]
}

// NumInputs returns how many input Variables this operation consumes. Most
// opcodes have a fixed arity; a handful are variadic based on payload.
func (o *Operation) NumInputs() uint8 {
	switch o.Op {
	case LoadInt, LoadFloat, LoadBool, LoadString, LoadUndefined, Nop,
		EndIf, BeginElse, EndFor, Break, Continue, EndFunctionDefinition:
		return 0
	case BeginIf:
		return 1
	case Copy:
		return 2
	case BeginFor:
		return 3
	case BinaryOp, CompareOp, Delete:
		return 2
	case UnaryOp, LoadProperty, Return:
		return 1
	case StoreProperty, LoadElement:
		return 2
	case StoreElement:
		return 3
	case FunctionCall:
		return o.ArgCount + 1
	case CreateArray:
		return o.ArgCount
	case MethodCall:
		return o.ArgCount + 1
	case LoadBuiltin:
		return o.ArgCount
	case CreateObject:
		return uint8(len(o.PropertyNames))
	default:
		return 0
	}
}

// NumOutputs returns how many output Variables this operation produces.
func (o *Operation) NumOutputs() uint8 {
	switch o.Op {
	case LoadInt, LoadFloat, LoadBool, LoadString, LoadUndefined,
		BinaryOp, UnaryOp, CompareOp, LoadProperty, FunctionCall,
		CreateArray, LoadElement, MethodCall, LoadBuiltin, CreateObject,
		BeginFunctionDefinition:
		return 1
	default:
		return 0
	}
}

// NumTemp returns how many scratch Variables this operation needs (loop
// counters, function parameter bindings).
func (o *Operation) NumTemp() uint8 {
	switch o.Op {
	case BeginFor:
		return 1
	case BeginFunctionDefinition:
		if o.FunctionSignature != nil {
			return o.FunctionSignature.ArgsCount()
		}
		return 0
	default:
		return 0
	}
}

func (o *Operation) IsLoopStart() bool {
	return o.Attributes()&AttrIsLoopStart == AttrIsLoopStart
}

func (o *Operation) IsLoopEnd() bool {
	return o.Attributes()&AttrIsLoopEnd == AttrIsLoopEnd
}

func (o *Operation) IsBlockStart() bool {
	return o.Attributes()&AttrIsBlockStart == AttrIsBlockStart
}

func (o *Operation) IsBlockEnd() bool {
	return o.Attributes()&AttrIsBlockEnd == AttrIsBlockEnd
}

func (o *Operation) IsFunctionStart() bool {
	return o.Attributes()&AttrIsFunctionStart == AttrIsFunctionStart
}

func (o *Operation) IsFunctionEnd() bool {
	return o.Attributes()&AttrIsFunctionEnd == AttrIsFunctionEnd
}

func (o *Operation) IsPrimitive() bool {
	return o.Attributes()&AttrIsPrimitive == AttrIsPrimitive
}
