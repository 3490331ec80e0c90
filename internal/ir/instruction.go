package ir

import "fmt"

// Value holds the literal carried by a primitive-load instruction.
type Value struct {
	Kind ValueKind
	Int  int64
	Flt  float64
	Str  string
	Bool bool
}

type ValueKind int

const (
	ValueNone ValueKind = iota
	ValueInt
	ValueFloat
	ValueStr
	ValueBool
	ValueUndefined
)

// Instruction is one IR instruction: an Operation plus the Variables it
// reads (Inputs), writes (Outputs), and uses as scratch space (Temp).
type Instruction struct {
	Idx       uint32
	Operation *Operation
	Inputs    []Variable
	Outputs   []Variable
	Temp      []Variable
}

// New builds an Instruction, panicking if the input count doesn't match
// what the operation declares it needs — a program-builder bug, not a
// runtime condition.
func New(idx uint32, operation *Operation, inputs, outputs, temp []Variable) *Instruction {
	if uint8(len(inputs)) != operation.NumInputs() {
		panic(fmt.Sprintf("incorrect no. of inputs provided for %s: expected %d, got %d",
			operation.Op, operation.NumInputs(), len(inputs)))
	}

	return &Instruction{
		Idx:       idx,
		Operation: operation,
		Inputs:    inputs,
		Outputs:   outputs,
		Temp:      temp,
	}
}

// GetVal extracts the literal value out of a primitive-load instruction.
// Panics if called on a non-primitive opcode.
func (i *Instruction) GetVal() Value {
	if !i.Operation.IsPrimitive() {
		panic(fmt.Sprintf("invalid opcode %s passed to GetVal()", i.Operation.Op))
	}

	switch i.Operation.Op {
	case LoadInt:
		return Value{Kind: ValueInt, Int: i.Operation.IntVal}
	case LoadFloat:
		return Value{Kind: ValueFloat, Flt: i.Operation.FloatVal}
	case LoadBool:
		return Value{Kind: ValueBool, Bool: i.Operation.BoolVal}
	case LoadString:
		return Value{Kind: ValueStr, Str: i.Operation.StringVal}
	case LoadUndefined:
		return Value{Kind: ValueUndefined}
	default:
		panic("unreachable branch in GetVal")
	}
}

func (i *Instruction) InputAt(idx int) Variable  { return i.Inputs[idx] }
func (i *Instruction) OutputAt(idx int) Variable { return i.Outputs[idx] }
func (i *Instruction) TempAt(idx int) Variable   { return i.Temp[idx] }
