package generators

import "zebra/internal/program"

// BasicGenerators bootstraps a program that has no visible variables yet:
// chosen via a geometric bias (factor 1.2) rather than the weighted table.
var BasicGenerators = []program.Generator{
	UndefinedLiteral,
	StringLiteral,
	BoolLiteral,
	FloatLiteral,
	IntegerLiteral,
}

// Generators is the full weighted-biased registry GenerateRandomInsts walks
// once a program has at least one visible variable. Weights are relative,
// not probabilities: the table is walked in order and a higher weight
// raises a generator's chance of being picked. A generator that bails does
// not count, and GenerateRandomInsts draws again from the whole table.
var Generators = []program.WeightedGenerator{
	{Fn: CreateObject, Weight: 30},
	{Fn: JITFunction, Weight: 30},
	{Fn: LoadBuiltin, Weight: 50},
	{Fn: MethodCall, Weight: 35},
	{Fn: StoreProperty, Weight: 45},
	{Fn: LoadProperty, Weight: 30},
	{Fn: FunctionCall, Weight: 40},
	{Fn: LoadElement, Weight: 30},
	{Fn: IntArray, Weight: 30},
	{Fn: IfCondition, Weight: 10},
	{Fn: BinaryOp, Weight: 30},
	{Fn: ForLoop, Weight: 15},
	{Fn: StoreElement, Weight: 40},
	{Fn: UnaryOp, Weight: 30},
	{Fn: CompareOp, Weight: 30},
	{Fn: DeleteProperty, Weight: 30},
	{Fn: FunctionReturn, Weight: 10},
	{Fn: FunctionDefinition, Weight: 30},
	{Fn: FloatArray, Weight: 30},
	{Fn: EmptyLoop, Weight: 20},
	{Fn: Nop, Weight: 1},
	{Fn: Copy, Weight: 1},
	{Fn: Break, Weight: 5},
	{Fn: Continue, Weight: 5},
	{Fn: IntegerLiteral, Weight: 5},
	{Fn: FloatLiteral, Weight: 1},
	{Fn: StringLiteral, Weight: 1},
	{Fn: BoolLiteral, Weight: 1},
	{Fn: UndefinedLiteral, Weight: 1},
}
