package generators

import (
	"zebra/internal/program"
	"zebra/internal/types"
)

// FunctionDefinition builds a function with a random arity (0-4 params), a
// random body, and a return, then generates one more random instruction
// and calls it once. Building a function up front and calling it soon after
// is what gives later
// generators something to recurse into without a separate "use this
// function later" bookkeeping pass.
func FunctionDefinition(p *program.Program) bool {
	argsCount := uint8(p.RNG.RandInRange(0, 5))

	fn, _ := p.BeginFunctionDefinition(argsCount)
	p.GenerateRandomInsts(3, BasicGenerators, Generators)
	ret := p.RandomVariable(types.Any)
	p.InsertReturn(ret)
	p.EndFunctionDefinition()

	p.GenerateRandomInsts(1, BasicGenerators, Generators)

	inputs := p.GenerateFunctionArgs(fn)
	p.FunctionCall(fn, inputs)

	return true
}

// FunctionCall calls a previously defined, fully-built function. Bails if
// no function variable is visible, or (90% of the time) if the chosen
// function is still mid-definition (calling a function from inside its
// own body would recurse into incomplete state).
func FunctionCall(p *program.Program) bool {
	fn, ok := p.RandomVariableOfType(types.Function, program.ModeStrict)
	if !ok {
		return false
	}
	if !p.GetType(fn).IsFunction() {
		return false
	}

	sig := p.GetSignatureFor(fn)
	if sig.IsConstructing() && p.Prob.Satisfies(0.9) {
		return false
	}

	inputs := p.GenerateFunctionArgs(fn)
	p.FunctionCall(fn, inputs)
	return true
}

// FunctionReturn emits a `return` only when currently inside a function
// body; a bare return at the top level isn't valid JS.
func FunctionReturn(p *program.Program) bool {
	if !p.IsInFunction() {
		return false
	}
	r := p.RandomVariable(types.Any)
	p.InsertReturn(r)
	return true
}
