package generators

import (
	"zebra/internal/ir"
	"zebra/internal/program"
	"zebra/internal/types"
)

// JITFunction defines a function, then calls it inside a hot loop (and once
// more afterward) to give the target engine's JIT a chance to compile and
// deoptimize it mid-fuzz.
func JITFunction(p *program.Program) bool {
	FunctionDefinition(p)

	fn, ok := p.RandomVariableOfType(types.Function, program.ModeStrict)
	if !ok {
		return false
	}
	if !p.GetType(fn).IsFunction() {
		return false
	}

	sig := p.GetSignatureFor(fn)
	if sig.IsConstructing() {
		return false
	}

	inputs := p.GenerateFunctionArgs(fn)

	start := p.LoadInt(0)
	end := p.LoadInt(p.RNG.RandInRange(0, 0x500))
	step := p.LoadInt(1)

	p.BeginFor(start, end, step, "++", ir.LessThan)
	p.GenerateRandomInsts(2, BasicGenerators, Generators)
	p.FunctionCall(fn, inputs)
	p.EndFor()
	p.GenerateRandomInsts(2, BasicGenerators, Generators)

	inputs = p.GenerateFunctionArgs(fn)
	p.FunctionCall(fn, inputs)

	return true
}
