package generators

import (
	"zebra/internal/ir"
	"zebra/internal/program"
	"zebra/internal/types"
)

// repeatedArray builds a size-element array by repeating a single variable,
// matching the original's choice to favor reusing one existing value over
// minting size distinct ones (keeps generated arrays homogeneous, which
// matters for JIT type-specialization coverage).
func repeatedArray(v ir.Variable, size int) []ir.Variable {
	out := make([]ir.Variable, size)
	for i := range out {
		out[i] = v
	}
	return out
}

func IntArray(p *program.Program) bool {
	size := p.RNG.RandIdx(30)

	variable, ok := p.RandomVariableOfType(types.Int, program.ModeStrict)
	if !ok {
		variable = p.LoadInt(p.GetInt())
	}

	p.CreateArray(repeatedArray(variable, size))
	return true
}

func FloatArray(p *program.Program) bool {
	size := p.RNG.RandIdx(30)

	variable, ok := p.RandomVariableOfType(types.Float, program.ModeStrict)
	if !ok {
		variable = p.LoadFloat(p.GetFloat())
	}

	p.CreateArray(repeatedArray(variable, size))
	return true
}

func LoadElement(p *program.Program) bool {
	array, ok := p.RandomVariableOfType(types.Array.Or(types.Unknown).Or(types.String), program.ModeStrict)
	if !ok {
		return false
	}

	var idx ir.Variable
	if p.Prob.Satisfies(0.7) {
		idx = p.RandomVariable(types.Int)
	} else {
		idx = p.LoadInt(p.GetInt())
	}

	p.LoadElement(array, idx)
	return true
}

func StoreElement(p *program.Program) bool {
	array, ok := p.RandomVariableOfType(types.Array, program.ModeStrict)
	if !ok {
		return false
	}

	var idx ir.Variable
	if p.Prob.Satisfies(0.7) {
		idx = p.RandomVariable(types.Int)
	} else {
		idx = p.LoadInt(p.GetInt())
	}

	value := p.RandomVariable(types.Any)
	p.StoreElement(array, idx, value)
	return true
}
