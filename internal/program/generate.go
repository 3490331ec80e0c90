package program

import (
	"zebra/internal/ir"
	"zebra/internal/rng"
	"zebra/internal/types"
)

func chooseBiasedGenerator(p *Program, basic []Generator) Generator {
	return rng.ChooseBiased(p.Prob, basic, basicBiasFactor)
}

func chooseWeightedGenerator(p *Program, weighted []WeightedGenerator) Generator {
	choices := make([]rng.WeightedChoice[Generator], len(weighted))
	for i, w := range weighted {
		choices[i] = rng.WeightedChoice[Generator]{Value: w.Fn, Weight: w.Weight}
	}
	return rng.ChooseWeightedBiased(p.Prob, choices)
}

// basicBiasFactor biases GenerateRandomInsts's bootstrap pass toward the
// end of the basic-generator table (a ChooseBiased factor above 1), mirroring the weight the original
// gives its small literal-only generator set.
const basicBiasFactor = 1.2

// GenerateRandomInsts appends count successfully-generated pieces of code
// to the program, drawn from weighted. If no variable is visible yet, it
// first bootstraps the program with 3 generators from basic (so later
// generators that need an existing variable have something to work with).
func (p *Program) GenerateRandomInsts(count uint8, basic []Generator, weighted []WeightedGenerator) {
	if len(p.ScopeAnalyzer.GetVisibleVariables()) == 0 {
		for i := 0; i < 3; i++ {
			gen := chooseBiasedGenerator(p, basic)
			gen(p)
		}
	}

	var produced uint8
	for produced < count {
		gen := chooseWeightedGenerator(p, weighted)
		if gen(p) {
			produced++
		}
	}
}

// GenerateFunctionArgs builds one random argument per parameter of
// function's signature, honoring each parameter's inferred type.
func (p *Program) GenerateFunctionArgs(function ir.Variable) []ir.Variable {
	sig := p.GetSignatureFor(function)
	inputTypes := sig.InputTypes()

	inputs := make([]ir.Variable, 0, len(inputTypes))
	for _, t := range inputTypes {
		inputs = append(inputs, p.RandomVariable(t))
	}
	return inputs
}

// GenerateMethodArgs builds the argument list for a method call: this
// (whenever it is non-nil, including the receiver of a static call) followed by
// one argument per parameter slot, honoring Plain/Optional/Repeat arities.
func (p *Program) GenerateMethodArgs(method types.MethodSignature, this *ir.Variable) []ir.Variable {
	inputs := make([]ir.Variable, 0, method.MinArgsCount()+1)

	if this != nil {
		inputs = append(inputs, *this)
	}

	for i := 0; i < method.MinArgsCount(); i++ {
		arg := method.InputTypeAt(i)

		switch arg.Kind {
		case types.ArgPlain:
			inputs = append(inputs, p.RandomVariable(arg.Type))

		case types.ArgOptional:
			if !p.Prob.Satisfies(0.5) {
				continue
			}
			inputs = append(inputs, p.RandomVariable(arg.Type))

		case types.ArgRepeat:
			cnt := p.RNG.RandIdx(int(arg.Repeat))
			if cnt == 0 {
				continue
			}
			for j := 0; j < cnt-1; j++ {
				inputs = append(inputs, p.RandomVariable(arg.Type))
			}
			inputs = append(inputs, p.RandomVariable(arg.Type))
		}
	}

	return inputs
}
