// Package program implements the in-memory IR program under construction:
// instruction insertion (which drives the three analyzers), variable
// selection, and the typed opcode-builder methods the code generators call.
package program

import (
	"zebra/internal/analysis"
	"zebra/internal/ir"
	"zebra/internal/jsruntime"
	"zebra/internal/rng"
	"zebra/internal/types"
)

// Mode controls how strict RandomVariableOfType is about honoring the
// requested type.
type Mode int

const (
	// ModeFree treats rtype as a hint: Unknown-typed variables also match,
	// and if nothing matches at all, any visible variable is returned.
	ModeFree Mode = iota
	// ModeStrict requires a variable whose type contains rtype (see
	// types.Type.Contains), returning false if none exists.
	ModeStrict
)

// Generator is a code-generator strategy: given a program, try to append
// one piece of code to it, reporting whether it succeeded. Generators live
// in the sibling `generators` package to avoid a cyclic import; Program only
// knows their shape.
type Generator func(*Program) bool

// WeightedGenerator pairs a Generator with its selection weight for
// GenerateRandomInsts's weighted-biased walk.
type WeightedGenerator struct {
	Fn     Generator
	Weight uint16
}

// Program is the IR program being built for one fuzzing iteration.
type Program struct {
	Buffer   []*ir.Instruction
	NumInstr uint32

	ContextAnalyzer *analysis.ContextAnalyzer
	ScopeAnalyzer   *analysis.ScopeAnalyzer
	TypeAnalyzer    *analysis.TypeAnalyzer

	nextFreeVariableID uint32

	JSRuntime *jsruntime.JSRuntime

	seenInts    []int64
	seenFloats  []float64
	seenStrings []string

	RNG  *rng.Random
	Prob *rng.Probability
}

// New creates an empty program sharing the given runtime catalogue and
// seeded RNG.
func New(runtime *jsruntime.JSRuntime, seed uint64) *Program {
	r := rng.New(seed)
	return &Program{
		ContextAnalyzer: analysis.NewContextAnalyzer(),
		ScopeAnalyzer:   analysis.NewScopeAnalyzer(),
		TypeAnalyzer:    analysis.NewTypeAnalyzer(),
		JSRuntime:       runtime,
		RNG:             r,
		Prob:            rng.NewProbability(r),
	}
}

func (p *Program) nextFreeVariable() ir.Variable {
	id := p.nextFreeVariableID
	p.nextFreeVariableID++
	return ir.Variable(id)
}

// insert allocates output/temp variables for op, builds the Instruction,
// runs all three analyzers over it, and appends it to the buffer.
func (p *Program) insert(op *ir.Operation, inputs []ir.Variable) []ir.Variable {
	numOutputs := op.NumOutputs()
	numTemp := op.NumTemp()

	outputs := make([]ir.Variable, 0, numOutputs)
	temp := make([]ir.Variable, 0, numTemp)

	for i := uint8(0); i < numOutputs; i++ {
		outputs = append(outputs, p.nextFreeVariable())
	}
	for i := uint8(0); i < numTemp; i++ {
		temp = append(temp, p.nextFreeVariable())
	}

	inst := ir.New(p.NumInstr, op, inputs, outputs, temp)

	p.ScopeAnalyzer.Analyze(inst)
	p.ContextAnalyzer.Analyze(inst)
	p.TypeAnalyzer.Analyze(inst)

	p.Buffer = append(p.Buffer, inst)
	p.NumInstr++

	return p.Buffer[len(p.Buffer)-1].Outputs
}

func (p *Program) IsInLoop() bool     { return p.ContextAnalyzer.InLoop() }
func (p *Program) IsInFunction() bool { return p.ContextAnalyzer.InFunction() }

func (p *Program) GetType(v ir.Variable) types.Type {
	return p.TypeAnalyzer.GetType(v)
}

func (p *Program) GetSignatureFor(v ir.Variable) *types.FunctionSignature {
	return p.TypeAnalyzer.GetSignatureFor(v)
}
