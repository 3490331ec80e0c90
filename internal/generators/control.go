package generators

import (
	"zebra/internal/ir"
	"zebra/internal/program"
	"zebra/internal/rng"
	"zebra/internal/types"
)

func Copy(p *program.Program) bool {
	lhs := p.RandomVariable(types.Any)
	rhs := p.RandomVariable(types.Any)
	p.Copy(lhs, rhs)
	return true
}

func IfCondition(p *program.Program) bool {
	cond := p.RandomVariable(types.Bool)
	v := p.RandomVariable(types.Unknown)

	p.BeginIf(cond)
	p.GenerateRandomInsts(2, BasicGenerators, Generators)
	tmp := p.RandomVariable(types.Any)
	p.Copy(v, tmp)

	p.BeginElse()
	p.GenerateRandomInsts(2, BasicGenerators, Generators)
	tmp = p.RandomVariable(types.Any)
	p.Copy(v, tmp)
	p.EndIf()

	return true
}

func forBounds(p *program.Program) (start, end, step ir.Variable) {
	if p.Prob.Satisfies(0.7) {
		start = p.LoadInt(0)
		end = p.LoadInt(0x500)
		step = p.LoadInt(1)
		return
	}
	start = p.RandomVariable(types.Int)
	end = p.RandomVariable(types.Int)
	step = p.RandomVariable(types.Int)
	return
}

func ForLoop(p *program.Program) bool {
	start, end, step := forBounds(p)
	cp := p.RandomVariable(types.Any)

	p.BeginFor(start, end, step, "++", ir.LessThan)
	p.GenerateRandomInsts(2, BasicGenerators, Generators)
	tmp := p.RandomVariable(types.Any)
	p.Copy(cp, tmp)
	p.EndFor()

	return true
}

// EmptyLoop emits a loop with no body, only inside a function: otherwise
// an empty top-level loop is dead weight the JIT never gets to warm up.
func EmptyLoop(p *program.Program) bool {
	if !p.IsInFunction() {
		return false
	}

	start, end, step := forBounds(p)
	p.BeginFor(start, end, step, "++", ir.LessThan)
	p.EndFor()
	return true
}

func Break(p *program.Program) bool {
	if !p.IsInLoop() {
		return false
	}
	p.InsertBreak()
	return true
}

func Continue(p *program.Program) bool {
	if !p.IsInLoop() {
		return false
	}
	p.InsertContinue()
	return true
}

func BinaryOp(p *program.Program) bool {
	lhs := p.RandomVariable(types.Int.Or(types.Float))
	rhs := p.RandomVariable(types.Int.Or(types.Float))
	op := rng.RandomElement(p.RNG, ir.AllBinaryOperators())
	p.BinaryOp(lhs, rhs, op)
	return true
}

func CompareOp(p *program.Program) bool {
	lhs := p.RandomVariable(types.Int.Or(types.Float))
	rhs := p.RandomVariable(types.Int.Or(types.Float))
	op := rng.RandomElement(p.RNG, ir.AllComparators())
	p.CompareOp(lhs, rhs, op)
	return true
}

func UnaryOp(p *program.Program) bool {
	v := p.RandomVariable(types.Int)
	op := rng.RandomElement(p.RNG, ir.AllUnaryOperators())
	p.UnaryOp(v, op)
	return true
}
