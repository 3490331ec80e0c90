// Package generators implements the code-generator strategies the program
// builder's weighted-biased walk draws from: each is a Generator (defined
// in the program package) that tries to append one piece of code, reporting
// success or bail.
package generators

import "zebra/internal/program"

func IntegerLiteral(p *program.Program) bool {
	p.LoadInt(p.GetInt())
	return true
}

func FloatLiteral(p *program.Program) bool {
	p.LoadFloat(p.GetFloat())
	return true
}

func StringLiteral(p *program.Program) bool {
	p.LoadString(p.GetString())
	return true
}

func BoolLiteral(p *program.Program) bool {
	p.LoadBool(p.Prob.Satisfies(0.5))
	return true
}

func UndefinedLiteral(p *program.Program) bool {
	p.LoadUndefined()
	return true
}

func Nop(p *program.Program) bool {
	p.Nop()
	return true
}
