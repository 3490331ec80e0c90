package program

import (
	"golang.org/x/exp/slices"

	"zebra/internal/ir"
	"zebra/internal/rng"
	"zebra/internal/types"
)

// scopeBiasFactor prefers inner (more recently opened) scopes when a random
// variable is drawn from the scope stack.
const scopeBiasFactor = 1.2

func (p *Program) typeFilter(rtype types.Type) func(ir.Variable) bool {
	return func(v ir.Variable) bool {
		return p.GetType(v).Contains(rtype)
	}
}

// filterVars returns the subset of vars that keep accepts, without
// disturbing the caller's backing slice.
func filterVars(vars []ir.Variable, keep func(ir.Variable) bool) []ir.Variable {
	out := slices.Clone(vars)
	out = slices.DeleteFunc(out, func(v ir.Variable) bool { return !keep(v) })
	return out
}

// RandomVariable picks any variable of rtype visible at the current point,
// in ModeFree (never fails, falls back to any visible variable).
func (p *Program) RandomVariable(rtype types.Type) ir.Variable {
	v, _ := p.RandomVariableOfType(rtype, ModeFree)
	return v
}

// RandomVariableOfType chooses one scope at random, biased toward the most
// recently opened, then looks for a variable of rtype within it. If none
// match there, it widens the search to every variable visible from the
// current point. If that still comes up empty: ModeStrict fails outright,
// while ModeFree returns any visible variable regardless of type.
//
// In ModeFree, rtype also matches a variable still typed Unknown.
func (p *Program) RandomVariableOfType(rtype types.Type, mode Mode) (ir.Variable, bool) {
	if mode == ModeFree {
		rtype = rtype.Or(types.Unknown)
	}
	keep := p.typeFilter(rtype)

	scopes := p.ScopeAnalyzer.GetAllScopes()
	scope := rng.ChooseBiased(p.Prob, scopes, scopeBiasFactor)
	candidates := filterVars(scope, keep)

	visible := p.ScopeAnalyzer.GetVisibleVariables()
	if len(candidates) == 0 {
		candidates = filterVars(visible, keep)
	}

	if len(candidates) == 0 {
		if mode == ModeStrict {
			return ir.Variable(0), false
		}
		candidates = visible
	}

	if len(candidates) == 0 {
		return ir.Variable(0), false
	}

	return rng.RandomElement(p.RNG, candidates), true
}

// RandomMethodForShape picks a random method (instance or static, per
// whether shape carries the Static bit) exposed by the runtime catalogue
// for shape. Returns false if no builtin registers anything matching.
func (p *Program) RandomMethodForShape(shape types.Shape) (types.MethodSignature, bool) {
	methods := p.JSRuntime.GetMethods(shape)
	if len(methods) == 0 {
		return types.MethodSignature{}, false
	}
	return rng.RandomElement(p.RNG, methods), true
}

// RandomPropertyForShape picks a random property name exposed for shape.
func (p *Program) RandomPropertyForShape(shape types.Shape) (string, bool) {
	props := p.JSRuntime.GetProperties(shape)
	if len(props) == 0 {
		return "", false
	}
	return rng.RandomElement(p.RNG, props), true
}
