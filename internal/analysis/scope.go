package analysis

import "zebra/internal/ir"

// ScopeAnalyzer tracks which Variables are visible at the current point in
// the program being built, as a stack of scopes (one per open block).
type ScopeAnalyzer struct {
	scope [][]ir.Variable
}

// NewScopeAnalyzer starts with a single, empty global scope.
func NewScopeAnalyzer() *ScopeAnalyzer {
	return &ScopeAnalyzer{scope: [][]ir.Variable{{}}}
}

// Analyze updates the scope stack for inst. Outputs are always appended to
// the current scope before any push/pop, so a block-start instruction's own
// outputs land in the enclosing scope while its temporaries seed the new one.
func (s *ScopeAnalyzer) Analyze(inst *ir.Instruction) {
	top := len(s.scope) - 1
	s.scope[top] = append(s.scope[top], inst.Outputs...)

	op := inst.Operation

	if op.IsBlockEnd() {
		if len(s.scope) <= 1 {
			panic("trying to pop global scope")
		}
		s.scope = s.scope[:len(s.scope)-1]
	}

	if op.IsBlockStart() {
		next := make([]ir.Variable, len(inst.Temp))
		copy(next, inst.Temp)
		s.scope = append(s.scope, next)
	}
}

// GetInnerVariables returns the variables visible only in the current,
// innermost scope.
func (s *ScopeAnalyzer) GetInnerVariables() []ir.Variable {
	return s.scope[len(s.scope)-1]
}

// GetOuterVariables returns every scope enclosing the current one.
func (s *ScopeAnalyzer) GetOuterVariables() [][]ir.Variable {
	return s.scope[:len(s.scope)-1]
}

// GetVisibleVariables flattens every scope on the stack into the set of
// variables reachable from the current point in the program.
func (s *ScopeAnalyzer) GetVisibleVariables() []ir.Variable {
	var out []ir.Variable
	for _, sc := range s.scope {
		out = append(out, sc...)
	}
	return out
}

// GetAllScopes exposes the raw scope stack.
func (s *ScopeAnalyzer) GetAllScopes() [][]ir.Variable {
	return s.scope
}
