package program

import (
	"testing"

	"zebra/internal/ir"
	"zebra/internal/jsruntime"
	"zebra/internal/types"
)

func newTestProgram() *Program {
	return New(jsruntime.New(), 0xC0FFEE)
}

func TestLoadIntRoundTrip(t *testing.T) {
	p := newTestProgram()
	v := p.LoadInt(42)

	if !p.GetType(v).IsInt() {
		t.Fatalf("expected loaded variable to be typed Int")
	}
	if p.Buffer[0].GetVal().Int != 42 {
		t.Fatalf("expected stored literal to round-trip, got %v", p.Buffer[0].GetVal())
	}
}

func TestInsertAllocatesSequentialVariables(t *testing.T) {
	p := newTestProgram()
	a := p.LoadInt(1)
	b := p.LoadInt(2)

	if a == b {
		t.Fatalf("expected distinct variables, got %s twice", a.Print())
	}
	if p.NumInstr != 2 {
		t.Fatalf("expected 2 instructions recorded, got %d", p.NumInstr)
	}
}

func TestBeginIfEndIfTracksScope(t *testing.T) {
	p := newTestProgram()
	cond := p.LoadBool(true)
	inner := p.LoadInt(1)
	_ = inner

	p.BeginIf(cond)
	if len(p.ScopeAnalyzer.GetAllScopes()) != 2 {
		t.Fatalf("expected BeginIf to push a new scope")
	}
	p.EndIf()
	if len(p.ScopeAnalyzer.GetAllScopes()) != 1 {
		t.Fatalf("expected EndIf to pop the scope")
	}
}

func TestBeginForTracksLoopContext(t *testing.T) {
	p := newTestProgram()
	start := p.LoadInt(0)
	end := p.LoadInt(10)
	step := p.LoadInt(1)

	if p.IsInLoop() {
		t.Fatalf("did not expect to be in a loop yet")
	}
	p.BeginFor(start, end, step, "++", ir.LessThan)
	if !p.IsInLoop() {
		t.Fatalf("expected BeginFor to enter loop context")
	}
	p.EndFor()
	if p.IsInLoop() {
		t.Fatalf("expected EndFor to leave loop context")
	}
}

func TestRandomVariableOfTypeStrictFailsWhenNoMatch(t *testing.T) {
	p := newTestProgram()
	p.LoadBool(true)

	if _, ok := p.RandomVariableOfType(types.String, ModeStrict); ok {
		t.Fatalf("expected strict search for a missing type to fail")
	}
}

func TestRandomVariableFreeFallsBackToAnyVisible(t *testing.T) {
	p := newTestProgram()
	v := p.LoadBool(true)

	got := p.RandomVariable(types.String)
	if got != v {
		t.Fatalf("expected free-mode fallback to the only visible variable, got %s want %s", got.Print(), v.Print())
	}
}

func TestFunctionDefinitionRoundTrip(t *testing.T) {
	p := newTestProgram()
	fn, args := p.BeginFunctionDefinition(2)
	if len(args) != 2 {
		t.Fatalf("expected 2 parameter variables, got %d", len(args))
	}

	p.InsertReturn(args[0])
	p.EndFunctionDefinition()

	sig := p.GetSignatureFor(fn)
	if sig == nil {
		t.Fatalf("expected a signature to be registered for the function")
	}
	if sig.IsConstructing() {
		t.Fatalf("expected signature to be done constructing after EndFunctionDefinition")
	}
}

func TestMethodCallUsesSignatureArity(t *testing.T) {
	p := newTestProgram()
	arr := p.CreateArray(nil)

	method, ok := p.RandomMethodForShape(types.ShapeArray)
	if !ok {
		t.Fatalf("expected Array to expose at least one method")
	}

	inputs := p.GenerateMethodArgs(method, &arr)
	result := p.MethodCall(inputs, method)
	if got := p.GetType(result); got.PType != method.OutputType().PType {
		t.Fatalf("expected method call output type %v, got %v", method.OutputType(), got)
	}
}

func TestLoadBuiltinSubstitutesTypedArrayName(t *testing.T) {
	p := newTestProgram()

	var ctor types.ConstructorType
	for _, c := range p.JSRuntime.GetConstructors() {
		if c.IsCallable() && c.Callable.OutputType() == types.TypedArray {
			ctor = c
			break
		}
	}
	if !ctor.IsCallable() {
		t.Skip("runtime catalogue does not register a TypedArray constructor")
	}

	v := p.LoadBuiltin(ctor, []ir.Variable{})
	inst := p.Buffer[len(p.Buffer)-1]
	name := inst.Operation.Constructor.Callable.Name()
	found := false
	for _, n := range jsruntime.TypedArrayNames {
		if n == name {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected substituted name to be one of the typed array names, got %q", name)
	}
	if !p.GetType(v).IsObject() {
		t.Fatalf("expected LoadBuiltin result to be typed as an object")
	}
}
