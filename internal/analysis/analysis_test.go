package analysis

import (
	"strings"
	"testing"

	"github.com/kr/pretty"

	"zebra/internal/ir"
	"zebra/internal/types"
)

func TestContextAnalyzerLoopNesting(t *testing.T) {
	ca := NewContextAnalyzer()
	if ca.InLoop() {
		t.Fatalf("fresh analyzer should not be in a loop")
	}

	forStart := ir.New(0, &ir.Operation{Op: ir.BeginFor}, []ir.Variable{1, 2, 3}, nil, []ir.Variable{4})
	ca.Analyze(forStart)
	if !ca.InLoop() {
		t.Fatalf("expected to be in a loop after BeginFor")
	}

	forEnd := ir.New(1, &ir.Operation{Op: ir.EndFor}, nil, nil, nil)
	ca.Analyze(forEnd)
	if ca.InLoop() {
		t.Fatalf("expected to leave the loop after EndFor")
	}
}

func TestContextAnalyzerFunctionHidesLoop(t *testing.T) {
	ca := NewContextAnalyzer()
	forStart := ir.New(0, &ir.Operation{Op: ir.BeginFor}, []ir.Variable{1, 2, 3}, nil, []ir.Variable{4})
	ca.Analyze(forStart)

	sig := types.NewFunctionSignature(0)
	fnStart := ir.New(1, &ir.Operation{Op: ir.BeginFunctionDefinition, FunctionSignature: sig}, nil, []ir.Variable{5}, nil)
	ca.Analyze(fnStart)

	if ca.InLoop() {
		t.Fatalf("a function body must not inherit the enclosing loop context")
	}

	fnEnd := ir.New(2, &ir.Operation{Op: ir.EndFunctionDefinition}, nil, nil, nil)
	ca.Analyze(fnEnd)

	if !ca.InLoop() {
		t.Fatalf("expected loop context to resume after function end")
	}
}

func TestScopeAnalyzerPushPop(t *testing.T) {
	sa := NewScopeAnalyzer()

	load := ir.New(0, &ir.Operation{Op: ir.LoadInt, IntVal: 1}, nil, []ir.Variable{1}, nil)
	sa.Analyze(load)

	ifStart := ir.New(1, &ir.Operation{Op: ir.BeginIf}, []ir.Variable{1}, nil, nil)
	sa.Analyze(ifStart)

	inner := ir.New(2, &ir.Operation{Op: ir.LoadInt, IntVal: 2}, nil, []ir.Variable{2}, nil)
	sa.Analyze(inner)

	visible := sa.GetVisibleVariables()
	if len(visible) != 2 {
		t.Fatalf("expected 2 visible variables inside the if-block, got %d", len(visible))
	}

	ifEnd := ir.New(3, &ir.Operation{Op: ir.EndIf}, nil, nil, nil)
	sa.Analyze(ifEnd)

	visible = sa.GetVisibleVariables()
	if len(visible) != 1 {
		t.Fatalf("expected v2 to go out of scope after EndIf, got %d variables", len(visible))
	}
}

func TestTypeAnalyzerLiterals(t *testing.T) {
	ta := NewTypeAnalyzer()
	inst := ir.New(0, &ir.Operation{Op: ir.LoadInt, IntVal: 42}, nil, []ir.Variable{1}, nil)
	ta.Analyze(inst)

	got := ta.GetType(1)
	if !got.IsInt() {
		t.Fatalf("expected v1 to be typed Int, got %+v", got)
	}
}

func TestTypeAnalyzerBinaryOpAddInts(t *testing.T) {
	ta := NewTypeAnalyzer()
	ta.SetType(1, types.Int)
	ta.SetType(2, types.Int)

	add := ir.New(0, &ir.Operation{Op: ir.BinaryOp, BinaryOperator: ir.Add},
		[]ir.Variable{1, 2}, []ir.Variable{3}, nil)
	ta.Analyze(add)

	got := ta.GetType(3)
	if !got.IsInt() {
		t.Fatalf("Int + Int should type as Int, got %+v", got)
	}
}

func TestSetTypeWidensRatherThanOverwrites(t *testing.T) {
	ta := NewTypeAnalyzer()

	ta.SetType(1, types.Int)
	ta.SetType(1, types.String)

	got := ta.GetType(1)
	want := types.Int.Or(types.String)
	if got != want {
		t.Fatalf("repeated SetType should widen the type rather than replace it:\n%s",
			strings.Join(pretty.Diff(want, got), "\n"))
	}
}

func TestTypeAnalyzerBinaryOpAddNonNumericIsString(t *testing.T) {
	ta := NewTypeAnalyzer()
	ta.SetType(1, types.String)
	ta.SetType(2, types.String)

	add := ir.New(0, &ir.Operation{Op: ir.BinaryOp, BinaryOperator: ir.Add},
		[]ir.Variable{1, 2}, []ir.Variable{3}, nil)
	ta.Analyze(add)

	got := ta.GetType(3)
	if !got.IsString() {
		t.Fatalf("String + String should type as String, got %+v", got)
	}
}

func TestTypeAnalyzerFunctionRoundTrip(t *testing.T) {
	ta := NewTypeAnalyzer()

	sig := types.NewFunctionSignature(1)
	begin := ir.New(0, &ir.Operation{Op: ir.BeginFunctionDefinition, FunctionSignature: sig},
		nil, []ir.Variable{10}, []ir.Variable{11})
	ta.Analyze(begin)

	if !ta.GetType(10).IsFunction() {
		t.Fatalf("function variable should be typed Function")
	}

	ta.SetType(11, types.Int)

	ret := ir.New(1, &ir.Operation{Op: ir.Return}, []ir.Variable{11}, nil, nil)
	ta.Analyze(ret)

	end := ir.New(2, &ir.Operation{Op: ir.EndFunctionDefinition}, nil, nil, nil)
	ta.Analyze(end)

	gotSig := ta.GetSignatureFor(10)
	if !gotSig.OutputType().IsInt() {
		t.Fatalf("expected inferred return type Int, got %+v", gotSig.OutputType())
	}
	if gotSig.IsConstructing() {
		t.Fatalf("signature should be done constructing after EndFunctionDefinition")
	}

	call := ir.New(3, &ir.Operation{Op: ir.FunctionCall, ArgCount: 0},
		[]ir.Variable{10}, []ir.Variable{12}, nil)
	ta.Analyze(call)

	if !ta.GetType(12).IsInt() {
		t.Fatalf("call result should carry the function's inferred return type")
	}
}
