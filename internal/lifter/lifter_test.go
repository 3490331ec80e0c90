package lifter

import (
	"strings"
	"testing"

	"zebra/internal/ir"
	"zebra/internal/jsruntime"
	"zebra/internal/program"
	"zebra/internal/types"
)

func newTestProgram() *program.Program {
	return program.New(jsruntime.New(), 0xFEED)
}

func TestLiftLoadIntEmitsVarDecl(t *testing.T) {
	p := newTestProgram()
	v := p.LoadInt(42)

	l := New()
	l.Lift(p)

	want := "var " + v.Print() + " = 42;\n"
	if got := l.Code(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestLiftIfElseIndentsAndUnindents(t *testing.T) {
	p := newTestProgram()
	cond := p.LoadBool(true)
	p.BeginIf(cond)
	p.LoadInt(1)
	p.BeginElse()
	p.LoadInt(2)
	p.EndIf()

	l := New()
	l.Lift(p)

	code := l.Code()
	lines := strings.Split(strings.TrimRight(code, "\n"), "\n")
	// lines[0] is the condition's own `var v0 = true;` declaration.
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d: %q", len(lines), code)
	}
	if !strings.HasPrefix(lines[1], "if (") {
		t.Fatalf("expected an if header, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "   ") {
		t.Fatalf("expected the if body indented, got %q", lines[2])
	}
	if strings.TrimSpace(lines[3]) != "} else {" {
		t.Fatalf("expected an else header, got %q", lines[3])
	}
	if strings.TrimSpace(lines[5]) != "}" {
		t.Fatalf("expected a closing brace, got %q", lines[5])
	}
}

func TestLiftBeginForOmitsStepVariableFromText(t *testing.T) {
	p := newTestProgram()
	start := p.LoadInt(0)
	end := p.LoadInt(10)
	step := p.LoadInt(1)
	p.BeginFor(start, end, step, "++", ir.LessThan)
	p.EndFor()

	l := New()
	l.Lift(p)

	code := l.Code()
	header := ""
	for _, line := range strings.Split(code, "\n") {
		if strings.HasPrefix(line, "for (var ") {
			header = line
		}
	}
	if header == "" {
		t.Fatalf("expected a for header, got %q", code)
	}
	// The step variable's own declaration is lifted; only the header omits it.
	if strings.Contains(header, step.Print()) {
		t.Fatalf("expected the step variable to not appear in the for header, got %q", header)
	}
}

func TestLiftMethodCall(t *testing.T) {
	p := newTestProgram()
	sig := types.NewMethodSignature("push", types.Obj(types.ShapeArray), nil, types.Undefined)
	arr := p.CreateArray(nil)
	out := p.MethodCall([]ir.Variable{arr}, *sig)

	l := New()
	l.Lift(p)

	want := "var " + out.Print() + " = " + arr.Print() + ".push();\n"
	if got := l.Code(); !strings.HasSuffix(got, want) {
		t.Fatalf("got %q, want suffix %q", got, want)
	}
}

func TestLiftLoadPropertyHasNoTrailingSemicolon(t *testing.T) {
	p := newTestProgram()
	obj := p.CreateObject(nil, nil)
	p.LoadProperty(obj, "length")

	l := New()
	l.Lift(p)

	lines := strings.Split(strings.TrimRight(l.Code(), "\n"), "\n")
	last := lines[len(lines)-1]
	if strings.HasSuffix(last, ";") {
		t.Fatalf("expected no trailing semicolon on a loaded property, got %q", last)
	}
}

func TestResetClearsCodeButNotIndent(t *testing.T) {
	e := NewEmitter()
	e.Indent()
	e.Add("x")
	e.Reset()
	if e.Code() != "" {
		t.Fatalf("expected code cleared after reset")
	}
	e.Add("y")
	if e.Code() != "   y\n" {
		t.Fatalf("expected indentation preserved across reset, got %q", e.Code())
	}
}
