package lifter

import (
	"fmt"
	"strings"

	"zebra/internal/ir"
	"zebra/internal/program"
	"zebra/internal/rng"
)

// Lifter walks a finished program's instruction buffer once, emitting JS
// source text for each instruction in order.
type Lifter struct {
	emitter *Emitter
	prob    *rng.Probability
}

// New returns a lifter with its own emitter and its own PRNG (created with
// seed 0, so clock-seeded; see rng.New) for the handful of stylistic choices lifting makes (array literal
// vs. `Array(...)`, dot vs. bracket property assignment).
func New() *Lifter {
	return &Lifter{
		emitter: NewEmitter(),
		prob:    rng.NewProbability(rng.New(0)),
	}
}

// Lift emits every instruction in p's buffer.
func (l *Lifter) Lift(p *program.Program) {
	for _, inst := range p.Buffer {
		l.liftOne(inst)
	}
}

func (l *Lifter) Code() string { return l.emitter.Code() }
func (l *Lifter) Reset()       { l.emitter.Reset() }
func (l *Lifter) Finalize()    {}

func (l *Lifter) liftOne(inst *ir.Instruction) {
	op := inst.Operation

	switch op.Op {
	case ir.Nop:

	case ir.LoadInt, ir.LoadFloat, ir.LoadString, ir.LoadBool, ir.LoadUndefined:
		val := inst.GetVal()
		var lit string
		switch val.Kind {
		case ir.ValueInt:
			lit = fmt.Sprintf("%d", val.Int)
		case ir.ValueFloat:
			lit = fmt.Sprintf("%v", val.Flt)
		case ir.ValueStr:
			lit = fmt.Sprintf("%q", val.Str)
		case ir.ValueBool:
			lit = fmt.Sprintf("%v", val.Bool)
		case ir.ValueUndefined:
			lit = "undefined"
		}
		l.emitter.Add(fmt.Sprintf("var %s = %s;", inst.OutputAt(0).Print(), lit))

	case ir.Copy:
		l.emitter.Add(fmt.Sprintf("var %s = %s;", inst.InputAt(0).Print(), inst.InputAt(1).Print()))

	case ir.BeginIf:
		l.emitter.Add(fmt.Sprintf("if (%s) {", inst.InputAt(0).Print()))
		l.emitter.Indent()

	case ir.BeginElse:
		l.emitter.Unindent()
		l.emitter.Add("} else {")
		l.emitter.Indent()

	case ir.EndIf:
		l.emitter.Unindent()
		l.emitter.Add("}")

	case ir.BeginFor:
		tmp := inst.TempAt(0).Print()
		code := fmt.Sprintf("for (var %s = %s; %s %s %s; %s%s) {",
			tmp, inst.InputAt(0).Print(),
			tmp, op.Comparator.Rep(), inst.InputAt(1).Print(),
			tmp, op.ForStep)
		l.emitter.Add(code)
		l.emitter.Indent()

	case ir.EndFor:
		l.emitter.Unindent()
		l.emitter.Add("}")

	case ir.Break:
		l.emitter.Add("break;")

	case ir.Continue:
		l.emitter.Add("continue;")

	case ir.BinaryOp:
		l.emitter.Add(fmt.Sprintf("var %s = %s %s %s;",
			inst.OutputAt(0).Print(), inst.InputAt(0).Print(), op.BinaryOperator.Rep(), inst.InputAt(1).Print()))

	case ir.UnaryOp:
		out, lhs := inst.OutputAt(0).Print(), inst.InputAt(0).Print()
		switch op.UnaryOperator {
		case ir.Inc, ir.Dec:
			l.emitter.Add(fmt.Sprintf("var %s = %s%s;", out, lhs, op.UnaryOperator.Rep()))
		default:
			l.emitter.Add(fmt.Sprintf("var %s = %s%s;", out, op.UnaryOperator.Rep(), lhs))
		}

	case ir.CompareOp:
		l.emitter.Add(fmt.Sprintf("var %s = %s %s %s;",
			inst.OutputAt(0).Print(), inst.InputAt(0).Print(), op.Comparator.Rep(), inst.InputAt(1).Print()))

	case ir.BeginFunctionDefinition:
		params := make([]string, len(inst.Temp))
		for i, v := range inst.Temp {
			params[i] = v.Print()
		}
		l.emitter.Add(fmt.Sprintf("function %s(%s) {", inst.OutputAt(0).Print(), strings.Join(params, ", ")))
		l.emitter.Indent()

	case ir.EndFunctionDefinition:
		l.emitter.Unindent()
		l.emitter.Add("}")

	case ir.Return:
		l.emitter.Add(fmt.Sprintf("return %s;", inst.InputAt(0).Print()))

	case ir.FunctionCall:
		args := printVars(inst.Inputs[1:])
		l.emitter.Add(fmt.Sprintf("var %s = %s(%s);", inst.OutputAt(0).Print(), inst.InputAt(0).Print(), args))

	case ir.CreateArray:
		inputs := printVars(inst.Inputs)
		if l.prob.Satisfies(0.5) {
			l.emitter.Add(fmt.Sprintf("var %s = [%s];", inst.OutputAt(0).Print(), inputs))
		} else {
			l.emitter.Add(fmt.Sprintf("var %s = Array(%s);", inst.OutputAt(0).Print(), inputs))
		}

	case ir.LoadElement:
		l.emitter.Add(fmt.Sprintf("var %s = %s[%s];",
			inst.OutputAt(0).Print(), inst.InputAt(0).Print(), inst.InputAt(1).Print()))

	case ir.StoreElement:
		l.emitter.Add(fmt.Sprintf("%s[%s] = %s;",
			inst.InputAt(0).Print(), inst.InputAt(1).Print(), inst.InputAt(2).Print()))

	case ir.MethodCall:
		args := printVars(inst.Inputs[1:])
		l.emitter.Add(fmt.Sprintf("var %s = %s.%s(%s);",
			inst.OutputAt(0).Print(), inst.InputAt(0).Print(), op.MethodSignature.Name(), args))

	case ir.LoadProperty:
		l.emitter.Add(fmt.Sprintf("var %s = %s.%s",
			inst.OutputAt(0).Print(), inst.InputAt(0).Print(), op.StringVal))

	case ir.StoreProperty:
		obj, val := inst.InputAt(0).Print(), inst.InputAt(1).Print()
		if l.prob.Satisfies(0.7) {
			l.emitter.Add(fmt.Sprintf("%s.%s = %s", obj, op.StringVal, val))
		} else {
			l.emitter.Add(fmt.Sprintf("%s[%q] = %s", obj, op.StringVal, val))
		}

	case ir.LoadBuiltin:
		output := inst.OutputAt(0).Print()
		if op.Constructor.IsCallable() {
			args := printVars(inst.Inputs)
			l.emitter.Add(fmt.Sprintf("var %s = new %s(%s);", output, op.Constructor.Callable.Name(), args))
		} else {
			l.emitter.Add(fmt.Sprintf("var %s = %s", output, op.Constructor.NonCallable.Name))
		}

	case ir.CreateObject:
		fields := make([]string, len(op.PropertyNames))
		for i, name := range op.PropertyNames {
			fields[i] = fmt.Sprintf("%s: %s", name, inst.InputAt(i).Print())
		}
		l.emitter.Add(fmt.Sprintf("var %s = {%s};", inst.OutputAt(0).Print(), strings.Join(fields, ", ")))

	case ir.Delete:
		l.emitter.Add(fmt.Sprintf("delete %s[%s]", inst.InputAt(0).Print(), inst.InputAt(1).Print()))

	default:
		panic(fmt.Sprintf("unimplemented opcode for lifting: %s", op.Op))
	}
}

func printVars(vars []ir.Variable) string {
	parts := make([]string, len(vars))
	for i, v := range vars {
		parts[i] = v.Print()
	}
	return strings.Join(parts, ", ")
}
