package generators

import (
	"zebra/internal/ir"
	"zebra/internal/jsruntime"
	"zebra/internal/program"
	"zebra/internal/rng"
	"zebra/internal/types"
)

func MethodCall(p *program.Program) bool {
	object, ok := p.RandomVariableOfType(types.Object.Or(types.Unknown), program.ModeStrict)
	if !ok {
		return false
	}

	objectType := p.GetType(object)

	method, ok := p.RandomMethodForShape(objectType.Shape)
	if !ok {
		return false
	}

	inputs := p.GenerateMethodArgs(method, &object)
	p.MethodCall(inputs, method)
	return true
}

func LoadProperty(p *program.Program) bool {
	object, ok := p.RandomVariableOfType(types.Object, program.ModeStrict)
	if !ok {
		return false
	}

	objectType := p.GetType(object)

	var prop string
	if p.Prob.Satisfies(0.6) {
		prop = rng.RandomElement(p.RNG, jsruntime.Properties)
	} else {
		props, ok := p.RandomPropertyForShape(objectType.Shape)
		if !ok {
			return false
		}
		prop = props
	}

	p.LoadProperty(object, prop)
	return true
}

func StoreProperty(p *program.Program) bool {
	object, ok := p.RandomVariableOfType(types.Object, program.ModeStrict)
	if !ok {
		return false
	}

	prop := rng.RandomElement(p.RNG, jsruntime.Properties)
	value := p.RandomVariable(types.Any)

	p.StoreProperty(object, prop, value)
	return true
}

func CreateObject(p *program.Program) bool {
	numProps := int(p.RNG.RandInRange(0, int64(len(jsruntime.Properties))))
	props := rng.GetNRandomElements(p.RNG, jsruntime.Properties, numProps)

	values := make([]ir.Variable, 0, numProps)
	for i := 0; i < numProps; i++ {
		values = append(values, p.RandomVariable(types.Any))
	}

	p.CreateObject(props, values)
	return true
}

func DeleteProperty(p *program.Program) bool {
	object, ok := p.RandomVariableOfType(types.Object, program.ModeStrict)
	if !ok {
		return false
	}

	indexed := false
	var property ir.Variable
	if p.Prob.Satisfies(0.5) {
		indexed = true
		property = p.RandomVariable(types.Int)
	} else {
		prop := rng.RandomElement(p.RNG, jsruntime.Properties)
		property = p.LoadString(prop)
	}

	p.DeleteProperty(object, property, indexed)
	return true
}
