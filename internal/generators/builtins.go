package generators

import (
	"zebra/internal/program"
	"zebra/internal/rng"
)

// LoadBuiltin references a random registered constructor: for a Callable
// one, it also generates and passes constructor arguments; a NonCallable
// one (a static namespace object like Math) takes none.
func LoadBuiltin(p *program.Program) bool {
	constructors := p.JSRuntime.GetConstructors()
	ctor := rng.RandomElement(p.RNG, constructors)

	if ctor.IsCallable() {
		inputs := p.GenerateMethodArgs(*ctor.Callable, nil)
		p.LoadBuiltin(ctor, inputs)
		return true
	}

	p.LoadBuiltin(ctor, nil)
	return true
}
