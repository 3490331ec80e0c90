package program

import (
	"zebra/internal/jsruntime"
	"zebra/internal/rng"
)

// GetInt returns an integer literal: an "interesting" boundary constant
// 30% of the time, a previously seen value half the time once at least 4
// have accumulated, or a fresh value otherwise (mostly small and positive,
// occasionally spanning negative numbers too).
func (p *Program) GetInt() int64 {
	if p.Prob.Satisfies(0.3) {
		return rng.RandomElement(p.RNG, jsruntime.InterestingInts)
	}

	if p.Prob.Satisfies(0.5) && len(p.seenInts) >= 4 {
		return rng.RandomElement(p.RNG, p.seenInts)
	}

	var v int64
	if p.Prob.Satisfies(0.8) {
		v = p.RNG.RandInRange(0, 0x10000)
	} else {
		v = p.RNG.RandInRange(-0x1000, 0x1000)
	}
	p.seenInts = append(p.seenInts, v)
	return v
}

// GetFloat returns a floating-point literal, reusing a previously seen
// value half the time once at least 4 have accumulated.
func (p *Program) GetFloat() float64 {
	if p.Prob.Satisfies(0.5) && len(p.seenFloats) >= 4 {
		return rng.RandomElement(p.RNG, p.seenFloats)
	}

	v := p.RNG.FloatInRange(0x1000)
	p.seenFloats = append(p.seenFloats, v)
	return v
}

// GetString returns a short printable string literal, reusing a previously
// seen value half the time once any exist.
func (p *Program) GetString() string {
	if p.Prob.Satisfies(0.5) && len(p.seenStrings) > 0 {
		return rng.RandomElement(p.RNG, p.seenStrings)
	}

	length := uint64(p.RNG.RandInRange(0, 100))
	v := p.RNG.RandomString(length)
	p.seenStrings = append(p.seenStrings, v)
	return v
}

// GetBool returns a uniformly random boolean.
func (p *Program) GetBool() bool {
	return p.RNG.RandInRange(0, 2) == 1
}
