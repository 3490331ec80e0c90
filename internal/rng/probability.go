package rng

import "math"

// Probability wraps a Random with weighted/biased selection helpers used
// throughout the program builder and code generators.
type Probability struct {
	R *Random
}

// NewProbability wraps rng.
func NewProbability(r *Random) *Probability {
	return &Probability{R: r}
}

// Prob returns a random value in [0, 1.1) in steps of 0.1.
func (p *Probability) Prob() float64 {
	return float64(p.R.RandInRange(0, 11)) / 10.0
}

// Satisfies returns true with probability prob (prob == 1.0 always succeeds).
func (p *Probability) Satisfies(prob float64) bool {
	if prob == 1.0 {
		return true
	}
	return p.Prob() < prob
}

// WithProbability calls trueFunc with probability prob, else falseFunc if
// it is non-nil.
func (p *Probability) WithProbability(prob float64, trueFunc, falseFunc func()) {
	if p.Satisfies(prob) {
		trueFunc()
		return
	}
	if falseFunc != nil {
		falseFunc()
	}
}

// WithEqualProbability calls one of funcs, chosen uniformly.
func (p *Probability) WithEqualProbability(funcs []func()) {
	idx := p.R.RandIdx(len(funcs))
	funcs[idx]()
}

// ChooseBiased selects an element of array with geometrically decaying
// weight: element i has weight factor^i relative to the rest, walked from
// the highest index down. A factor between 0 and 1 favors the start of the
// array; a factor above 1 favors the end.
func ChooseBiased[T any](p *Probability, array []T, factor float64) T {
	length := len(array)
	if length <= 1 {
		return array[0]
	}

	x := 0.0
	for i := 0; i < length; i++ {
		x += math.Pow(factor, float64(i))
	}

	for i := length - 1; i >= 0; i-- {
		weight := math.Pow(factor, float64(i))
		prob := weight * (1.0 / x)

		if p.Satisfies(prob) {
			return array[i]
		}
		x -= weight
	}

	return array[0]
}

// WeightedChoice pairs a value with its selection weight for
// ChooseWeightedBiased.
type WeightedChoice[T any] struct {
	Value  T
	Weight uint16
}

// ChooseWeightedBiased selects a value from d, where each entry's chance of
// selection is its weight over the remaining total, walked in order. Falls
// back to a uniform pick across all of d if the walk exhausts without a hit
// (can only happen through floating-point edge cases).
func ChooseWeightedBiased[T any](p *Probability, d []WeightedChoice[T]) T {
	var total uint32
	for _, pair := range d {
		total += uint32(pair.Weight)
	}

	remaining := total
	for _, pair := range d {
		prob := float64(pair.Weight) * (1.0 / float64(remaining))
		if p.Satisfies(prob) {
			return pair.Value
		}
		remaining -= uint32(pair.Weight)
	}

	idx := p.R.RandIdx(len(d))
	return d[idx].Value
}
