package fuzzer

import (
	"fmt"
	"os"
	"path/filepath"

	"zebra/internal/execution"
	"zebra/internal/generators"
	"zebra/internal/lifter"
	"zebra/internal/program"
	"zebra/internal/rng"
	"zebra/internal/zerrors"
)

// reportInterval is the number of iterations a worker runs locally before
// folding its counters into Globals and resetting them.
const reportInterval = 10

// instructionsPerProgram is how many generator calls fuzzOne asks for per
// iteration. The original's comment claims "at least 10 instructions" but
// the call it actually makes passes 5; kept at 5 here to match the real
// behavior, not the stale comment.
const instructionsPerProgram = 5

// Worker runs one fuzzing loop: build a program, lift it to JS text,
// execute it against the target, and classify the result. Each worker owns
// its own Execution connection and RNG; only Globals is shared.
type Worker struct {
	id      int
	globals *Globals
	exec    execution.Execution
	lifter  *lifter.Lifter
	rng     *rng.Random
	stats   Stats
}

// NewWorker builds a worker bound to exec, which it owns exclusively for
// its lifetime (Close is called when the worker's loop returns).
func NewWorker(id int, globals *Globals, exec execution.Execution) *Worker {
	return &Worker{
		id:      id,
		globals: globals,
		exec:    exec,
		lifter:  lifter.New(),
		rng:     rng.New(0),
	}
}

// Run drives the fuzz loop. It returns nil on a normal dry-run completion
// and otherwise only on a fatal error, since the loop is infinite
// otherwise; stop, when closed, ends the loop promptly between iterations.
func (w *Worker) Run(stop <-chan struct{}) error {
	defer w.exec.Close()

	for {
		for i := 0; i < reportInterval; i++ {
			select {
			case <-stop:
				return nil
			default:
			}

			if err := w.fuzzOne(); err != nil {
				return err
			}

			if w.globals.Settings.DryRun {
				return nil
			}
		}

		w.globals.Update(w.stats)
		w.stats.Reset()
	}
}

// fuzzOne performs one round: generate, lift, execute, classify. Any
// execution error or crash-artifact write failure aborts the loop as a
// KindFatal error; soft generator bails are absorbed by
// GenerateRandomInsts itself (a bailed generator just doesn't count toward
// its instruction quota).
func (w *Worker) fuzzOne() error {
	seed := w.rng.Rand()
	p := program.New(w.globals.JSRuntime, seed)
	w.lifter.Reset()

	p.GenerateRandomInsts(instructionsPerProgram, generators.BasicGenerators, generators.Generators)

	w.lifter.Lift(p)
	w.lifter.Finalize()
	code := w.lifter.Code()

	if w.globals.Settings.DryRun {
		fmt.Println(code)
	}

	outcome, err := w.exec.Execute(code)
	if err != nil {
		if zerrors.IsFatal(err) {
			return err
		}
		return zerrors.Wrap(err, zerrors.KindFatal, "unexpected execution error")
	}

	switch {
	case outcome.IsTimeout():
		w.stats.Timeouts++
	case outcome.IsCrash():
		if err := w.saveCrash(code, outcome.Signal); err != nil {
			return err
		}
		w.stats.Crashes++
	case outcome.Status != 0:
		w.stats.Incorrect++
	}
	w.stats.Iter++

	return nil
}

func (w *Worker) saveCrash(code string, signal int) error {
	rand := w.rng.Rand()
	name := filepath.Join("crashes", fmt.Sprintf("crash.%d.%d.%d.js", w.id, w.stats.Iter, rand))
	content := fmt.Sprintf("%s\n\n// Crash with Signal: %d\n", code, signal)
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		return zerrors.Wrapf(err, zerrors.KindFatal, "failed to write crash artifact %s", name)
	}
	return nil
}
