package fuzzer

import (
	"os"
	"path/filepath"
	"testing"

	"zebra/internal/execution"
	"zebra/internal/jsruntime"
)

// fakeExecution is a canned Execution stub so worker tests don't need a
// real target engine subprocess.
type fakeExecution struct {
	outcomes []execution.Outcome
	calls    int
	closed   bool
}

func (f *fakeExecution) Execute(input string) (execution.Outcome, error) {
	o := f.outcomes[f.calls%len(f.outcomes)]
	f.calls++
	return o, nil
}

func (f *fakeExecution) Close() { f.closed = true }

func chdirToTempRunDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "crashes"), 0o755); err != nil {
		t.Fatalf("mkdir crashes: %v", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(cwd) })
}

func TestFuzzOneCountsStatusAsIncorrectWhenNonzero(t *testing.T) {
	chdirToTempRunDir(t)
	globals := NewGlobals("zebra", Settings{}, jsruntime.New())
	fe := &fakeExecution{outcomes: []execution.Outcome{execution.StatusOutcome(1)}}
	w := NewWorker(0, globals, fe)

	if err := w.fuzzOne(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.stats.Iter != 1 || w.stats.Incorrect != 1 {
		t.Fatalf("expected Iter=1,Incorrect=1, got %+v", w.stats)
	}
}

func TestFuzzOneCountsTimeout(t *testing.T) {
	chdirToTempRunDir(t)
	globals := NewGlobals("zebra", Settings{}, jsruntime.New())
	fe := &fakeExecution{outcomes: []execution.Outcome{execution.TimeoutOutcome()}}
	w := NewWorker(0, globals, fe)

	if err := w.fuzzOne(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.stats.Timeouts != 1 {
		t.Fatalf("expected Timeouts=1, got %+v", w.stats)
	}
}

func TestFuzzOneSavesCrashArtifact(t *testing.T) {
	chdirToTempRunDir(t)
	globals := NewGlobals("zebra", Settings{}, jsruntime.New())
	fe := &fakeExecution{outcomes: []execution.Outcome{execution.CrashOutcome(11)}}
	w := NewWorker(0, globals, fe)

	if err := w.fuzzOne(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.stats.Crashes != 1 {
		t.Fatalf("expected Crashes=1, got %+v", w.stats)
	}

	entries, err := os.ReadDir("crashes")
	if err != nil {
		t.Fatalf("reading crashes dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one crash artifact, got %d", len(entries))
	}
}

func TestRunStopsOnDryRunAfterOneIteration(t *testing.T) {
	chdirToTempRunDir(t)
	globals := NewGlobals("zebra", Settings{DryRun: true}, jsruntime.New())
	fe := &fakeExecution{outcomes: []execution.Outcome{execution.StatusOutcome(0)}}
	w := NewWorker(0, globals, fe)

	if err := w.Run(make(chan struct{})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.stats.Iter != 1 {
		t.Fatalf("expected exactly one iteration under dry-run, got %+v", w.stats)
	}
	if !fe.closed {
		t.Fatal("expected Run to close the execution connection")
	}
}

func TestRunStopsPromptlyOnStopSignal(t *testing.T) {
	chdirToTempRunDir(t)
	globals := NewGlobals("zebra", Settings{}, jsruntime.New())
	fe := &fakeExecution{outcomes: []execution.Outcome{execution.StatusOutcome(0)}}
	w := NewWorker(0, globals, fe)

	stop := make(chan struct{})
	close(stop)

	if err := w.Run(stop); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
