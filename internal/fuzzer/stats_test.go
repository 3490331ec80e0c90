package fuzzer

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestStatsUpdateAccumulates(t *testing.T) {
	s := Stats{Iter: 10, Crashes: 1, Timeouts: 2, Incorrect: 3}
	s.Update(Stats{Iter: 5, Crashes: 1, Timeouts: 0, Incorrect: 1})

	if s.Iter != 15 || s.Crashes != 2 || s.Timeouts != 2 || s.Incorrect != 4 {
		t.Fatalf("unexpected accumulated stats: %+v", s)
	}
}

func TestStatsResetZeroesAllFields(t *testing.T) {
	s := Stats{Iter: 10, Crashes: 1, Timeouts: 2, Incorrect: 3}
	s.Reset()
	if s != (Stats{}) {
		t.Fatalf("expected zero value, got %+v", s)
	}
}

func TestStatsPrintIncludesAllFields(t *testing.T) {
	s := Stats{Iter: 100, Crashes: 2, Timeouts: 3, Incorrect: 5}
	var buf bytes.Buffer
	s.Print(&buf, time.Now().Add(-10*time.Second))

	out := buf.String()
	for _, want := range []string{"fcps", "Timeouts", "Crashes", "Incorrect Cases", "Correctness", "Runtime", "Total Cases"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestStatsPrintHandlesZeroIterations(t *testing.T) {
	var s Stats
	var buf bytes.Buffer
	s.Print(&buf, time.Now())
	if strings.Contains(buf.String(), "NaN") {
		t.Fatalf("expected no NaN with zero iterations, got:\n%s", buf.String())
	}
}
