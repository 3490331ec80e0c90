package statsdb

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"zebra/internal/fuzzer"
)

func TestRecordAndReadBackRun(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	runID := uuid.New()
	started := time.Now().Add(-time.Minute)

	snapshot := fuzzer.Stats{Iter: 100, Crashes: 2, Timeouts: 3, Incorrect: 4}
	if err := db.RecordRun(ctx, runID, started, 42, "spidermonkey", snapshot); err != nil {
		t.Fatalf("record run: %v", err)
	}

	runs, err := db.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}

	got := runs[0]
	if got.ID != runID.String() {
		t.Fatalf("expected id %s, got %s", runID, got.ID)
	}
	if got.Seed != 42 || got.Engine != "spidermonkey" {
		t.Fatalf("unexpected seed/engine: %+v", got)
	}
	if got.Iterations != 100 || got.Crashes != 2 || got.Timeouts != 3 || got.Incorrect != 4 {
		t.Fatalf("unexpected counters: %+v", got)
	}
}

func TestRecordRunUpsertsOnRepeatedID(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	runID := uuid.New()
	started := time.Now()

	if err := db.RecordRun(ctx, runID, started, 1, "jsc", fuzzer.Stats{Iter: 10}); err != nil {
		t.Fatalf("first record: %v", err)
	}
	if err := db.RecordRun(ctx, runID, started, 1, "jsc", fuzzer.Stats{Iter: 20}); err != nil {
		t.Fatalf("second record: %v", err)
	}

	runs, err := db.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected upsert to keep a single row, got %d", len(runs))
	}
	if runs[0].Iterations != 20 {
		t.Fatalf("expected the latest snapshot to win, got %d iterations", runs[0].Iterations)
	}
}

func TestRecentRunsRespectsLimit(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		id := uuid.New()
		if err := db.RecordRun(ctx, id, time.Now(), int64(i), "spidermonkey", fuzzer.Stats{Iter: uint64(i)}); err != nil {
			t.Fatalf("record run %d: %v", i, err)
		}
	}

	runs, err := db.RecentRuns(ctx, 2)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected limit of 2 runs, got %d", len(runs))
	}
}
