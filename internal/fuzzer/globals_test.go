package fuzzer

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"zebra/internal/jsruntime"
)

type recordingListener struct {
	calls int
	last  Stats
}

func (r *recordingListener) Report(snapshot Stats, runID uuid.UUID, elapsed time.Duration) {
	r.calls++
	r.last = snapshot
}

func TestGlobalsUpdateAccumulatesAcrossWorkers(t *testing.T) {
	g := NewGlobals("zebra", Settings{Threads: 2}, jsruntime.New())

	g.Update(Stats{Iter: 10})
	g.Update(Stats{Iter: 5, Crashes: 1})

	got := g.Snapshot()
	if got.Iter != 15 || got.Crashes != 1 {
		t.Fatalf("expected accumulated snapshot, got %+v", got)
	}
}

func TestGlobalsMainloopStopsOnSignal(t *testing.T) {
	g := NewGlobals("zebra", Settings{}, jsruntime.New())
	stop := make(chan struct{})

	done := make(chan struct{})
	go func() {
		g.Mainloop(stop, time.Now())
		close(done)
	}()

	close(stop)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("mainloop did not stop promptly after stop was closed")
	}
}

func TestGlobalsMainloopReportsToListeners(t *testing.T) {
	g := NewGlobals("zebra", Settings{}, jsruntime.New())
	listener := &recordingListener{}
	g.AddListener(listener)
	g.Update(Stats{Iter: 3})

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		g.Mainloop(stop, time.Now())
		close(done)
	}()

	time.Sleep(3200 * time.Millisecond)
	close(stop)
	<-done

	if listener.calls == 0 {
		t.Fatal("expected at least one report to the listener")
	}
	if listener.last.Iter != 3 {
		t.Fatalf("expected listener to observe Iter=3, got %+v", listener.last)
	}
}
