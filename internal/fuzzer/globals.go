package fuzzer

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"zebra/internal/jsruntime"
)

// Listener receives a snapshot of the aggregate stats every time Globals'
// reporting loop prints them. internal/monitor implements this to forward
// the same snapshot over a websocket; it is the only coupling between the
// two packages; Globals has no idea whether anyone is listening.
type Listener interface {
	Report(snapshot Stats, runID uuid.UUID, elapsed time.Duration)
}

// Globals holds everything that stays constant across a fuzzing run and is
// shared read-only (except Stats, which is lock-guarded) by every worker:
// the settings the CLI resolved, the runtime catalogue every Program draws
// from, and the aggregate stats workers periodically fold into.
type Globals struct {
	ProgramName string
	Settings    Settings
	JSRuntime   *jsruntime.JSRuntime
	RunID       uuid.UUID
	// ClearScreen, when set, has Mainloop emit a clear-screen escape
	// sequence before each stats block, the behavior the original left
	// commented out. cmd/zebra sets this only when stdout is a real
	// terminal (via go-isatty), since the escape codes are noise when
	// stdout is redirected to a file or pipe.
	ClearScreen bool

	mu        sync.RWMutex
	stats     Stats
	listeners []Listener
}

// NewGlobals builds the shared state for one fuzzing run.
func NewGlobals(programName string, settings Settings, runtime *jsruntime.JSRuntime) *Globals {
	return &Globals{
		ProgramName: programName,
		Settings:    settings,
		JSRuntime:   runtime,
		RunID:       uuid.New(),
	}
}

// AddListener registers a stats observer. Not safe to call concurrently
// with Mainloop; register listeners before starting the pool.
func (g *Globals) AddListener(l Listener) {
	g.listeners = append(g.listeners, l)
}

// Update folds a worker's interval stats into the shared aggregate.
func (g *Globals) Update(stats Stats) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stats.Update(stats)
}

// Snapshot returns a copy of the current aggregate stats.
func (g *Globals) Snapshot() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.stats
}

// Mainloop is the reporting loop run on the main goroutine: print the
// aggregate stats every 3 seconds, forwarding the same snapshot to any
// registered listeners, until ctx-equivalent stop channel closes.
func (g *Globals) Mainloop(stop <-chan struct{}, start time.Time) {
	ticker := time.NewTicker(3000 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if g.ClearScreen {
				fmt.Fprint(os.Stdout, "\033[2J\033[1;1H")
			}
			snapshot := g.Snapshot()
			snapshot.Print(os.Stdout, start)
			for _, l := range g.listeners {
				l.Report(snapshot, g.RunID, time.Since(start))
			}
		}
	}
}
