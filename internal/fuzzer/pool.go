package fuzzer

import (
	"context"

	"golang.org/x/sync/errgroup"

	"zebra/internal/execution"
	"zebra/internal/profiles"
)

// Pool is the teacher's WorkerPool narrowed to zebra's one job shape: run
// a Worker's fuzz loop until told to stop. golang.org/x/sync/errgroup
// replaces the teacher's hand-rolled WaitGroup + results channel since
// every worker here does the same thing and only the first fatal error
// matters.
type Pool struct {
	globals *Globals
	workers []*Worker
}

// NewPool builds one Worker per thread, each wired to its own Execution
// connection (REPL or Disk, per globals.Settings.Disk) against the
// selected engine profile.
func NewPool(globals *Globals) (*Pool, error) {
	profile := profiles.ByName(globals.Settings.Profile)

	workers := make([]*Worker, 0, globals.Settings.Threads)
	for i := 0; i < globals.Settings.Threads; i++ {
		exec, err := newExecution(globals, profile)
		if err != nil {
			for _, w := range workers {
				w.exec.Close()
			}
			return nil, err
		}
		workers = append(workers, NewWorker(i, globals, exec))
	}

	return &Pool{globals: globals, workers: workers}, nil
}

func newExecution(globals *Globals, profile profiles.Profile) (execution.Execution, error) {
	settings := globals.Settings
	args := append(append([]string{}, profile.Args(!settings.Disk)...), settings.EngineArgs...)

	if settings.Disk {
		return execution.NewDisk(settings.Filename, args, settings.TimeoutSeconds, 0), nil
	}
	return execution.NewREPL(settings.Filename, args, settings.TimeoutSeconds)
}

// Run starts every worker and blocks until all return: either stop closes,
// or any single worker returns a fatal error, in which case errgroup
// cancels the rest so Run doesn't wait on workers that would otherwise
// loop forever. It returns the first non-nil worker error.
func (p *Pool) Run(stop <-chan struct{}) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	for _, w := range p.workers {
		w := w
		g.Go(func() error {
			return w.Run(gctx.Done())
		})
	}
	return g.Wait()
}
