// Command zebra is a coverage-agnostic, generation-based fuzzer for
// JavaScript engines: it builds random typed IR programs, lifts them to JS
// source, and drives a target engine subprocess either over a REPL control
// pipe or fresh-per-input from disk.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"

	"zebra/internal/fuzzer"
	"zebra/internal/jsruntime"
	"zebra/internal/monitor"
	"zebra/internal/statsdb"
)

func main() {
	settings, err := parseArgs(os.Args)
	if err != nil {
		fmt.Println("Invalid cmd line syntax found:", err)
		printHelp()
		return
	}
	if settings == nil {
		// -h/--help already printed and asked for an immediate, successful exit.
		return
	}

	if err := prepareDirs(); err != nil {
		fmt.Println("Error occurred while creating the directories:", err)
		return
	}

	run(*settings)
}

// run builds the shared runtime catalogue and worker pool and drives the
// fuzzing session to completion (dry runs) or until SIGINT (normal runs).
func run(settings fuzzer.Settings) {
	start := time.Now()

	runtime := jsruntime.New()
	globals := fuzzer.NewGlobals("zebra", settings, runtime)
	globals.ClearScreen = isatty.IsTerminal(os.Stdout.Fd())

	if settings.MonitorAddr != "" {
		mon := monitor.New(settings.MonitorAddr)
		if err := mon.Start(); err != nil {
			fmt.Println("Failed to start monitor:", err)
			os.Exit(-1)
		}
		defer mon.Stop()
		globals.AddListener(mon)
	}

	var statsDB *statsdb.DB
	if settings.StatsDBPath != "" {
		var err error
		statsDB, err = statsdb.Open(settings.StatsDBPath)
		if err != nil {
			fmt.Println("Failed to open statsdb:", err)
			os.Exit(-1)
		}
		defer statsDB.Close()
	}

	pool, err := fuzzer.NewPool(globals)
	if err != nil {
		fmt.Println("Failed to start fuzzing pool:", err)
		os.Exit(-1)
	}

	stop := make(chan struct{})
	done := make(chan error, 1)
	go func() { done <- pool.Run(stop) }()

	if settings.DryRun {
		if err := <-done; err != nil {
			fmt.Println("Fuzzing pool exited with an error:", err)
			os.Exit(-1)
		}
		recordFinalStats(statsDB, globals, start, settings)
		return
	}

	go globals.Mainloop(stop, start)

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, syscall.SIGINT)

	select {
	case <-sigint:
		// Matches the original's handler: exit immediately, no cleanup, but
		// os.Exit skips deferred Close calls, so record the final row first.
		recordFinalStats(statsDB, globals, start, settings)
		os.Exit(-1)
	case err := <-done:
		recordFinalStats(statsDB, globals, start, settings)
		if err != nil {
			fmt.Println("Fuzzing pool exited with an error:", err)
			os.Exit(-1)
		}
	}
}

// recordFinalStats appends the run's aggregate snapshot to the statsdb
// store, if one was opened. Best-effort: a write failure is reported but
// never blocks process exit.
func recordFinalStats(statsDB *statsdb.DB, globals *fuzzer.Globals, start time.Time, settings fuzzer.Settings) {
	if statsDB == nil {
		return
	}
	snapshot := globals.Snapshot()
	const baseWorkerSeed = 1 // fixed placeholder: workers seed their RNGs from the clock (rng.New(0))
	if err := statsDB.RecordRun(context.Background(), globals.RunID, start, baseWorkerSeed, settings.Profile, snapshot); err != nil {
		fmt.Println("Failed to record run stats:", err)
	}
}

// prepareDirs creates the directories the fuzzer writes testcases and
// crash artifacts into.
func prepareDirs() error {
	if err := os.MkdirAll("./tests", 0o755); err != nil {
		return err
	}
	return os.MkdirAll("./crashes", 0o755)
}
