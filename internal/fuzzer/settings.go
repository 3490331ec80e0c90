package fuzzer

// Settings is the Go equivalent of the original's CmdLineOptions: the
// resolved configuration a fuzzing run operates under, built once by CLI
// parsing and then treated as read-only by every worker.
type Settings struct {
	// DryRun runs each worker for a single iteration, printing the
	// generated code, instead of looping forever.
	DryRun bool
	// Threads is the number of concurrent fuzzing workers.
	Threads int
	// Filename is the path to the target engine binary.
	Filename string
	// EngineArgs are extra flags appended after the selected profile's own
	// flags, for engine options the profile doesn't already cover.
	EngineArgs []string
	// TimeoutSeconds bounds both the REPL poll and the Disk-mode alarm.
	TimeoutSeconds uint32
	// Disk selects the Disk-mode executor instead of the REPL harness.
	Disk bool
	// Profile names the engine profile (e.g. "spidermonkey", "jsc").
	Profile string
	// MonitorAddr, when non-empty, has cmd/zebra serve a live stats feed
	// over a websocket at this address (e.g. ":8089").
	MonitorAddr string
	// StatsDBPath, when non-empty, has cmd/zebra record one row of summary
	// stats for this run to a SQLite database at this path.
	StatsDBPath string
}
