package main

import (
	"fmt"
	"strconv"

	"zebra/internal/fuzzer"
)

// defaultFilename has no sensible hardcoded path in this port (the
// original defaulted to its author's local jsc checkout); -f/--file is
// effectively required here, and an empty filename fails fast inside
// fuzzer.NewPool rather than silently trying to exec an empty path.
const defaultFilename = ""

const (
	defaultThreads = 1
	defaultTimeout = 5
)

// parseArgs scans argv the same way the original did: a flat pass with a
// skip flag for flags that consume the following argument, rather than a
// flag-parsing library. Returns (nil, nil) when -h/--help was seen and
// already handled (the caller should exit 0 without further action), and
// (nil, err) on a genuine parse error, matching the original returning
// out of main() on Err without starting the fuzzer.
func parseArgs(argv []string) (*fuzzer.Settings, error) {
	settings := fuzzer.Settings{
		DryRun:         false,
		Threads:        defaultThreads,
		Filename:       defaultFilename,
		TimeoutSeconds: defaultTimeout,
		Disk:           false,
	}

	skip := false
	for i, value := range argv[1:] {
		if skip {
			skip = false
			continue
		}

		switch value {
		case "--dry-run":
			settings.DryRun = true

		case "-d", "--disk":
			settings.Disk = true

		case "-f", "--file":
			name, ok := argAt(argv, i+2)
			if !ok {
				return nil, fmt.Errorf("please specify the filename")
			}
			settings.Filename = name
			skip = true

		case "-j", "--jobs":
			raw, ok := argAt(argv, i+2)
			if !ok {
				return nil, fmt.Errorf("please specify the number of jobs")
			}
			jobs, err := strconv.Atoi(raw)
			if err != nil || jobs <= 0 {
				return nil, fmt.Errorf("please specify a valid number for the no. of jobs")
			}
			settings.Threads = jobs
			skip = true

		case "-t", "--timeout":
			raw, ok := argAt(argv, i+2)
			if !ok {
				return nil, fmt.Errorf("please specify the timeout value in seconds")
			}
			timeout, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("please specify a valid number for the timeout")
			}
			settings.TimeoutSeconds = uint32(timeout)
			skip = true

		case "-m", "--monitor":
			addr, ok := argAt(argv, i+2)
			if !ok {
				return nil, fmt.Errorf("please specify the address to serve the monitor on")
			}
			settings.MonitorAddr = addr
			skip = true

		case "--statsdb":
			path, ok := argAt(argv, i+2)
			if !ok {
				return nil, fmt.Errorf("please specify the statsdb path")
			}
			settings.StatsDBPath = path
			skip = true

		case "-h", "--help":
			printHelp()
			return nil, nil

		default:
			fmt.Println("Invalid arg passed:", value)
		}
	}

	return &settings, nil
}

// argAt mirrors cmdline.get(idx): idx indexes argv itself. The loop above
// enumerates argv[1:], so a flag at loop position i is argv[i+1] and its
// value is fetched with argAt(argv, i+2).
func argAt(argv []string, idx int) (string, bool) {
	if idx < 0 || idx >= len(argv) {
		return "", false
	}
	return argv[idx], true
}

func printHelp() {
	fmt.Print(`
Usage: ./zebra [OPTIONS]

Options -

    -h, --help                     Print this help menu and exit

    --dry-run                      Just generate a program, print it out to stdout, execute it and exit.
                                    This is false by default.

    -d, --disk                     Tell the fuzzer to save testcases into a file and then use those as args to the engine.
                                    This will result in lots of writes to disk.
                                    If this is not specified, then the fuzzer will pass testcases via a memory mapped
                                    file; this requires the engine being fuzzed to have the matching REPL patch applied.
                                    This is false by default.

    -j, --jobs <nthreads>          No. of threads to use to run the fuzzer.
                                    Default value of 1 thread.

    -f, --file <path/to/jsengine>  The full path of the js engine to fuzz.

    -t, --timeout <timeout in secs> The timeout that is to be applied for each run of the engine.
                                    Default value of 5 seconds.

    -m, --monitor <addr>           Serve a live JSON stats feed over a websocket at this address,
                                    e.g. ":8089". Disabled by default.

    --statsdb <path>                Record one row of summary stats for this run to a SQLite
                                    database at this path. Disabled by default.
`)
}
