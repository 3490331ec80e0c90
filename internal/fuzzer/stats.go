package fuzzer

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
)

// Stats accumulates one worker's (or the aggregate pool's) counters for a
// reporting interval.
type Stats struct {
	Iter      uint64
	Crashes   uint64
	Timeouts  uint64
	Incorrect uint64
}

// Reset zeroes every counter, used after a worker flushes into Globals.
func (s *Stats) Reset() {
	*s = Stats{}
}

// Update accumulates other's counters into s.
func (s *Stats) Update(other Stats) {
	s.Iter += other.Iter
	s.Crashes += other.Crashes
	s.Timeouts += other.Timeouts
	s.Incorrect += other.Incorrect
}

// Print renders the same fixed-format block the original printed every
// reporting tick, with humanize formatting where the original used bare
// floats and integers.
func (s Stats) Print(w io.Writer, start time.Time) {
	elapsed := time.Since(start)

	var correctness float64
	if s.Iter > 0 {
		correctness = 100.0 - (float64(s.Incorrect+s.Timeouts)/float64(s.Iter))*100.0
	}

	var fcps float64
	if secs := elapsed.Seconds(); secs > 0 {
		fcps = float64(s.Iter) / secs
	}

	fmt.Fprintf(w, `
-----------------------
fcps            = %s/s
Timeouts        = %s
Crashes         = %s
Incorrect Cases = %s
Correctness     = %.2f%%
Runtime         = %s
Total Cases     = %s
`,
		humanize.Commaf(fcps),
		humanize.Comma(int64(s.Timeouts)),
		humanize.Comma(int64(s.Crashes)),
		humanize.Comma(int64(s.Incorrect)),
		correctness,
		elapsed.Round(time.Second),
		humanize.Comma(int64(s.Iter)),
	)
}
