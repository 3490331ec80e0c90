package profiles

// SpiderMonkey is the profile fuzzer.rs built inline: low warmup
// thresholds so Baseline and Ion tier up quickly, range-analysis and
// extra-checks enabled, and the engine's own fuzzing-safe mode.
type SpiderMonkey struct{}

func (SpiderMonkey) Name() string { return "spidermonkey" }

func (SpiderMonkey) Args(repl bool) []string {
	args := []string{
		"--baseline-warmup-threshold=10",
		"--ion-warmup-threshold=100",
		"--ion-check-range-analysis",
		"--ion-extra-checks",
		"--fuzzing-safe",
	}
	if repl {
		args = append(args, "--reprl")
	}
	return args
}
