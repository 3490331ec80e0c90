// Package profiles supplies the per-engine command-line flag sets a Fuzzer
// passes to its target binary. The original carried only a bare Profile
// trait and a ProfileType enum with no concrete implementation: the
// SpiderMonkey flags lived inline in the fuzzer constructor and the
// JavaScriptCore flags sat in a commented-out block marked as a TODO to
// build a profile for. This package turns both into real, selectable
// profiles.
package profiles

// Profile supplies the flags a target engine binary needs for safe,
// fast, deterministic-enough fuzzing: warmup thresholds turned down so
// JIT tiers engage quickly, and any flags that disable background
// threads or non-fuzzing-safe behavior.
type Profile interface {
	// Name identifies the profile, used in CLI selection and logging.
	Name() string
	// Args returns the engine flags for this profile. repl is true when
	// the target is being driven over the REPL control-pipe protocol
	// rather than spawned fresh per input (Disk mode).
	Args(repl bool) []string
}

// ByName resolves a profile name to its implementation. The empty string
// and "spidermonkey" both resolve to SpiderMonkey, the original's only
// wired profile.
func ByName(name string) Profile {
	switch name {
	case "jsc", "javascriptcore":
		return JavaScriptCore{}
	case "", "spidermonkey", "sm":
		return SpiderMonkey{}
	default:
		return SpiderMonkey{}
	}
}
