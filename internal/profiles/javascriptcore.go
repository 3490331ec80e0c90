package profiles

// JavaScriptCore carries the flags fuzzer.rs left commented out with a
// "make a profile like fuzzilli" TODO: REPL mode, concurrent JIT
// disabled, and every tier's warmup threshold turned down so functions
// reach the DFG/FTL tiers within a short fuzzing run.
type JavaScriptCore struct{}

func (JavaScriptCore) Name() string { return "javascriptcore" }

func (JavaScriptCore) Args(repl bool) []string {
	args := []string{
		"--validateOptions=true",
		"--useConcurrentJIT=false",
		"--thresholdForJITSoon=10",
		"--thresholdForJITAfterWarmUp=10",
		"--thresholdForOptimizeAfterWarmUp=100",
		"--thresholdForOptimizeAfterLongWarmUp=100",
		"--thresholdForOptimizeSoon=100",
		"--thresholdForFTLOptimizeAfterWarmUp=1000",
		"--thresholdForFTLOptimizeSoon=1000",
	}
	if repl {
		args = append([]string{"-repl"}, args...)
	}
	return args
}
