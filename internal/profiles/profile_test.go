package profiles

import (
	"slices"
	"testing"
)

func TestSpiderMonkeyAddsReprlOnlyForRepl(t *testing.T) {
	sm := SpiderMonkey{}
	if slices.Contains(sm.Args(false), "--reprl") {
		t.Fatal("disk-mode args should not include --reprl")
	}
	if !slices.Contains(sm.Args(true), "--reprl") {
		t.Fatal("repl-mode args should include --reprl")
	}
}

func TestJavaScriptCoreAddsReplFlagOnlyForRepl(t *testing.T) {
	jsc := JavaScriptCore{}
	if slices.Contains(jsc.Args(false), "-repl") {
		t.Fatal("disk-mode args should not include -repl")
	}
	if !slices.Contains(jsc.Args(true), "-repl") {
		t.Fatal("repl-mode args should include -repl")
	}
}

func TestByNameDefaultsToSpiderMonkey(t *testing.T) {
	if _, ok := ByName("").(SpiderMonkey); !ok {
		t.Fatal("expected empty name to resolve to SpiderMonkey")
	}
	if _, ok := ByName("bogus").(SpiderMonkey); !ok {
		t.Fatal("expected unknown name to fall back to SpiderMonkey")
	}
	if _, ok := ByName("jsc").(JavaScriptCore); !ok {
		t.Fatal("expected \"jsc\" to resolve to JavaScriptCore")
	}
}
