package execution

import (
	"encoding/binary"
	"os"
	"os/exec"
	"testing"

	"golang.org/x/sys/unix"
)

// TestMain re-execs this test binary as a fake REPL-speaking engine when
// the helper-process env var is set, the same pattern os/exec's own tests
// use to drive real child processes without a separate fixture binary.
func TestMain(m *testing.M) {
	if mode := os.Getenv("ZEBRA_REPL_HELPER"); mode != "" {
		runReplHelper(mode)
		os.Exit(0)
	}
	os.Exit(m.Run())
}

func runReplHelper(mode string) {
	send := func(tag uint32) {
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], tag)
		unix.Write(cwfd, buf[:])
	}
	recv4 := func() ([4]byte, bool) {
		var buf [4]byte
		n, err := unix.Read(crfd, buf[:])
		return buf, err == nil && n == 4
	}
	recv8 := func() (uint64, bool) {
		var buf [8]byte
		n, err := unix.Read(crfd, buf[:])
		return binary.LittleEndian.Uint64(buf[:]), err == nil && n == 8
	}

	send(ctrlHelo)
	if _, ok := recv4(); !ok {
		os.Exit(1)
	}

	switch mode {
	case "status":
		if _, ok := recv4(); !ok {
			os.Exit(1)
		}
		if _, ok := recv8(); !ok {
			os.Exit(1)
		}
		send(42)
	case "timeout":
		select {} // never responds to exec; the harness's poll must time out
	case "crash":
		if _, ok := recv4(); !ok {
			os.Exit(1)
		}
		if _, ok := recv8(); !ok {
			os.Exit(1)
		}
		unix.Kill(os.Getpid(), unix.SIGSEGV)
	}
}

// newHelperREPL builds a REPL whose target is this test binary as the REPL's target, in helper mode.
func newHelperREPL(t *testing.T, mode string, timeoutSeconds uint32) *REPL {
	t.Helper()
	self, err := os.Executable()
	if err != nil {
		t.Fatalf("os.Executable: %v", err)
	}

	r := &REPL{path: self, args: []string{"-test.run=^$"}, timeoutSeconds: timeoutSeconds, ctrlWriteFd: -1, ctrlReadFd: -1}
	// init() uses os.StartProcess directly rather than exec.Command, so
	// env vars must be threaded through the process's own environment;
	// set it for the duration of spawning via os.Setenv since
	// os.StartProcess inherits the ambient environment by default when
	// ProcAttr.Env is nil... but we need ZEBRA_REPL_HELPER set only for
	// the child. Set and restore around init().
	old, hadOld := os.LookupEnv("ZEBRA_REPL_HELPER")
	os.Setenv("ZEBRA_REPL_HELPER", mode)
	err = r.init()
	if hadOld {
		os.Setenv("ZEBRA_REPL_HELPER", old)
	} else {
		os.Unsetenv("ZEBRA_REPL_HELPER")
	}
	if err != nil {
		t.Fatalf("repl init: %v", err)
	}
	t.Cleanup(r.Close)
	return r
}

func TestReplExecuteReturnsStatus(t *testing.T) {
	if _, err := exec.LookPath("/bin/sh"); err != nil {
		t.Skip("no shell available in this environment")
	}
	r := newHelperREPL(t, "status", 5)

	outcome, err := r.executeOnce("var x = 1;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Kind != OutcomeStatus || outcome.Status != 42 {
		t.Fatalf("expected Status(42), got %s", outcome)
	}
}

func TestReplExecuteTimesOut(t *testing.T) {
	r := newHelperREPL(t, "timeout", 1)

	outcome, err := r.executeOnce("var x = 1;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.IsTimeout() {
		t.Fatalf("expected a timeout outcome, got %s", outcome)
	}
}

func TestReplExecuteClassifiesCrash(t *testing.T) {
	r := newHelperREPL(t, "crash", 5)

	outcome, err := r.Execute("var x = 1;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.IsCrash() {
		t.Fatalf("expected a crash outcome, got %s", outcome)
	}
}
