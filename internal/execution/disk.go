package execution

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"

	"zebra/internal/rng"
	"zebra/internal/zerrors"
)

// Disk runs the target engine fresh for every input, for engines without
// the REPL patch: write the program to ./tests/testfile_<n>.js, spawn the
// engine with it appended to the configured flags, and classify the exit.
//
// The original spawns the child with a pre-exec hook that calls alarm(2)
// on itself so a hang self-terminates with SIGALRM. Go's os/exec has no
// pre-exec hook, so Disk arms a parent-side timer that signals the child
// instead; the exit classification (SIGALRM -> Timeout, any other signal
// -> Crash) is unchanged.
type Disk struct {
	path    string
	args    []string
	timeout time.Duration
	rng     *rng.Random
}

// NewDisk builds a Disk harness. seed drives the per-iteration test
// filename, mirroring the original's TSC-derived name.
func NewDisk(path string, args []string, timeoutSeconds uint32, seed uint64) *Disk {
	return &Disk{
		path:    path,
		args:    args,
		timeout: time.Duration(timeoutSeconds) * time.Second,
		rng:     rng.New(seed),
	}
}

func (d *Disk) Execute(input string) (Outcome, error) {
	filename := fmt.Sprintf("tests/testfile_%d.js", d.rng.Rand())
	if err := os.WriteFile(filename, []byte(input), 0o644); err != nil {
		return Outcome{}, zerrors.Wrapf(err, zerrors.KindFatal, "failed to write test file %s", filename)
	}

	args := append(append([]string{}, d.args...), filename)
	cmd := exec.Command(d.path, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return Outcome{}, zerrors.Wrapf(err, zerrors.KindFatal, "failed to execute target process")
	}

	timer := time.AfterFunc(d.timeout, func() {
		_ = cmd.Process.Signal(syscall.SIGALRM)
	})
	waitErr := cmd.Wait()
	timer.Stop()

	if waitErr == nil {
		return StatusOutcome(0), nil
	}

	var exitErr *exec.ExitError
	if !errors.As(waitErr, &exitErr) {
		return Outcome{}, zerrors.Wrapf(waitErr, zerrors.KindFatal, "error waiting for target process")
	}

	ws, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok {
		return Outcome{}, zerrors.New(zerrors.KindFatal, "unexpected wait status type")
	}
	if ws.Exited() {
		return StatusOutcome(ws.ExitStatus()), nil
	}
	if ws.Signaled() && ws.Signal() == syscall.SIGALRM {
		return TimeoutOutcome(), nil
	}
	return CrashOutcome(int(ws.Signal())), nil
}

func (d *Disk) Close() {}
