package execution

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"zebra/internal/zerrors"
)

// Fd numbers the target engine's REPL patch expects its control channel
// and shared data region bound to.
const (
	crfd = 100 // child reads control commands here
	cwfd = 101 // child writes control replies here
	drfd = 102 // shared program-source region
)

// maxSize bounds both the memfd backing store and a single program's
// transferred length.
const maxSize = 0x10000

// Control tags, sent/received as the little-endian encoding of their
// four ASCII bytes (e.g. "HELO" -> 0x4f4c4548), matching the patched
// engine's raw 4-byte reads of an int.
const (
	ctrlHelo uint32 = 0x4f4c4548
	ctrlExec uint32 = 0x63657865
	ctrlExit uint32 = 0x74697865
)

type ctrlCmd struct {
	tag  uint32
	misc int32
}

func (c ctrlCmd) isHelo() bool { return c.tag == ctrlHelo }
func (c ctrlCmd) isMisc() bool { return c.tag != ctrlHelo && c.tag != ctrlExec && c.tag != ctrlExit }

// errTimeout signals that a control-fd poll elapsed with nothing to read.
var errTimeout = zerrors.New(zerrors.KindTimeout, "repl poll timed out")

// REPL drives a target engine patched to speak the HELO/exec/exit control
// protocol over fds 100/101/102, sharing program source through a memfd
// mapping. One REPL instance owns one live child at a time; a failed
// execute re-initializes the connection once before giving up fatally,
// matching the original's single-retry policy.
type REPL struct {
	path           string
	args           []string
	timeoutSeconds uint32

	dataFile    *os.File
	mapping     []byte
	ctrlWriteFd int
	ctrlReadFd  int
	proc        *os.Process
}

// NewREPL spawns path and completes the HELO handshake, or returns a
// KindFatal error if either fails.
func NewREPL(path string, args []string, timeoutSeconds uint32) (*REPL, error) {
	r := &REPL{path: path, args: args, timeoutSeconds: timeoutSeconds, ctrlWriteFd: -1, ctrlReadFd: -1}
	if err := r.init(); err != nil {
		r.reset()
		return nil, zerrors.Wrap(err, zerrors.KindFatal, "repl connection initialization failure")
	}
	return r, nil
}

func (r *REPL) init() error {
	r.reset()

	fd, err := unix.MemfdCreate("SHMRegion", unix.MFD_CLOEXEC)
	if err != nil {
		return zerrors.Wrapf(err, zerrors.KindProtocol, "memfd_create")
	}
	dataFile := os.NewFile(uintptr(fd), "zebra-shm-region")

	if err := unix.Ftruncate(fd, maxSize); err != nil {
		dataFile.Close()
		return zerrors.Wrapf(err, zerrors.KindProtocol, "ftruncate")
	}

	mapping, err := unix.Mmap(fd, 0, maxSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		dataFile.Close()
		return zerrors.Wrapf(err, zerrors.KindProtocol, "mmap")
	}

	var parentToChild, childToParent [2]int
	if err := unix.Pipe2(parentToChild[:], 0); err != nil {
		unix.Munmap(mapping)
		dataFile.Close()
		return zerrors.Wrapf(err, zerrors.KindProtocol, "pipe")
	}
	if err := unix.Pipe2(childToParent[:], 0); err != nil {
		unix.Close(parentToChild[0])
		unix.Close(parentToChild[1])
		unix.Munmap(mapping)
		dataFile.Close()
		return zerrors.Wrapf(err, zerrors.KindProtocol, "pipe")
	}

	childCtrlRead := os.NewFile(uintptr(parentToChild[0]), "ctrl-read")
	childCtrlWrite := os.NewFile(uintptr(childToParent[1]), "ctrl-write")

	devNull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		childCtrlRead.Close()
		childCtrlWrite.Close()
		unix.Munmap(mapping)
		dataFile.Close()
		return zerrors.Wrapf(err, zerrors.KindProtocol, "open /dev/null")
	}

	files := make([]*os.File, drfd+1)
	files[0] = os.Stdin
	files[1] = devNull
	files[2] = devNull
	files[crfd] = childCtrlRead
	files[cwfd] = childCtrlWrite
	files[drfd] = dataFile

	argv := append([]string{r.path}, r.args...)
	proc, err := os.StartProcess(r.path, argv, &os.ProcAttr{Files: files})

	// The child now owns its own dup of these; close the parent's copies
	// of the child-side ends regardless of spawn success.
	childCtrlRead.Close()
	childCtrlWrite.Close()
	devNull.Close()

	if err != nil {
		unix.Close(parentToChild[1])
		unix.Close(childToParent[0])
		unix.Munmap(mapping)
		dataFile.Close()
		return zerrors.Wrapf(err, zerrors.KindFatal, "failed to execute target process")
	}

	r.dataFile = dataFile
	r.mapping = mapping
	r.ctrlWriteFd = parentToChild[1]
	r.ctrlReadFd = childToParent[0]
	r.proc = proc

	cmd, err := r.recvCmd()
	if err != nil {
		return err
	}
	if !cmd.isHelo() {
		return zerrors.New(zerrors.KindProtocol, "incorrect msg received during handshake")
	}
	return r.sendCmd(ctrlHelo)
}

// reset tears the connection down, killing the child if still running and
// closing every resource. After reset, the REPL is in its zero state and
// the next Execute call will re-init.
func (r *REPL) reset() {
	if r.proc != nil {
		r.proc.Kill()
		r.proc.Wait()
		r.proc = nil
	}
	if r.dataFile != nil {
		if err := r.dataFile.Close(); err != nil {
			// Closing the shared-memory fd should never fail; if it does
			// the process is in a state we don't trust enough to keep
			// running in.
			panic(fmt.Sprintf("failed to close repl data fd: %v", err))
		}
		r.dataFile = nil
	}
	if r.ctrlWriteFd != -1 {
		unix.Close(r.ctrlWriteFd)
		r.ctrlWriteFd = -1
	}
	if r.ctrlReadFd != -1 {
		unix.Close(r.ctrlReadFd)
		r.ctrlReadFd = -1
	}
	if r.mapping != nil {
		unix.Munmap(r.mapping)
		r.mapping = nil
	}
}

// Close tears the connection down permanently.
func (r *REPL) Close() { r.reset() }

// Execute runs input against the target, retrying once with a fresh
// connection on failure. A second failure is fatal.
func (r *REPL) Execute(input string) (Outcome, error) {
	outcome, err := r.executeOnce(input)
	if err == nil {
		return outcome, nil
	}

	r.reset()
	if err := r.init(); err != nil {
		return Outcome{}, zerrors.Wrap(err, zerrors.KindFatal, "repl reinitialization failure")
	}

	outcome, err = r.executeOnce(input)
	if err != nil {
		return Outcome{}, zerrors.Wrap(err, zerrors.KindFatal, "repl execution failure")
	}
	return outcome, nil
}

func (r *REPL) executeOnce(input string) (Outcome, error) {
	if !r.isInitialized() {
		if err := r.init(); err != nil {
			return Outcome{}, err
		}
	}

	if _, err := r.dataFile.Seek(0, io.SeekStart); err != nil {
		return Outcome{}, zerrors.Wrapf(err, zerrors.KindProtocol, "lseek")
	}

	size := len(input)
	if size > maxSize-1 {
		size = maxSize - 1
	}
	copy(r.mapping, input[:size])

	if err := r.sendCmd(ctrlExec); err != nil {
		return Outcome{}, err
	}
	if err := r.sendU64(uint64(size)); err != nil {
		return Outcome{}, err
	}

	cmd, err := r.recvCmd()
	switch {
	case err == errTimeout:
		r.reset()
		return TimeoutOutcome(), nil
	case err != nil:
		return r.classifyCrash()
	case cmd.isMisc():
		return StatusOutcome(int(cmd.misc)), nil
	default:
		return Outcome{}, zerrors.New(zerrors.KindProtocol, "invalid message received")
	}
}

// classifyCrash waits briefly for the child's exit status once a control
// read has already failed, and tells a signaled death from a surprising
// clean exit. The original's busy-poll try_wait loop (10 iterations of a
// 10us sleep) becomes a single bounded wait here since os.Process.Wait
// blocks until the child is reaped rather than offering a non-blocking
// poll.
func (r *REPL) classifyCrash() (Outcome, error) {
	type waitResult struct {
		state *os.ProcessState
		err   error
	}
	done := make(chan waitResult, 1)
	go func() {
		state, err := r.proc.Wait()
		done <- waitResult{state, err}
	}()

	select {
	case res := <-done:
		r.reset()
		if res.err != nil {
			return Outcome{}, zerrors.Wrapf(res.err, zerrors.KindProtocol, "error in wait")
		}
		ws := res.state.Sys().(syscall.WaitStatus)
		if ws.Exited() {
			return StatusOutcome(ws.ExitStatus()), nil
		}
		return CrashOutcome(int(ws.Signal())), nil
	case <-time.After(100 * time.Millisecond):
		r.reset()
		return Outcome{}, zerrors.New(zerrors.KindProtocol, "poll succeeded but read failed")
	}
}

func (r *REPL) recvCmd() (ctrlCmd, error) {
	pfd := []unix.PollFd{{Fd: int32(r.ctrlReadFd), Events: unix.POLLIN}}
	n, err := unix.Poll(pfd, int(r.timeoutSeconds)*1000)
	if err != nil {
		return ctrlCmd{}, zerrors.Wrapf(err, zerrors.KindProtocol, "poll")
	}
	if n == 0 {
		return ctrlCmd{}, errTimeout
	}

	var buf [4]byte
	nread, err := unix.Read(r.ctrlReadFd, buf[:])
	if err != nil || nread != 4 {
		return ctrlCmd{}, zerrors.Newf(zerrors.KindProtocol, "short control read: %d bytes, err=%v", nread, err)
	}

	tag := binary.LittleEndian.Uint32(buf[:])
	return ctrlCmd{tag: tag, misc: int32(tag)}, nil
}

func (r *REPL) sendCmd(tag uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], tag)
	n, err := unix.Write(r.ctrlWriteFd, buf[:])
	if err != nil || n != 4 {
		return zerrors.Wrapf(err, zerrors.KindProtocol, "write control command")
	}
	return nil
}

func (r *REPL) sendU64(v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	n, err := unix.Write(r.ctrlWriteFd, buf[:])
	if err != nil || n != 8 {
		return zerrors.Wrapf(err, zerrors.KindProtocol, "write size")
	}
	return nil
}

// isInitialized reports whether the connection looks usable: resources
// allocated and the child still alive. It does not reap the child; a
// dying-but-not-yet-reaped child is caught by the next failed read instead.
func (r *REPL) isInitialized() bool {
	if r.dataFile == nil || r.proc == nil || r.mapping == nil {
		return false
	}
	return r.proc.Signal(syscall.Signal(0)) == nil
}
