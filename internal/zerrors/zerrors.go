// Package zerrors implements zebra's error taxonomy: a small closed set
// of Kinds distinguishing soft, recoverable conditions from the ones that
// end an iteration or the whole process, wrapped with github.com/pkg/errors
// so call-site context survives across the worker -> harness -> generator
// boundary.
package zerrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a FuzzError by how far its effect propagates.
type Kind string

const (
	// KindBail is a generator declining to fire (wrong context, no
	// matching variable). Never surfaces above the worker.
	KindBail Kind = "bail"
	// KindProtocol is a REPL handshake violation: the child wrote an
	// unexpected byte where a control tag or status was expected.
	KindProtocol Kind = "protocol"
	// KindCrash is the target child dying by signal.
	KindCrash Kind = "crash"
	// KindTimeout is the target child not responding within the
	// configured interval.
	KindTimeout Kind = "timeout"
	// KindFatal ends the process: CLI parse failure, mkdir failure,
	// crash-artifact write failure, or a double REPL execute failure.
	KindFatal Kind = "fatal"
)

// FuzzError is zebra's error type. Cause is nil for errors that originate
// here rather than wrapping a lower-level failure.
type FuzzError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *FuzzError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *FuzzError) Unwrap() error { return e.Cause }

// New builds a FuzzError with no wrapped cause.
func New(kind Kind, message string) *FuzzError {
	return &FuzzError{Kind: kind, Message: message}
}

// Newf builds a FuzzError from a format string, matching errors.Errorf's
// signature for callers used to that convention.
func Newf(kind Kind, format string, args ...any) *FuzzError {
	return &FuzzError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches message and kind to cause, preserving cause's stack trace
// via github.com/pkg/errors. Returns nil if cause is nil.
func Wrap(cause error, kind Kind, message string) *FuzzError {
	if cause == nil {
		return nil
	}
	return &FuzzError{Kind: kind, Message: message, Cause: errors.Wrap(cause, message)}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(cause error, kind Kind, format string, args ...any) *FuzzError {
	if cause == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return &FuzzError{Kind: kind, Message: message, Cause: errors.Wrap(cause, message)}
}

// Bail is shorthand for a generator declining to fire: New(KindBail, reason).
func Bail(reason string) *FuzzError { return New(KindBail, reason) }

// Is reports whether err is a *FuzzError of the given kind.
func Is(err error, kind Kind) bool {
	fe, ok := err.(*FuzzError)
	return ok && fe.Kind == kind
}

// IsFatal reports whether err should terminate the process.
func IsFatal(err error) bool { return Is(err, KindFatal) }
