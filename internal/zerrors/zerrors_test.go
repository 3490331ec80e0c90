package zerrors

import (
	"errors"
	"testing"
)

func TestErrorFormatsWithAndWithoutCause(t *testing.T) {
	plain := New(KindBail, "no matching variable")
	if plain.Error() != "bail: no matching variable" {
		t.Fatalf("got %q", plain.Error())
	}

	wrapped := Wrap(errors.New("short read"), KindProtocol, "control frame")
	if wrapped.Cause == nil {
		t.Fatalf("expected a wrapped cause")
	}
}

func TestWrapNilReturnsNil(t *testing.T) {
	if Wrap(nil, KindFatal, "x") != nil {
		t.Fatalf("expected Wrap(nil, ...) to return nil")
	}
	if Wrapf(nil, KindFatal, "x") != nil {
		t.Fatalf("expected Wrapf(nil, ...) to return nil")
	}
}

func TestIsAndIsFatal(t *testing.T) {
	fatal := New(KindFatal, "mkdir failed")
	if !IsFatal(fatal) {
		t.Fatalf("expected fatal error to be fatal")
	}
	if IsFatal(New(KindBail, "x")) {
		t.Fatalf("expected a bail error to not be fatal")
	}
	if !Is(fatal, KindFatal) {
		t.Fatalf("expected Is to match kind")
	}
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("boom")
	wrapped := Wrap(cause, KindCrash, "child died")
	if errors.Unwrap(wrapped) == nil {
		t.Fatalf("expected Unwrap to expose the pkg/errors-wrapped cause")
	}
}

func TestBailHelper(t *testing.T) {
	e := Bail("wrong context")
	if e.Kind != KindBail {
		t.Fatalf("expected KindBail, got %s", e.Kind)
	}
}
