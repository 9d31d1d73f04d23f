package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNotReady is returned when the operation cannot be executed in the
	// current state, e.g. revoking a credential which isn't issued yet.
	ErrNotReady = errors.New("not ready")

	// ErrInvalidState is returned when required data is missing, like the
	// send function.
	ErrInvalidState = errors.New("invalid state")

	ErrInvalidJSON = errors.New("invalid json")

	// ErrThreadMismatch rejects a message which belongs to another thread.
	ErrThreadMismatch = errors.New("thread id mismatch")

	ErrInvalidRevocationDetails = errors.New("invalid revocation details")

	// ErrInvalidProof means that the proof was checked and it didn't verify.
	ErrInvalidProof = errors.New("invalid proof")

	ErrNotSupported = errors.New("not supported")
)

func NotReady(format string, a ...any) error {
	return wrap(ErrNotReady, format, a...)
}

func InvalidState(format string, a ...any) error {
	return wrap(ErrInvalidState, format, a...)
}

func InvalidJSON(format string, a ...any) error {
	return wrap(ErrInvalidJSON, format, a...)
}

func NotSupported(format string, a ...any) error {
	return wrap(ErrNotSupported, format, a...)
}

func ThreadMismatch(want, got string) error {
	return fmt.Errorf("%w: want %q, got %q", ErrThreadMismatch, want, got)
}

func wrap(err error, format string, a ...any) error {
	return fmt.Errorf("%w: %s", err, fmt.Sprintf(format, a...))
}
