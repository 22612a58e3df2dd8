package request

import "errors"

var (
	// ErrNotFound signals that no request matches the given id.
	ErrNotFound = errors.New("appointment request not found")
	// ErrNotPending signals an approve/deny against a request that already
	// reached a terminal state. The request is left untouched.
	ErrNotPending = errors.New("appointment request is not pending")
	// ErrUnknownEntity signals that the referenced patient or doctor does not
	// exist.
	ErrUnknownEntity = errors.New("referenced patient or doctor not found")
)
