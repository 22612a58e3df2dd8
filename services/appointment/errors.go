package appointment

import "errors"

var (
	// ErrNotFound signals that no appointment matches the given id.
	ErrNotFound = errors.New("appointment not found")
	// ErrInvalidTransition signals an attempt to move an appointment out of a
	// terminal status.
	ErrInvalidTransition = errors.New("invalid appointment status transition")
	// ErrUnknownEntity signals that the referenced patient or doctor does not
	// exist.
	ErrUnknownEntity = errors.New("referenced patient or doctor not found")
)
