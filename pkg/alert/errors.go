package alert

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrTooFewAlerts = errors.New("too few alerts")
	ErrDuplicateUID = errors.New("duplicate alert uid")
	ErrInvalidAlert = errors.New("invalid alert")
	ErrUnknownUID   = errors.New("unknown alert uid")
)

// Error describes a failed store operation.
type Error struct {
	Op    string // Operation that failed (e.g. "new_store", "lookup")
	UID   string // Offending uid, if any
	Index int    // Position in the input batch, -1 when not applicable
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.UID != "" && e.Index >= 0:
		return fmt.Sprintf("%s alert %q (index %d): %v", e.Op, e.UID, e.Index, e.Cause)
	case e.UID != "":
		return fmt.Sprintf("%s alert %q: %v", e.Op, e.UID, e.Cause)
	case e.Index >= 0:
		return fmt.Sprintf("%s alert at index %d: %v", e.Op, e.Index, e.Cause)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Cause)
	}
}

// Unwrap returns the underlying cause for error chain support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// UnknownUIDError creates a lookup failure for uid.
func UnknownUIDError(uid string) error {
	return &Error{Op: "lookup", UID: uid, Index: -1, Cause: ErrUnknownUID}
}

// IsPrecondition returns true if err rejects the input batch itself.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrTooFewAlerts) || errors.Is(err, ErrDuplicateUID) || errors.Is(err, ErrInvalidAlert)
}
