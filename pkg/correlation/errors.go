package correlation

import (
	"errors"
	"fmt"
)

// ErrInconsistentCommunity means a community named an alert the store does
// not hold. It indicates a bug between the clusterer and the store.
var ErrInconsistentCommunity = errors.New("community references an unknown alert")

// Error describes a failed correlation step.
type Error struct {
	Op        string // Operation that failed (e.g. "classify")
	Community int    // Community id, -1 when not applicable
	UID       string // Offending alert uid, if any
	Cause     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Community >= 0 {
		if e.UID != "" {
			return fmt.Sprintf("%s community %d (alert %q): %v", e.Op, e.Community, e.UID, e.Cause)
		}
		return fmt.Sprintf("%s community %d: %v", e.Op, e.Community, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
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

// inconsistentCommunity wraps a lookup failure for community id
func inconsistentCommunity(id int, uid string, cause error) error {
	return &Error{
		Op:        "classify",
		Community: id,
		UID:       uid,
		Cause:     fmt.Errorf("%w: %w", ErrInconsistentCommunity, cause),
	}
}
