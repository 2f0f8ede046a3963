package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput indicates that the course or assignment group input
// failed structural validation. Fatal; nothing is processed.
var ErrInvalidInput = errors.New("invalid gradebook input")

// ErrGroupMismatch indicates that the assignment group references a
// different course than the one supplied. Fatal; nothing is processed.
var ErrGroupMismatch = errors.New("assignment group does not belong to course")

// ErrInvalidAssignment indicates that an assignment carries an unusable
// points_possible value. Fatal; detected during indexing, before any
// submission is scored.
var ErrInvalidAssignment = errors.New("invalid assignment")

// InvalidAssignmentError reports which assignment failed validation and
// why. It wraps ErrInvalidAssignment so callers can classify with
// errors.Is and still extract the offending assignment with errors.As.
type InvalidAssignmentError struct {
	// AssignmentID identifies the assignment that failed validation.
	AssignmentID string

	// Reason describes the constraint violation, e.g. "negative points_possible".
	Reason string
}

// Error returns a human-readable description naming the assignment.
func (e *InvalidAssignmentError) Error() string {
	return fmt.Sprintf("invalid assignment %q: %s", e.AssignmentID, e.Reason)
}

// Unwrap returns ErrInvalidAssignment for errors.Is classification.
func (e *InvalidAssignmentError) Unwrap() error { return ErrInvalidAssignment }
