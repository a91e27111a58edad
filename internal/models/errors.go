package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for validation.
var (
	ErrMissingID       = errors.New("id is required")
	ErrMissingLabel    = errors.New("label is required")
	ErrMissingSource   = errors.New("source is required")
	ErrMissingTarget   = errors.New("target is required")
	ErrInvalidRegion   = errors.New("invalid region")
	ErrInvalidWeight   = errors.New("weight must be greater than zero")
	ErrSelfLoop        = errors.New("edge endpoints must differ")
	ErrSameEndpoints   = errors.New("origin and destination must differ")
	ErrInvalidSpeed    = errors.New("animation speed out of range")
	ErrEmptyPath       = errors.New("path is empty")
	ErrTooFewNodes     = errors.New("graph needs at least 2 nodes")
	ErrTooFewEdges     = errors.New("graph needs at least 1 edge")
	ErrDuplicateNodeID = errors.New("duplicate node id")
	ErrDuplicateEdge   = errors.New("duplicate edge")
)

// Sentinel errors for entity lookups.
var (
	ErrNodeNotFound = errors.New("node not found")
	ErrEdgeNotFound = errors.New("edge not found")
)

// ErrFieldTooLong returns an error indicating a field exceeds its maximum length.
func ErrFieldTooLong(field string, maxLen int) error {
	return fmt.Errorf("%s exceeds maximum length of %d", field, maxLen)
}

// LookupError reports an id that does not exist in the graph.
type LookupError struct {
	ID string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("unknown state %q", e.ID)
}

// Unwrap lets errors.Is match ErrNodeNotFound.
func (e *LookupError) Unwrap() error { return ErrNodeNotFound }

// ReferenceError reports a computed path that cannot be drawn on the graph:
// either a step names an unknown node or two consecutive steps have no edge.
type ReferenceError struct {
	Index int
	ID    string
	// Next is set when the failure is a missing connection ID→Next.
	Next string
}

func (e *ReferenceError) Error() string {
	if e.Next != "" {
		return fmt.Sprintf("route has no connection between %q and %q", e.ID, e.Next)
	}

	return fmt.Sprintf("route references unknown state %q", e.ID)
}

// Unwrap maps the reference failure onto the matching lookup sentinel.
func (e *ReferenceError) Unwrap() error {
	if e.Next != "" {
		return ErrEdgeNotFound
	}

	return ErrNodeNotFound
}

// ValidationError is a user input error detected before any request is issued.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Err }
