// Package mlerr defines the shared error taxonomy for the modeling pipeline.
package mlerr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFitted is returned when Transform or Predict is called before Fit.
	ErrNotFitted = errors.New("component is not fitted")

	// ErrInvalidTargetDomain is returned when a non-positive target value
	// reaches the log transform. The fit is aborted; rows are never clamped
	// or dropped silently.
	ErrInvalidTargetDomain = errors.New("target values must be strictly positive for log transform")

	// ErrEmptyGrid is returned when a hyperparameter maps to an empty
	// candidate set.
	ErrEmptyGrid = errors.New("hyperparameter grid has an empty candidate set")
)

// SchemaMismatchError reports a table presented to a fitted component that
// lacks an expected column or carries it with the wrong role.
type SchemaMismatchError struct {
	Column string
	Reason string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch on column %q: %s", e.Column, e.Reason)
}

// UnknownColumnRoleError reports a preprocessing stage fit against data
// inconsistent with the role set it was configured for.
type UnknownColumnRoleError struct {
	Column string
	Reason string
}

func (e *UnknownColumnRoleError) Error() string {
	return fmt.Sprintf("unknown column role for %q: %s", e.Column, e.Reason)
}
