// Package apperr defines the error kinds the catalog core reports to its
// callers. The core never logs or retries; handlers match these with
// errors.As and translate them to HTTP statuses.
package apperr

import "fmt"

// NotFoundError reports that a requested identity does not exist, including
// a feedstock referenced during product creation.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.Entity, e.ID)
}

// NotFound builds a NotFoundError for the given entity and id.
func NotFound(entity string, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConstraintError reports a store constraint failure: a duplicate business
// code or a delete blocked by existing references.
type ConstraintError struct {
	Msg string
}

func (e *ConstraintError) Error() string {
	return e.Msg
}

// Constraint builds a ConstraintError with a formatted message.
func Constraint(format string, args ...any) *ConstraintError {
	return &ConstraintError{Msg: fmt.Sprintf(format, args...)}
}
