package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every ValidationError through errors.Is.
	ErrValidation = errors.New("validation error")
	// ErrNotFound matches every NotFoundError through errors.Is.
	ErrNotFound = errors.New("not found")
)

// ValidationError reports an input the ledger refuses to act on.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError reports a treatment or adjustment missing from the snapshot.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

func notFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}
