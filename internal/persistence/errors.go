package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("persistence: duplicate")
	// ErrConstraintViolation is returned when stored data would break a
	// domain invariant.
	ErrConstraintViolation = errors.New("persistence: constraint violation")
	// ErrForeignKeyViolation is returned when a record references a missing
	// row.
	ErrForeignKeyViolation = errors.New("persistence: foreign key violation")
)
