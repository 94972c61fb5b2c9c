package rowbatch

import "errors"

var (
	// ErrUnsupportedColumnType is returned when a column carries a type
	// tag outside the seven known kinds, or no tag at all.
	ErrUnsupportedColumnType = errors.New("unsupported column type")
	// ErrRowCountMismatch is returned when a column's length disagrees
	// with the row count declared by its batch.
	ErrRowCountMismatch = errors.New("row count mismatch")
	// ErrColumnCountMismatch is returned when a batch does not carry one
	// column for each column of its relation.
	ErrColumnCountMismatch = errors.New("column count mismatch")
)
