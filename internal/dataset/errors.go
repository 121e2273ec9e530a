package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumn is wrapped by MissingColumnError.
	ErrMissingColumn = errors.New("missing column")
	// ErrBadDate is returned when a date cell cannot be parsed.
	ErrBadDate = errors.New("unparseable date")
	// ErrEmptySource is returned for a dataset without a header row.
	ErrEmptySource = errors.New("empty dataset")
	// ErrBadNumber is returned when a numeric cell cannot be parsed.
	ErrBadNumber = errors.New("unparseable number")
	// ErrDuplicateColumn is returned when a date column would appear twice.
	ErrDuplicateColumn = errors.New("duplicate column")
)

// MissingColumnError names a required column absent from a table.
type MissingColumnError struct {
	Table  string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: column %q not found", e.Table, e.Column)
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }
