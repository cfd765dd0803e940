package model

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyBucket is returned when an aggregate is requested over a
	// bucket with no members (the mean of nothing is undefined).
	ErrEmptyBucket = errors.New("empty bucket: no stars to aggregate")

	// ErrDataShape is matched by every DataShapeError.
	ErrDataShape = errors.New("mismatched attribute column lengths")

	// ErrUndefinedPeriod is returned when a record without a rotation period
	// reaches a period aggregate. Such records must be filtered upstream.
	ErrUndefinedPeriod = errors.New("undefined rotation period")
)

// DataShapeError reports a parallel attribute column whose length differs
// from the name column.
type DataShapeError struct {
	// Column is the name of the offending column.
	Column string

	// Got is the length of the offending column.
	Got int

	// Want is the length of the name column.
	Want int
}

// Error implements the error interface.
func (e *DataShapeError) Error() string {
	return fmt.Sprintf("%s: column %q has %d values, want %d", ErrDataShape, e.Column, e.Got, e.Want)
}

// Is lets errors.Is(err, ErrDataShape) match any DataShapeError.
func (e *DataShapeError) Is(target error) bool {
	return target == ErrDataShape
}
