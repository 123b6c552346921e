package models

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCategory is returned when a categorical input is not a known key.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrOutOfRange is returned for numeric inputs outside their domain.
	ErrOutOfRange = errors.New("value out of range")
	// ErrDataUnavailable marks an upstream market source failure.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrInvalidUpload marks a transactions file that cannot be parsed.
	ErrInvalidUpload = errors.New("invalid upload")
)

// CategoryError names the enumeration and the rejected value.
type CategoryError struct {
	Kind  string
	Value string
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Value)
}

func (e *CategoryError) Is(target error) bool { return target == ErrUnknownCategory }

// RangeError names the field whose value fell outside [Min, Max].
type RangeError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s=%v outside [%v, %v]", e.Field, e.Value, e.Min, e.Max)
}

func (e *RangeError) Is(target error) bool { return target == ErrOutOfRange }

// CheckRange returns a *RangeError when v is outside [lo, hi].
func CheckRange(field string, v, lo, hi float64) error {
	if v < lo || v > hi {
		return &RangeError{Field: field, Value: v, Min: lo, Max: hi}
	}
	return nil
}

// UploadError locates a parse failure inside an uploaded CSV. Row is 1-based
// and counts the header line; zero means the problem is not row specific.
type UploadError struct {
	Row    int
	Column string
	Err    error
}

func (e *UploadError) Error() string {
	switch {
	case e.Row > 0 && e.Column != "":
		return fmt.Sprintf("row %d column %s: %v", e.Row, e.Column, e.Err)
	case e.Row > 0:
		return fmt.Sprintf("row %d: %v", e.Row, e.Err)
	case e.Column != "":
		return fmt.Sprintf("column %s: %v", e.Column, e.Err)
	}
	return e.Err.Error()
}

func (e *UploadError) Unwrap() error { return e.Err }

func (e *UploadError) Is(target error) bool { return target == ErrInvalidUpload }

// UnavailableError wraps an upstream failure for a named source.
type UnavailableError struct {
	Source string
	Err    error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Source, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

func (e *UnavailableError) Is(target error) bool { return target == ErrDataUnavailable }
