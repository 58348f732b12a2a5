package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingRequiredField is returned when a document lacks a key the
	// converters depend on.
	ErrMissingRequiredField = errors.New("missing required field")
	// ErrInvalidField is returned when a key is present but holds a value of
	// the wrong type, including a timestamp field that did not parse.
	ErrInvalidField = errors.New("invalid field")
	// ErrUnknownEventKind is returned for a flight-plan category that is not
	// one of the known fpl_* keys.
	ErrUnknownEventKind = errors.New("unknown flight-plan category")
)

// RecordError locates a parse failure: which record (flight id or airspace
// name), which field path inside it, and what went wrong.
type RecordError struct {
	Record string
	Field  string
	Err    error
}

func (e *RecordError) Error() string {
	if e.Record == "" {
		return fmt.Sprintf("field %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("record %s: field %s: %v", e.Record, e.Field, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

func missing(record, field string) error {
	return &RecordError{Record: record, Field: field, Err: ErrMissingRequiredField}
}

func invalid(record, field string, cause error) error {
	err := ErrInvalidField
	if cause != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidField, cause)
	}
	return &RecordError{Record: record, Field: field, Err: err}
}
