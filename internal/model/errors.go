package model

import "errors"

var (
	// ErrNotFound is returned when a record with the given id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned when a required field is missing or an enum
	// value is out of range. Wrapped errors name the offending field.
	ErrValidation = errors.New("validation error")
	// ErrUpstream is returned when the external media host fails.
	ErrUpstream = errors.New("upstream error")
)
