package common

import "errors"

var (
	// ErrEmptyInput is returned when a required prompt value is blank.
	ErrEmptyInput = errors.New("empty input")

	// ErrInvalidArgument is returned for malformed command arguments.
	ErrInvalidArgument = errors.New("invalid argument")
)
