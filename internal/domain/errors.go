package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a sensor name is not configured.
	ErrNotFound = errors.New("sensor not found")
	// ErrStorageUnavailable marks a backing file that was missing at append time.
	ErrStorageUnavailable = errors.New("log storage unavailable")
	// ErrFormat matches every *FormatError via errors.Is.
	ErrFormat = errors.New("malformed reading")
)

// FormatError describes a line that could not be decoded into a Reading.
type FormatError struct {
	Line   string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed reading %q: %s: %v", e.Line, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed reading %q: %s", e.Line, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrFormat) match any FormatError.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}
