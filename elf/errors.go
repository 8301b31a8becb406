package elf

import (
	"errors"
	"fmt"
)

// ErrMalformed is the only failure of the decoder. Every error returned by
// this package matches it with errors.Is.
var ErrMalformed = errors.New("malformed input")

type MalformedError struct {
	Field  string
	Offset int
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("elf: %s at %#x: %s", e.Field, e.Offset, e.Reason)
}

func (e *MalformedError) Unwrap() error {
	return ErrMalformed
}

func malformed(field string, offset int, format string, args ...interface{}) error {
	return &MalformedError{
		Field:  field,
		Offset: offset,
		Reason: fmt.Sprintf(format, args...),
	}
}
