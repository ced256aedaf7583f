package qrbatch

import (
	"errors"
	"fmt"
)

// ErrNoFile indicates the entry operation received no file.
var ErrNoFile = errors.New("No file uploaded")

// ErrInvalidFormat indicates the input is not a readable workbook.
var ErrInvalidFormat = errors.New("invalid spreadsheet format")

// DecodeError wraps a failure to read the uploaded workbook.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v: %v", ErrInvalidFormat, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	return []error{ErrInvalidFormat, e.Err}
}

// SynthesisError represents a token that could not be turned into an artifact.
type SynthesisError struct {
	Token string
	Err   error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("synthesis error for token %q: %v", e.Token, e.Err)
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}

// PackagingError represents a failure to serialize the archive.
type PackagingError struct {
	Err error
}

func (e *PackagingError) Error() string {
	return fmt.Sprintf("packaging error: %v", e.Err)
}

func (e *PackagingError) Unwrap() error {
	return e.Err
}
