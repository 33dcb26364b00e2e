package main

import (
	"errors"
	"fmt"
)

var (
	// ErrNoDocument is returned when no document was given to format
	ErrNoDocument = errors.New("No active document")

	// ErrEmptyInput is returned when the shape prompt was left empty or cancelled
	ErrEmptyInput = errors.New("Please enter a value")

	// ErrEmptyFiller is returned when the document has no characters left to fill with
	ErrEmptyFiller = errors.New("document has no filler characters")
)

// PreconditionError is a failure detected before any computation or write.
// It is shown to the user as-is.
type PreconditionError struct {
	Err error
}

func (e *PreconditionError) Error() string {
	return e.Err.Error()
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

func precondition(err error) error {
	return &PreconditionError{Err: err}
}

// IsPrecondition reports whether err is (or wraps) a PreconditionError
func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}

// userMessage formats an error for the status line
func userMessage(err error) string {
	if IsPrecondition(err) {
		return err.Error()
	}
	return fmt.Sprintf("Error: %v", err)
}
