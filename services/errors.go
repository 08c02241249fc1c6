package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLocalityNotFound means no summary matched the requested locality.
	ErrLocalityNotFound = errors.New("locality not found")
	// ErrInvalidTenure means a loan tenure was zero or negative.
	ErrInvalidTenure = errors.New("invalid tenure")
	// ErrInvalidInput means a numeric input was out of range.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDataUnavailable means the datasets could not be loaded or were empty.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrNoEstimate is returned by an ROI provider that cannot answer, so the
	// next provider in the chain is tried.
	ErrNoEstimate = errors.New("no estimate")
)

// LocalityNotFoundError carries the query and nearby known localities.
type LocalityNotFoundError struct {
	Query       string
	Suggestions []string
}

func (e *LocalityNotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("locality %q not found", e.Query)
	}
	return fmt.Sprintf("locality %q not found (did you mean: %s?)", e.Query, strings.Join(e.Suggestions, ", "))
}

func (e *LocalityNotFoundError) Is(target error) bool {
	return target == ErrLocalityNotFound
}

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
	kind   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.kind, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.kind
}

func invalidInput(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason, kind: ErrInvalidInput}
}

func invalidTenure(field string, years int) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf("must be positive, got %d", years), kind: ErrInvalidTenure}
}

// IsValidation reports whether err is an input or tenure validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrInvalidTenure)
}
