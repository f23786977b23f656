package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is to check for them.
var (
	// ErrDataUnavailable means the flight data source could not be reached
	// or returned data that could not be used.
	ErrDataUnavailable = errors.New("flight data unavailable")

	// ErrMalformedRecord means a single record failed normalization.
	// Providers surface it wrapped in a ProviderError, so it also matches ErrDataUnavailable.
	ErrMalformedRecord = errors.New("malformed flight record")

	// ErrInvalidFilterValue means a query filter could not be interpreted.
	ErrInvalidFilterValue = errors.New("invalid filter value")
)

// ProviderError describes a failure of a specific flight data provider.
// It matches both ErrDataUnavailable and the underlying cause.
type ProviderError struct {
	Provider string
	Err      error
}

// NewProviderError wraps err as a data-unavailable failure of the named provider.
func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Err:      err,
	}
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("provider %s: %s", e.Provider, ErrDataUnavailable)
	}
	return fmt.Sprintf("provider %s: %s: %v", e.Provider, ErrDataUnavailable, e.Err)
}

func (e *ProviderError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDataUnavailable}
	}
	return []error{ErrDataUnavailable, e.Err}
}

// FilterError reports a query parameter whose value was rejected.
type FilterError struct {
	Field   string
	Value   string
	Message string
}

// NewFilterError creates a FilterError for the given field.
func NewFilterError(field, value, message string) *FilterError {
	return &FilterError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FilterError) Unwrap() error {
	return ErrInvalidFilterValue
}

// IsDataUnavailable reports whether err is a data-source failure.
func IsDataUnavailable(err error) bool {
	return errors.Is(err, ErrDataUnavailable)
}
