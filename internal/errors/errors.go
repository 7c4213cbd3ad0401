// Package errors provides typed domain errors for the quotation engine.
package errors

import (
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeInvalidManifest indicates a traveler manifest that cannot be resolved
	TypeInvalidManifest Type = "INVALID_MANIFEST"

	// TypeInvalidDuration indicates a service item with an impossible date span
	TypeInvalidDuration Type = "INVALID_DURATION"

	// TypeNoRateForDate indicates no season window covers a service date
	TypeNoRateForDate Type = "NO_RATE_FOR_DATE"

	// TypeInvalidMargin indicates a margin rule that cannot produce a sell price
	TypeInvalidMargin Type = "INVALID_MARGIN"

	// TypeMixedCurrency indicates cost lines in more than one currency
	TypeMixedCurrency Type = "MIXED_CURRENCY"

	// TypeInvalidInput indicates a malformed engine input
	TypeInvalidInput Type = "INVALID_INPUT"

	// TypeCatalog indicates a supplier catalog parsing error
	TypeCatalog Type = "CATALOG_ERROR"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeNotFound indicates a missing resource
	TypeNotFound Type = "NOT_FOUND"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == t
	}
	return false
}

// InvalidManifest creates a manifest validation error
func InvalidManifest(message string) *Error {
	return New(TypeInvalidManifest, message)
}

// InvalidDuration creates a duration error for a service item
func InvalidDuration(serviceRef, message string) *Error {
	return New(TypeInvalidDuration, message).WithContext("service_ref", serviceRef)
}

// NoRateForDate creates a missing-rate error for a service date
func NoRateForDate(serviceRef, date string) *Error {
	return Newf(TypeNoRateForDate, "no season window covers %s for service %s", date, serviceRef).
		WithContext("service_ref", serviceRef).
		WithContext("date", date)
}

// InvalidMargin creates a margin rule error
func InvalidMargin(serviceRef, message string) *Error {
	return New(TypeInvalidMargin, message).WithContext("service_ref", serviceRef)
}

// MixedCurrency creates a mixed-currency aggregation error
func MixedCurrency(currencies []string) *Error {
	return Newf(TypeMixedCurrency, "cost lines carry more than one currency: %v", currencies)
}

// InvalidInput creates an input validation error
func InvalidInput(message string) *Error {
	return New(TypeInvalidInput, message)
}

// Catalog creates a catalog parsing error
func Catalog(message string, cause error) *Error {
	return Wrap(TypeCatalog, message, cause)
}

// NotFound creates a not found error
func NotFound(resourceType, identifier string) *Error {
	return Newf(TypeNotFound, "%s not found: %s", resourceType, identifier)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
