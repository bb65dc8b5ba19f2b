// Package domain defines the core domain models for the MicroDog emulator.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a domain error with a structured error code.
// Codes have the form MD-<AREA>-<NNNN>; the last four digits follow the
// HTTP status the error maps to when surfaced over HTTP.
type DomainError struct {
	Code    string // Error code (e.g., "MD-CONV-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// Wrap wraps an error with this domain error as the cause.
func (e *DomainError) Wrap(cause error) *DomainError {
	return e.WithCause(cause)
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true // Only check if it's a DomainError
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Load Errors (SRC, INFO, CONV)
// ============================================================================

var (
	// ErrSourceUnreadable indicates the dump could not be opened or parsed.
	ErrSourceUnreadable = NewDomainError("MD-SRC-5000", "dump source unreadable")

	// ErrMalformedIdentity indicates an INFO field could not be decoded.
	ErrMalformedIdentity = NewDomainError("MD-INFO-4000", "malformed identity field")

	// ErrEmptyConvertTable indicates no usable convert entry exists for the
	// algorithm of the dumped device.
	ErrEmptyConvertTable = NewDomainError("MD-CONV-4040", "empty convert table")

	// ErrMalformedEntry indicates a single convert entry could not be decoded.
	// It is entry-scoped: the loader skips the entry and continues.
	ErrMalformedEntry = NewDomainError("MD-CONV-4000", "malformed convert entry")

	// ErrAllocationFailure indicates the convert table could not be allocated.
	ErrAllocationFailure = NewDomainError("MD-SYS-5001", "convert table allocation failed")
)

// ============================================================================
// Resolver Errors (RESV)
// ============================================================================

var (
	// ErrRequestNotFound indicates no convert entry matches a request.
	// It is an ordinary outcome, never fatal.
	ErrRequestNotFound = NewDomainError("MD-RESV-4040", "request not found")

	// ErrMalformedRequest indicates a request could not be decoded.
	ErrMalformedRequest = NewDomainError("MD-RESV-4000", "malformed request")
)

// ============================================================================
// System and Argument Errors (SYS, ARG)
// ============================================================================

var (
	// ErrInternal indicates an internal error.
	ErrInternal = NewDomainError("MD-SYS-5000", "internal error")

	// ErrRateLimited indicates too many requests.
	ErrRateLimited = NewDomainError("MD-SYS-4290", "too many requests")

	// ErrInvalidArgument indicates an invalid argument.
	ErrInvalidArgument = NewDomainError("MD-ARG-1001", "invalid argument")
)
