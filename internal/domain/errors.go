package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain error. Each kind is mapped to an HTTP status
// exactly once, in the response package, so call sites never pick codes.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindPersistence  ErrorKind = "persistence"
	KindInternal     ErrorKind = "internal"
)

// Error is the uniform error type returned by domain and application code.
type Error struct {
	Kind    ErrorKind
	Message string
	// Fields lists offending input fields for validation errors.
	Fields []string
}

func (e *Error) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %s (fields: %v)", e.Kind, e.Message, e.Fields)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// KindOf extracts the ErrorKind from err, or KindInternal for unknown errors.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// NewValidationError reports missing or malformed input.
func NewValidationError(message string, fields ...string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// NewUnauthorizedError reports a missing or invalid credential.
func NewUnauthorizedError(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// NewForbiddenError reports an ownership or role mismatch.
func NewForbiddenError(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NewNotFoundError reports that no record matched the given identifier.
func NewNotFoundError(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

// NewConflictError reports a concurrent-modification conflict.
func NewConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NewPersistenceError reports a store write that returned no result.
func NewPersistenceError(message string) *Error {
	return &Error{Kind: KindPersistence, Message: message}
}
