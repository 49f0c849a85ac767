// Package apperr defines the error taxonomy shared by the service and
// repository layers. Handlers translate these into HTTP status codes;
// everything else stays an opaque internal error.
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError rejects a malformed submission before any write happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConflictError reports a relation-state mismatch: duplicate add,
// remove-when-absent, self-follow.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// AuthorizationError reports a caller acting on an entity they do not own.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func Conflict(message string) error {
	return &ConflictError{Message: message}
}

func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

func Forbidden(message string) error {
	return &AuthorizationError{Message: message}
}

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsConflict(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsAuthorization(err error) bool {
	var e *AuthorizationError
	return errors.As(err, &e)
}
