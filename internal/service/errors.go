package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccessDenied       = errors.New("access denied")
	ErrEmailInUse         = errors.New("email already in use")
	ErrFieldValidation    = errors.New("field validation failed")
	ErrOTPMismatch        = errors.New("verification code does not match")
	ErrNotSignedIn        = errors.New("not signed in")

	ErrInvalidStage       = errors.New("operation not allowed at current enrollment stage")
	ErrEnrollmentClosed   = errors.New("enrollment is closed")
	ErrCodeNotIssued      = errors.New("verification code has not been issued")
	ErrNoActiveEnrollment = errors.New("no active enrollment")
)

// FieldError reports a single rejected input field. It matches ErrFieldValidation with errors.Is.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Is(target error) bool { return target == ErrFieldValidation }

func fieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}
