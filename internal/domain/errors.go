package domain

import "errors"

// Domain errors
var (
	// ErrNotFound covers both "resource absent" and "resource not owned by the
	// caller". The two cases are reported identically so that non-owners cannot
	// probe for the existence of other users' resources.
	ErrNotFound = errors.New("resource not found or not owned")

	ErrUnauthorized         = errors.New("unauthorized")
	ErrProfileExists        = errors.New("profile already exists")
	ErrProfileNotRegistered = errors.New("profile not registered")
	ErrNoFieldsProvided     = errors.New("no fields provided")
	ErrInvalidInput         = errors.New("invalid input")
	ErrFileTooLarge         = errors.New("file too large. Maximum size is 20MB")
	ErrUnsupportedMedia     = errors.New("only JPEG and PNG is supported")
	ErrUpstream             = errors.New("upstream operation failed")
)

// validationError is an input error carrying a caller-facing message. It
// matches ErrInvalidInput under errors.Is so handlers can dispatch on kind
// while still returning the specific message.
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Is(target error) bool { return target == ErrInvalidInput }

// Invalid returns a validation error with the given message.
func Invalid(msg string) error {
	return &validationError{msg: msg}
}
