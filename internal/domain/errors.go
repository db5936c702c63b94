package domain

import "errors"

// Error kinds. Every error returned by the application layer matches exactly one of
// these through errors.Is; transports map kinds to status codes.
var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrConflict         = errors.New("conflict")
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnauthorized     = errors.New("unauthorized")
)

// Error is a specific failure of a known kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func NewError(kind error, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

var (
	ErrUserNotFound       = NewError(ErrNotFound, "user not found")
	ErrCourseNotFound     = NewError(ErrNotFound, "course not found")
	ErrEnrollmentNotFound = NewError(ErrNotFound, "enrollment not found")
	ErrPayoutNotFound     = NewError(ErrNotFound, "payout not found")

	ErrUserAlreadyExists = NewError(ErrConflict, "user already exists")
	ErrAlreadyEnrolled   = NewError(ErrConflict, "already enrolled")

	ErrTooManyActiveEnrollments = NewError(ErrCapacityExceeded,
		"you can only enroll in up to 3 active courses at a time")

	ErrInvalidCredentials = NewError(ErrUnauthorized, "invalid email or password")
	ErrNotAuthenticated   = NewError(ErrUnauthorized, "not authenticated")
	ErrTokenRevoked       = NewError(ErrUnauthorized, "token revoked")
)

// Forbidden builds a Forbidden error with a specific message.
func Forbidden(msg string) error {
	return NewError(ErrForbidden, msg)
}

// Invalid builds an InvalidInput error with a specific message.
func Invalid(msg string) error {
	return NewError(ErrInvalidInput, msg)
}
