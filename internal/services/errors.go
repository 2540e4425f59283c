package services

import "errors"

// Sentinel errors forming the service-level error taxonomy. Handlers map
// these onto HTTP status codes at the boundary; anything unmatched is
// logged and surfaced as a generic internal error.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrNotPending         = errors.New("request already handled")
)

// InvalidInputError carries a user-facing validation message while still
// matching ErrInvalidInput under errors.Is.
type InvalidInputError struct {
	msg string
}

func (e *InvalidInputError) Error() string { return e.msg }

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

func invalidInput(msg string) error { return &InvalidInputError{msg: msg} }
