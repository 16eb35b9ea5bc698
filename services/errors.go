package services

import "errors"

var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// CommandError carries a message meant for the user together with the kind of
// failure, so callers can both show it and match it with errors.Is.
type CommandError struct {
	Kind    error
	Message string
}

func (e *CommandError) Error() string {
	return e.Message
}

func (e *CommandError) Unwrap() error {
	return e.Kind
}

func newCommandError(kind error, message string) error {
	return &CommandError{Kind: kind, Message: message}
}
