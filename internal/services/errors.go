package services

import (
	"errors"
	"fmt"

	"feed/internal/dto"
)

// Kinds of caller errors. Handlers pick the HTTP status with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is a caller error with the message shown in the response body.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

// Message is the text for the response body.
func (e *Error) Message() string {
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return e.Msg
}

// firstInvalid turns the first field error into a ValidationError.
func firstInvalid(errs []dto.FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	return &Error{Kind: ErrValidation, Msg: errs[0].Error()}
}

func invalid(msg string) error {
	return &Error{Kind: ErrValidation, Msg: msg}
}

func notFound(kind string) error {
	return &Error{Kind: ErrNotFound, Msg: fmt.Sprintf("The %s was not found.", kind)}
}

func forbidden() error {
	return &Error{Kind: ErrForbidden, Msg: "You do not have permission to perform this action."}
}

func conflict(msg string) error {
	return &Error{Kind: ErrConflict, Msg: msg}
}

// Unauthenticated is returned when a write arrives without an actor.
func Unauthenticated() error {
	return &Error{Kind: ErrUnauthorized, Msg: "Authentication credentials were not provided."}
}

// NotFound reports a missing entity of the given kind, e.g. "article".
func NotFound(kind string) error {
	return notFound(kind)
}
