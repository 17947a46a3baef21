package apierror

import (
	"errors"
	"fmt"
)

// Kind classifies an error per spec.md §7's error table.
type Kind int

const (
	KindNotFound Kind = iota
	KindInvalidSha
	KindBadRequest
	KindUpstream
)

// Error is a typed error carrying its Kind and a human-readable message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound builds a NotFound error.
func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

// InvalidSha builds an InvalidSha error (spec.md: sha not [0-9a-f]{40}).
func InvalidSha(message string) error {
	return &Error{Kind: KindInvalidSha, Message: message}
}

// BadRequest builds a BadRequest error.
func BadRequest(message string) error {
	return &Error{Kind: KindBadRequest, Message: message}
}

// Upstream wraps a child-process or stream failure.
func Upstream(message string, err error) error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

// As extracts an *Error from err, if present.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
