package gitrepo

import (
	"errors"
	"fmt"
)

// NotFoundError indicates a ref, SHA, or path could not be resolved.
// Handlers translate it to the protocol-specific 404 shape (spec.md §7).
type NotFoundError struct {
	Kind string // "ref", "sha", "path", "object"
	What string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.What)
}

func newNotFound(kind, what string) error {
	return &NotFoundError{Kind: kind, What: what}
}

// IsNotFound reports whether err (or something it wraps) is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
