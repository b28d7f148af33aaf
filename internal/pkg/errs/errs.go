// Package errs narrows cockroachdb/errors to the three operations this
// codebase uses: creating, wrapping with context, and marking with a
// sentinel.
package errs

import (
	cr "github.com/cockroachdb/errors"
)

// Wrap adds msg to err's context. Nil in, nil out.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

// Mark attaches markErr so errors.Is(err, markErr) holds without replacing
// the underlying error. The handler layer relies on marks to map repository
// and domain failures onto the sentinels in domain_errors.go.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}
