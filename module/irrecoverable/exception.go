package irrecoverable

import (
	"errors"
	"fmt"
)

// exception marks an error that the caller cannot handle: a corrupt value
// in the database, a broken invariant. It should bubble up and stop the
// component.
type exception struct {
	err error
}

func (e exception) Error() string {
	return e.err.Error()
}

func (e exception) Unwrap() error {
	return e.err
}

// NewException wraps err as an exception.
func NewException(err error) error {
	return exception{err: err}
}

// NewExceptionf formats an exception; %w verbs keep the cause available.
func NewExceptionf(msg string, args ...interface{}) error {
	return NewException(fmt.Errorf(msg, args...))
}

// IsException reports whether any error in the chain is an exception.
func IsException(err error) bool {
	var e exception
	return errors.As(err, &e)
}
