package domain

import "errors"

// ErrNotRepository is returned when no repository encloses the working
// directory. Callers treat it as a silent, successful exit.
var ErrNotRepository = errors.New("not a git repository")

// ContextError names the operation that failed together with its cause.
type ContextError struct {
	Context string
	Err     error
}

func (e *ContextError) Error() string {
	return e.Context + ". Error: " + e.Err.Error()
}

func (e *ContextError) Unwrap() error {
	return e.Err
}

// Wrap attaches a context string to err. It returns nil if err is nil.
func Wrap(context string, err error) error {
	if err == nil {
		return nil
	}
	return &ContextError{Context: context, Err: err}
}
