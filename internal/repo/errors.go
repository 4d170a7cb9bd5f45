package repo

import (
	"errors"
	"fmt"
)

var (
	ErrUnreachable   = errors.New("source unreachable")
	ErrMalformed     = errors.New("malformed source")
	ErrMissingColumn = errors.New("missing required column")
)

// LoadError is returned when the base table cannot be produced. No partial
// table accompanies it.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func loadErr(source string, kind error, format string, args ...any) error {
	return &LoadError{
		Source: source,
		Err:    fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...)),
	}
}
