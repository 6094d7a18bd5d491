package convert

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidEncoding = errors.New("convert: input is not valid UTF-8")
	ErrMalformedMarkup = errors.New("convert: malformed markup")
)

// MalformedMarkupError reports markup that remained unparseable after the
// repair pass. Cause retains the underlying parser error.
type MalformedMarkupError struct {
	Cause error
}

func (e *MalformedMarkupError) Error() string {
	if e == nil || e.Cause == nil {
		return ErrMalformedMarkup.Error()
	}
	return fmt.Sprintf("%s: %v", ErrMalformedMarkup.Error(), e.Cause)
}

func (e *MalformedMarkupError) Unwrap() error {
	return ErrMalformedMarkup
}

// Recoverable reports whether err is a per-item conversion failure the
// orchestrator records and moves past, as opposed to an unanticipated error
// that must propagate.
func Recoverable(err error) bool {
	return errors.Is(err, ErrMalformedMarkup) || errors.Is(err, ErrInvalidEncoding)
}
