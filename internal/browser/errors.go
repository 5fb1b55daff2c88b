package browser

import (
	"errors"
	"fmt"
)

// ErrSession marks failures of the browser session itself: launch, login,
// navigation or reading the rendered page.
var ErrSession = errors.New("browser session failed")

type SessionError struct {
	Step string
	Err  error
}

func (e *SessionError) Error() string { return fmt.Sprintf("browser %s: %v", e.Step, e.Err) }

func (e *SessionError) Is(target error) bool { return target == ErrSession }

func (e *SessionError) Unwrap() error { return e.Err }

func stepErr(step string, err error) error {
	if err == nil {
		return nil
	}
	return &SessionError{Step: step, Err: err}
}
