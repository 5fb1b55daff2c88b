package wellfound

import (
	"errors"
	"fmt"
)

// ErrLayoutChanged means a required marker is missing from a job card,
// which almost always means the board changed its markup.
var ErrLayoutChanged = errors.New("listing layout changed")

type LayoutError struct {
	Card     int // 0-based card index in document order
	Field    Field
	Selector string
	Reason   string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("listing card %d: field %q: %s (selector %s)", e.Card, e.Field, e.Reason, e.Selector)
}

func (e *LayoutError) Unwrap() error { return ErrLayoutChanged }
