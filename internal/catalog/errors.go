package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownTitle    = errors.New("unknown job title")
	ErrUnknownLocation = errors.New("unknown job location")
)

type Kind string

const (
	KindTitle    Kind = "title"
	KindLocation Kind = "location"
)

// UnknownLabelError is returned for any label outside the catalog. Valid
// lists every accepted label so callers can show them.
type UnknownLabelError struct {
	Kind  Kind
	Label string
	Valid []string
}

func (e *UnknownLabelError) Error() string {
	what := "job title"
	if e.Kind == KindLocation {
		what = "location"
	}
	return fmt.Sprintf("invalid %s %q. Must be one of: %s", what, e.Label, strings.Join(e.Valid, ", "))
}

func (e *UnknownLabelError) Unwrap() error {
	if e.Kind == KindLocation {
		return ErrUnknownLocation
	}
	return ErrUnknownTitle
}
