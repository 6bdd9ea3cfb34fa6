package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNoStableEntry is returned when no game version entry is marked stable.
	ErrNoStableEntry = errors.New("no stable entry")

	// ErrUnknownDefinition is returned when a named reference has no definition.
	ErrUnknownDefinition = errors.New("unknown definition")

	// ErrUnknownGameVersion is returned when a game version key is not in the catalog.
	ErrUnknownGameVersion = errors.New("unknown game version")
)

// DecodeError reports why a catalog document could not be decoded.
// Path locates the offending value, for example `$.versions["1.20.4"].api`.
type DecodeError struct {
	Path   string
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decoding catalog at %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("decoding catalog at %s: %s", e.Path, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// LookupError is returned when a catalog lookup has no result.
type LookupError struct {
	Name string
	Err  error
}

func (e *LookupError) Error() string {
	if e.Name == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Name)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// SelectError is returned when a candidate passed the filter but is not a version.
type SelectError struct {
	Candidate string
	Err       error
}

func (e *SelectError) Error() string {
	return fmt.Sprintf("selecting latest version: candidate %q: %v", e.Candidate, e.Err)
}

func (e *SelectError) Unwrap() error {
	return e.Err
}
