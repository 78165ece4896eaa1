package hostsfile

import (
	"errors"
	"fmt"
)

// ErrMarkerCorruption matches any MarkerCorruptionError via errors.Is.
var ErrMarkerCorruption = errors.New("managed section markers corrupted")

// MarkerCorruptionError reports a malformed managed section: a begin marker
// without an end, an end without a begin, reversed order, or duplicates.
// It indicates external tampering; the file is never repaired silently.
type MarkerCorruptionError struct {
	Path   string
	Reason string
}

func NewMarkerCorruptionError(path, reason string) *MarkerCorruptionError {
	return &MarkerCorruptionError{Path: path, Reason: reason}
}

func (e *MarkerCorruptionError) Error() string {
	return fmt.Sprintf("%s: %s in %s", ErrMarkerCorruption, e.Reason, e.Path)
}

func (e *MarkerCorruptionError) Unwrap() error {
	return ErrMarkerCorruption
}
