package docker

import "errors"

var (
	// ErrRuntimeUnavailable means the Docker daemon could not be reached or
	// refused the query.
	ErrRuntimeUnavailable = errors.New("container runtime unavailable")

	// ErrQueryTimeout means a runtime query exceeded its bounded duration.
	ErrQueryTimeout = errors.New("container runtime query timed out")
)
