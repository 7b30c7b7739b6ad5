// pkg/core/errors.go
package core

import "errors"

var (
	// ErrMissingEntryPoint indicates the host CLI entry point does not exist
	ErrMissingEntryPoint = errors.New("entry point not found")

	// ErrEnvironmentNotReady indicates the bootstrap marker is absent
	ErrEnvironmentNotReady = errors.New("environment not ready")

	// ErrExecutionFailure indicates the host command failed, could not be
	// spawned, or timed out
	ErrExecutionFailure = errors.New("execution failed")

	// ErrEmptyModuleName indicates no module name could be derived
	ErrEmptyModuleName = errors.New("empty module name")

	// ErrTimeout indicates the host command exceeded its time budget
	ErrTimeout = errors.New("command timed out")
)
