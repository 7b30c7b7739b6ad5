// errors.go
package focusmod

import (
	"fmt"

	"github.com/arc-language/focusmod/pkg/composer"
	"github.com/arc-language/focusmod/pkg/core"
)

var (
	// ErrMissingEntryPoint indicates the host CLI entry point does not exist
	ErrMissingEntryPoint = core.ErrMissingEntryPoint

	// ErrEnvironmentNotReady indicates the bootstrap marker is absent
	ErrEnvironmentNotReady = core.ErrEnvironmentNotReady

	// ErrExecutionFailure indicates the host command failed
	ErrExecutionFailure = core.ErrExecutionFailure

	// ErrEmptyModuleName indicates no module name could be derived
	ErrEmptyModuleName = core.ErrEmptyModuleName

	// ErrTimeout indicates the host command exceeded its time limit
	ErrTimeout = core.ErrTimeout

	// ErrPackageNotFound indicates the package is not in the local repository
	ErrPackageNotFound = composer.ErrPackageNotFound

	// ErrInvalidOperation indicates a malformed operation document
	ErrInvalidOperation = composer.ErrInvalidOperation
)

// Error wraps an error with additional context
type Error struct {
	Op      string // Operation that failed
	Package string // Package name if applicable
	Err     error  // Underlying error
}

func (e *Error) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Package, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
