// pkg/core/interface.go
package core

import (
	"context"
	"io"
)

// Resolver derives a module name from package metadata
type Resolver interface {
	// ResolveModuleName must be deterministic for a given descriptor
	ResolveModuleName(pkg *PackageDescriptor) ModuleName
}

// Executor runs host CLI commands for a module
type Executor interface {
	// Run executes the command for action. It never returns an error;
	// failures are reported through the IO sink and the Result.
	Run(ctx context.Context, name ModuleName, action Action, ignoreErrors bool) Result
}

// IO is the output sink shared by the executor and the dispatcher
type IO interface {
	// Write emits an informational line
	Write(msg string)

	// Comment emits a comment-level line (notices, command echo)
	Comment(msg string)

	// WriteError emits an error-level line
	WriteError(msg string)

	// Output returns the writer that receives raw subprocess output
	Output() io.Writer
}
