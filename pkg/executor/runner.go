// pkg/executor/runner.go
package executor

import (
	"context"
	"io"
	"os/exec"
	"time"
)

// DefaultWaitDelay bounds how long output pipes are drained after a kill
const DefaultWaitDelay = 5 * time.Second

// Command is a fully tokenized process invocation
type Command struct {
	Path string   // Interpreter
	Args []string // Arguments after Path, one element per token
	Dir  string   // Working directory
}

// Runner spawns processes. ExecRunner is the default.
type Runner interface {
	// Run blocks until the process exits. stdout and stderr both go to
	// output as they are produced.
	Run(ctx context.Context, cmd Command, output io.Writer) error
}

// ExecRunner runs commands on the local host with os/exec
type ExecRunner struct {
	WaitDelay time.Duration
}

// Run implements Runner
func (r ExecRunner) Run(ctx context.Context, c Command, output io.Writer) error {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = c.Dir

	// Both streams share output, so it must be safe for concurrent writes.
	cmd.Stdout = output
	cmd.Stderr = output

	cmd.WaitDelay = r.WaitDelay
	if cmd.WaitDelay <= 0 {
		cmd.WaitDelay = DefaultWaitDelay
	}

	return cmd.Run()
}
