// pkg/executor/executor.go
package executor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"mvdan.cc/sh/v3/syntax"

	"github.com/arc-language/focusmod/pkg/core"
	"github.com/arc-language/focusmod/pkg/logging"
)

// Executor runs host CLI module commands
type Executor struct {
	config *core.Config
	io     core.IO
	runner Runner
	logger zerolog.Logger
}

// New creates an Executor. A nil config uses core.DefaultConfig with the
// current working directory.
func New(cfg *core.Config, out core.IO) *Executor {
	if cfg == nil {
		cfg = core.DefaultConfig()
	}
	if cfg.WorkDir == "" {
		if wd, err := os.Getwd(); err == nil {
			cfg.WorkDir = wd
		}
	}

	return &Executor{
		config: cfg,
		io:     out,
		runner: ExecRunner{},
		logger: logging.GetLogger("executor"),
	}
}

// WithRunner replaces the process runner
func (e *Executor) WithRunner(r Runner) *Executor {
	e.runner = r
	return e
}

// Run executes action for the module and reports the outcome.
// Every failure is turned into a Result plus at most one error line.
func (e *Executor) Run(ctx context.Context, name core.ModuleName, action core.Action, ignoreErrors bool) core.Result {
	err := e.Execute(ctx, name, action)
	switch {
	case err == nil:
		return core.Success

	case errors.Is(err, core.ErrEnvironmentNotReady):
		e.io.Comment("Autoload not available yet, command skipped")
		return core.Success

	case errors.Is(err, core.ErrMissingEntryPoint), errors.Is(err, core.ErrEmptyModuleName):
		e.io.WriteError(err.Error())
		return core.HardFailure
	}

	if ignoreErrors {
		e.logger.Debug().Err(err).
			Str("module", name.String()).
			Str("action", action.String()).
			Msg("Ignoring command failure")
		return core.SoftFailure
	}

	e.io.WriteError(fmt.Sprintf("Module installer error: %v", err))
	return core.HardFailure
}

// Execute checks preconditions and runs the command, returning an error
// wrapping one of the core sentinel errors on failure.
func (e *Executor) Execute(ctx context.Context, name core.ModuleName, action core.Action) error {
	done := logging.LogOperationStart(e.logger, fmt.Sprintf("%s %s", action, name))
	defer done()

	if name.IsEmpty() {
		return fmt.Errorf("%w: refusing to run %s", core.ErrEmptyModuleName, action)
	}

	entryPoint := e.EntryPointPath()
	if !fileExists(entryPoint) {
		return fmt.Errorf("%w: %s", core.ErrMissingEntryPoint, entryPoint)
	}

	bootstrap := filepath.Join(e.config.WorkDir, e.config.BootstrapFile)
	if !fileExists(bootstrap) {
		e.logger.Info().Str("bootstrap", bootstrap).Msg("Bootstrap marker missing, skipping")
		return fmt.Errorf("%w: %s", core.ErrEnvironmentNotReady, bootstrap)
	}

	cmd, err := e.BuildCommand(name, action)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrExecutionFailure, err)
	}

	e.io.Comment("Executing: " + e.Display(name, action))
	logging.LogCommand(e.logger, cmd.Path, cmd.Args)

	runCtx, cancel := context.WithTimeout(ctx, e.config.Timeout)
	defer cancel()

	if err := e.runner.Run(runCtx, cmd, e.io.Output()); err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: %w after %s", core.ErrExecutionFailure, core.ErrTimeout, e.config.Timeout)
		}
		return fmt.Errorf("%w: %v", core.ErrExecutionFailure, err)
	}

	return nil
}

// BuildCommand returns the process invocation for action. The module name is
// always a single argument.
func (e *Executor) BuildCommand(name core.ModuleName, action core.Action) (Command, error) {
	command, err := e.config.CommandFor(action)
	if err != nil {
		return Command{}, err
	}

	args := []string{e.EntryPointPath()}
	args = append(args, strings.Fields(command)...)
	args = append(args, name.String())

	return Command{
		Path: e.config.Interpreter,
		Args: args,
		Dir:  e.config.WorkDir,
	}, nil
}

// Display renders the command the way a user would type it
func (e *Executor) Display(name core.ModuleName, action core.Action) string {
	command, _ := e.config.CommandFor(action)

	tokens := []string{e.config.Interpreter, e.config.EntryPoint}
	tokens = append(tokens, strings.Fields(command)...)
	tokens = append(tokens, name.String())

	quoted := make([]string, len(tokens))
	for i, tok := range tokens {
		q, err := syntax.Quote(tok, syntax.LangBash)
		if err != nil {
			q = fmt.Sprintf("%q", tok)
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " ")
}

// EntryPointPath returns the absolute entry point location
func (e *Executor) EntryPointPath() string {
	if filepath.IsAbs(e.config.EntryPoint) {
		return e.config.EntryPoint
	}
	return filepath.Join(e.config.WorkDir, e.config.EntryPoint)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
