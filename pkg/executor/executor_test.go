package executor

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/arc-language/focusmod/pkg/console"
	"github.com/arc-language/focusmod/pkg/core"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// recordingRunner captures invocations instead of spawning processes
type recordingRunner struct {
	calls  []Command
	output string
	err    error
}

func (r *recordingRunner) Run(ctx context.Context, cmd Command, output io.Writer) error {
	r.calls = append(r.calls, cmd)
	if r.output != "" {
		_, _ = io.WriteString(output, r.output)
	}
	return r.err
}

type project struct {
	dir string
	cfg *core.Config
}

func newProject(t *testing.T, script string, withBootstrap bool) *project {
	t.Helper()
	dir := t.TempDir()

	if script != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "artisan"), []byte(script), 0755))
	}
	if withBootstrap {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "vendor"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "vendor", "autoload.php"), []byte("<?php\n"), 0644))
	}

	cfg := core.DefaultConfig()
	cfg.WorkDir = dir
	cfg.Interpreter = "/bin/sh"
	return &project{dir: dir, cfg: cfg}
}

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("requires /bin/sh")
	}
}

func TestRun_SkipsWhenBootstrapMissing(t *testing.T) {
	p := newProject(t, "exit 0\n", false)
	out := console.NewBuffer()
	runner := &recordingRunner{}

	result := New(p.cfg, out).WithRunner(runner).Run(context.Background(), "Blog", core.ActionSetup, false)

	assert.Equal(t, core.Success, result)
	assert.Empty(t, runner.calls, "no process may be spawned")
	assert.Empty(t, out.Errors())
	require.Len(t, out.LinesAt(console.LevelComment), 1)
	assert.Contains(t, out.LinesAt(console.LevelComment)[0], "skipped")
}

func TestRun_HardFailureWhenEntryPointMissing(t *testing.T) {
	p := newProject(t, "", true)
	out := console.NewBuffer()
	runner := &recordingRunner{}

	result := New(p.cfg, out).WithRunner(runner).Run(context.Background(), "Blog", core.ActionSetup, false)

	assert.Equal(t, core.HardFailure, result)
	assert.Empty(t, runner.calls)
	require.Len(t, out.Errors(), 1)
	assert.Contains(t, out.Errors()[0], filepath.Join(p.dir, "artisan"))
}

func TestRun_EntryPointMissingIsHardEvenWhenIgnoringErrors(t *testing.T) {
	p := newProject(t, "", true)
	out := console.NewBuffer()

	result := New(p.cfg, out).WithRunner(&recordingRunner{}).Run(context.Background(), "Blog", core.ActionRemove, true)

	assert.Equal(t, core.HardFailure, result)
	assert.Len(t, out.Errors(), 1)
}

func TestRun_EmptyModuleName(t *testing.T) {
	p := newProject(t, "exit 0\n", true)
	out := console.NewBuffer()
	runner := &recordingRunner{}

	result := New(p.cfg, out).WithRunner(runner).Run(context.Background(), "", core.ActionSetup, false)

	assert.Equal(t, core.HardFailure, result)
	assert.Empty(t, runner.calls)
	require.Len(t, out.Errors(), 1)
	assert.Contains(t, out.Errors()[0], "empty module name")
}

func TestRun_IgnoreErrorsGivesSoftFailure(t *testing.T) {
	p := newProject(t, "exit 0\n", true)
	out := console.NewBuffer()
	runner := &recordingRunner{err: errors.New("exit status 1")}

	result := New(p.cfg, out).WithRunner(runner).Run(context.Background(), "Blog", core.ActionRemove, true)

	assert.Equal(t, core.SoftFailure, result)
	assert.Len(t, runner.calls, 1)
	assert.Empty(t, out.Errors())
}

func TestRun_FailureReportedOnce(t *testing.T) {
	p := newProject(t, "exit 0\n", true)
	out := console.NewBuffer()
	runner := &recordingRunner{err: errors.New("exit status 1")}

	result := New(p.cfg, out).WithRunner(runner).Run(context.Background(), "Blog", core.ActionSetup, false)

	assert.Equal(t, core.HardFailure, result)
	require.Len(t, out.Errors(), 1)
	assert.Contains(t, out.Errors()[0], "exit status 1")
}

func TestBuildCommand_StructuredArguments(t *testing.T) {
	p := newProject(t, "exit 0\n", true)
	e := New(p.cfg, console.NewBuffer())

	cmd, err := e.BuildCommand("Blog Engine", core.ActionSetup)
	require.NoError(t, err)

	assert.Equal(t, "/bin/sh", cmd.Path)
	assert.Equal(t, p.dir, cmd.Dir)
	assert.Equal(t, []string{filepath.Join(p.dir, "artisan"), "module:setup", "Blog Engine"}, cmd.Args)

	cmd, err = e.BuildCommand("Blog", core.ActionRemove)
	require.NoError(t, err)
	assert.Equal(t, "module:remove", cmd.Args[1])
}

func TestBuildCommand_UnknownAction(t *testing.T) {
	p := newProject(t, "exit 0\n", true)
	_, err := New(p.cfg, console.NewBuffer()).BuildCommand("Blog", core.Action(42))
	assert.Error(t, err)
}

func TestDisplay_QuotesTokens(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.WorkDir = t.TempDir()
	e := New(cfg, console.NewBuffer())

	assert.Equal(t, "php artisan module:setup Blog", e.Display("Blog", core.ActionSetup))
	assert.Equal(t, "php artisan module:remove 'Blog Engine'", e.Display("Blog Engine", core.ActionRemove))
}

func TestExecute_ErrorKinds(t *testing.T) {
	p := newProject(t, "", false)
	e := New(p.cfg, console.NewBuffer()).WithRunner(&recordingRunner{})

	err := e.Execute(context.Background(), "Blog", core.ActionSetup)
	assert.ErrorIs(t, err, core.ErrMissingEntryPoint)

	require.NoError(t, os.WriteFile(filepath.Join(p.dir, "artisan"), []byte("exit 0\n"), 0755))
	err = e.Execute(context.Background(), "Blog", core.ActionSetup)
	assert.ErrorIs(t, err, core.ErrEnvironmentNotReady)
}

func TestRun_RealProcessStreamsOutput(t *testing.T) {
	requireShell(t)
	p := newProject(t, "echo \"running $1 for $2\"\necho 'to stderr' >&2\n", true)
	out := console.NewBuffer()

	result := New(p.cfg, out).Run(context.Background(), "Blog Engine", core.ActionSetup, false)

	assert.Equal(t, core.Success, result)
	assert.Contains(t, out.RawOutput(), "running module:setup for Blog Engine")
	assert.Contains(t, out.RawOutput(), "to stderr")
	assert.Empty(t, out.Errors())
	require.NotEmpty(t, out.LinesAt(console.LevelComment))
	assert.Contains(t, out.LinesAt(console.LevelComment)[0], "Executing: /bin/sh artisan module:setup 'Blog Engine'")
}

func TestRun_RealProcessNonZeroExit(t *testing.T) {
	requireShell(t)
	p := newProject(t, "echo boom >&2\nexit 3\n", true)

	hard := console.NewBuffer()
	assert.Equal(t, core.HardFailure, New(p.cfg, hard).Run(context.Background(), "Blog", core.ActionSetup, false))
	require.Len(t, hard.Errors(), 1)
	assert.Contains(t, hard.Errors()[0], "exit status 3")
	assert.Contains(t, hard.RawOutput(), "boom")

	soft := console.NewBuffer()
	assert.Equal(t, core.SoftFailure, New(p.cfg, soft).Run(context.Background(), "Blog", core.ActionRemove, true))
	assert.Empty(t, soft.Errors())
}

func TestRun_RealProcessTimeout(t *testing.T) {
	requireShell(t)
	p := newProject(t, "exec sleep 10\n", true)
	p.cfg.Timeout = 100 * time.Millisecond
	e := New(p.cfg, console.NewBuffer())

	start := time.Now()
	err := e.Execute(context.Background(), "Blog", core.ActionSetup)

	assert.ErrorIs(t, err, core.ErrExecutionFailure)
	assert.ErrorIs(t, err, core.ErrTimeout)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRun_SpawnFailure(t *testing.T) {
	p := newProject(t, "exit 0\n", true)
	p.cfg.Interpreter = filepath.Join(p.dir, "no-such-interpreter")
	out := console.NewBuffer()

	result := New(p.cfg, out).Run(context.Background(), "Blog", core.ActionSetup, false)

	assert.Equal(t, core.HardFailure, result)
	assert.Len(t, out.Errors(), 1)
}
