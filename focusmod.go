// focusmod.go
package focusmod

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/arc-language/focusmod/pkg/composer"
	"github.com/arc-language/focusmod/pkg/core"
	"github.com/arc-language/focusmod/pkg/executor"
	"github.com/arc-language/focusmod/pkg/hooks"
	"github.com/arc-language/focusmod/pkg/logging"
	"github.com/arc-language/focusmod/pkg/naming"
)

// Re-export core types for convenience
type (
	Config            = core.Config
	PackageDescriptor = core.PackageDescriptor
	ModuleName        = core.ModuleName
	Action            = core.Action
	Result            = core.Result
	IO                = core.IO
	EventName         = hooks.EventName
	Report            = hooks.Report
	Operation         = composer.Operation
)

// Re-export core constants
const (
	ActionSetup  = core.ActionSetup
	ActionRemove = core.ActionRemove

	Success     = core.Success
	SoftFailure = core.SoftFailure
	HardFailure = core.HardFailure

	PostPackageInstall   = hooks.PostPackageInstall
	PostPackageUpdate    = hooks.PostPackageUpdate
	PostPackageUninstall = hooks.PostPackageUninstall
	PostUpdateCmd        = hooks.PostUpdateCmd
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return core.DefaultConfig()
}

// LoadConfig loads configuration, see core.LoadConfig
func LoadConfig(path, workDir string) (*Config, error) {
	return core.LoadConfig(path, workDir)
}

// SaveConfig writes configuration to path, see core.SaveConfig
func SaveConfig(cfg *Config, path string) error {
	return core.SaveConfig(cfg, path)
}

// ResolveModuleName derives the module name for a package
func ResolveModuleName(pkg *PackageDescriptor) ModuleName {
	return naming.ResolveModuleName(pkg)
}

// Installer wires the resolver, the executor and the event dispatcher for
// one project
type Installer struct {
	config     *core.Config
	executor   *executor.Executor
	dispatcher *hooks.Dispatcher
	logger     zerolog.Logger
}

// NewInstaller creates an Installer writing to out
func NewInstaller(config *Config, out IO) *Installer {
	if config == nil {
		config = core.DefaultConfig()
	}

	exec := executor.New(config, out)
	return &Installer{
		config:     config,
		executor:   exec,
		dispatcher: hooks.NewDispatcher(config.PackageType, naming.Resolver{}, exec),
		logger:     logging.GetLogger("installer"),
	}
}

// WithRunner replaces the process runner, mostly for tests and embedding
func (i *Installer) WithRunner(r executor.Runner) *Installer {
	i.executor.WithRunner(r)
	return i
}

// Config returns the active configuration
func (i *Installer) Config() *Config {
	return i.config
}

// Supports reports whether the package is handled by this installer
func (i *Installer) Supports(pkg *PackageDescriptor) bool {
	return pkg != nil && naming.Supports(pkg.Type, i.config.PackageType)
}

// InstallPath returns the directory a module package is installed into
func (i *Installer) InstallPath(pkg *PackageDescriptor) string {
	return naming.InstallPath(i.config.ModulesDir, pkg)
}

// Run executes action for an already resolved module name
func (i *Installer) Run(ctx context.Context, name ModuleName, action Action, ignoreErrors bool) Result {
	return i.executor.Run(ctx, name, action, ignoreErrors)
}

// Setup sets up the module of a package by name, looked up in the project's
// installed packages and lock file
func (i *Installer) Setup(ctx context.Context, packageName string) (*Report, error) {
	pkg, err := i.lookup("setup", packageName)
	if err != nil {
		return nil, err
	}
	return i.dispatcher.PostPackageInstall(ctx, &composer.Operation{Job: composer.JobInstall, Pkg: pkg}), nil
}

// Update sets up the module of a package by name as after an update
func (i *Installer) Update(ctx context.Context, packageName string) (*Report, error) {
	pkg, err := i.lookup("update", packageName)
	if err != nil {
		return nil, err
	}
	return i.dispatcher.PostPackageUpdate(ctx, &composer.Operation{Job: composer.JobUpdate, Target: pkg}), nil
}

// Remove removes the module of a package by name. Command failures are ignored.
// A package already gone from the metadata is taken to be of the handled type
// and its module name is derived from packageName alone.
func (i *Installer) Remove(ctx context.Context, packageName string) (*Report, error) {
	pkg, err := i.lookup("remove", packageName)
	if err != nil {
		if !errors.Is(err, ErrPackageNotFound) {
			return nil, err
		}
		i.logger.Debug().Err(err).Str("package", packageName).Msg("Package not in metadata, removing by name")
		pkg = &PackageDescriptor{PrettyName: packageName, Type: i.config.PackageType}
	}
	return i.dispatcher.PostPackageUninstall(ctx, &composer.Operation{Job: composer.JobUninstall, Pkg: pkg}), nil
}

// Sweep re-runs setup for every installed module package
func (i *Installer) Sweep(ctx context.Context) (*Report, error) {
	repo, err := composer.LoadInstalled(i.config.WorkDir)
	if err != nil {
		return nil, &Error{Op: "sweep", Err: err}
	}
	return i.dispatcher.PostUpdate(ctx, repo), nil
}

// HandleEvent dispatches a package event whose operation is read as JSON
// from r. post-update-cmd ignores r and sweeps the local repository.
func (i *Installer) HandleEvent(ctx context.Context, event EventName, r io.Reader) (*Report, error) {
	if event == hooks.PostUpdateCmd {
		return i.Sweep(ctx)
	}

	op, err := composer.DecodeOperation(r)
	if err != nil {
		return nil, &Error{Op: string(event), Err: err}
	}
	i.logger.Debug().Str("event", string(event)).Str("operation", op.String()).Msg("Handling operation")

	report, err := i.dispatcher.Dispatch(ctx, event, op)
	if err != nil {
		return nil, &Error{Op: string(event), Err: err}
	}
	return report, nil
}

// Packages returns the installed packages handled by this installer
func (i *Installer) Packages() ([]*PackageDescriptor, error) {
	repo, err := composer.LoadInstalled(i.config.WorkDir)
	if err != nil {
		return nil, &Error{Op: "list", Err: err}
	}
	return repo.OfType(i.config.PackageType), nil
}

// Lookup finds an installed or locked package by name
func (i *Installer) Lookup(packageName string) (*PackageDescriptor, error) {
	return i.lookup("lookup", packageName)
}

func (i *Installer) lookup(op, packageName string) (*PackageDescriptor, error) {
	pkg, err := composer.Lookup(i.config.WorkDir, packageName)
	if err != nil {
		return nil, &Error{Op: op, Package: packageName, Err: err}
	}
	return pkg, nil
}
