// pkg/hooks/dispatcher.go
package hooks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arc-language/focusmod/pkg/core"
	"github.com/arc-language/focusmod/pkg/logging"
)

// Outcome records what happened to one package during an event
type Outcome struct {
	Package string
	Module  core.ModuleName
	Action  core.Action
	Result  core.Result
}

// Report collects outcomes of a dispatched event
type Report struct {
	Event    EventName
	Outcomes []Outcome
	Skipped  int // packages of other types, or operations without a package
}

// Failed returns the number of hard failures
func (r *Report) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Result == core.HardFailure {
			n++
		}
	}
	return n
}

// Dispatcher turns package manager events into module commands
type Dispatcher struct {
	packageType string
	resolver    core.Resolver
	executor    core.Executor
	logger      zerolog.Logger
}

// NewDispatcher creates a Dispatcher handling packages of packageType
func NewDispatcher(packageType string, resolver core.Resolver, executor core.Executor) *Dispatcher {
	if packageType == "" {
		packageType = core.DefaultPackageType
	}
	return &Dispatcher{
		packageType: packageType,
		resolver:    resolver,
		executor:    executor,
		logger:      logging.GetLogger("hooks"),
	}
}

// Dispatch routes a package event to its handler
func (d *Dispatcher) Dispatch(ctx context.Context, event EventName, op any) (*Report, error) {
	switch event {
	case PostPackageInstall:
		return d.PostPackageInstall(ctx, op), nil
	case PostPackageUpdate:
		return d.PostPackageUpdate(ctx, op), nil
	case PostPackageUninstall:
		return d.PostPackageUninstall(ctx, op), nil
	case PostUpdateCmd:
		repo, ok := op.(LocalRepository)
		if !ok {
			return nil, fmt.Errorf("%s requires the local repository", event)
		}
		return d.PostUpdate(ctx, repo), nil
	default:
		return nil, fmt.Errorf("unsupported event: %s", event)
	}
}

// PostPackageInstall sets up the installed package's module
func (d *Dispatcher) PostPackageInstall(ctx context.Context, op any) *Report {
	report := &Report{Event: PostPackageInstall}
	d.handle(ctx, report, packageOf(op), core.ActionSetup, false)
	return report
}

// PostPackageUpdate sets up the module of the update target, falling back
// to the operation's single package
func (d *Dispatcher) PostPackageUpdate(ctx context.Context, op any) *Report {
	report := &Report{Event: PostPackageUpdate}

	var pkg *core.PackageDescriptor
	if t, ok := op.(TargetOperation); ok {
		pkg = t.TargetPackage()
	}
	if pkg == nil {
		pkg = packageOf(op)
	}

	d.handle(ctx, report, pkg, core.ActionSetup, false)
	return report
}

// PostPackageUninstall removes the module. Failures are ignored so one
// missing module cannot abort the uninstall.
func (d *Dispatcher) PostPackageUninstall(ctx context.Context, op any) *Report {
	report := &Report{Event: PostPackageUninstall}
	d.handle(ctx, report, packageOf(op), core.ActionRemove, true)
	return report
}

// PostUpdate re-runs setup for every installed package of the handled type.
// A failing module never stops the sweep.
func (d *Dispatcher) PostUpdate(ctx context.Context, repo LocalRepository) *Report {
	report := &Report{Event: PostUpdateCmd}
	done := logging.LogOperationStart(d.logger, string(PostUpdateCmd))
	defer done()

	for _, pkg := range repo.Packages() {
		d.handle(ctx, report, pkg, core.ActionSetup, false)
	}

	d.logger.Info().
		Int("modules", len(report.Outcomes)).
		Int("failed", report.Failed()).
		Int("skipped", report.Skipped).
		Msg("Sweep finished")
	return report
}

func (d *Dispatcher) handle(ctx context.Context, report *Report, pkg *core.PackageDescriptor, action core.Action, ignoreErrors bool) {
	if pkg == nil || !pkg.IsType(d.packageType) {
		report.Skipped++
		return
	}

	name := d.resolver.ResolveModuleName(pkg)
	d.logger.Debug().
		Str("package", pkg.PrettyName).
		Str("module", name.String()).
		Str("action", action.String()).
		Msg("Dispatching module command")

	result := d.executor.Run(ctx, name, action, ignoreErrors)
	report.Outcomes = append(report.Outcomes, Outcome{
		Package: pkg.PrettyName,
		Module:  name,
		Action:  action,
		Result:  result,
	})
}

func packageOf(op any) *core.PackageDescriptor {
	if p, ok := op.(PackageOperation); ok {
		return p.Package()
	}
	return nil
}
