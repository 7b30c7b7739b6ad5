// internal/cli/setup.go
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/focusmod"
	"github.com/arc-language/focusmod/pkg/hooks"
)

func newSetupCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "setup [package...]",
		Short: "Set up the modules of one or more packages",
		Long: `Run the host setup command for each package's module.

Examples:
  focusmod setup acme/blog
  focusmod setup acme/blog acme/shop`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return forEachPackage(cmd, opts, hooks.PostPackageInstall, args, opts.installer.Setup)
		},
	}
}

func newRemoveCmd(opts *options) *cobra.Command {
	var modules []string

	cmd := &cobra.Command{
		Use:   "remove [package...]",
		Short: "Remove the modules of one or more packages",
		Long: `Run the host remove command for each package's module. Failures are
ignored, as during a Composer uninstall.

Packages already gone from the lock file can be removed by module name:
  focusmod remove --module Blog`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && len(modules) == 0 {
				return fmt.Errorf("requires at least one package or --module")
			}

			ctx := context.Background()
			report := &hooks.Report{Event: hooks.PostPackageUninstall}
			for _, m := range modules {
				result := opts.installer.Run(ctx, focusmod.ModuleName(m), focusmod.ActionRemove, true)
				report.Outcomes = append(report.Outcomes, hooks.Outcome{
					Module: focusmod.ModuleName(m),
					Action: focusmod.ActionRemove,
					Result: result,
				})
			}
			collect(cmd, report, args, opts.installer.Remove)
			return opts.finish(cmd, report)
		},
	}

	cmd.Flags().StringSliceVarP(&modules, "module", "m", nil, "module name to remove directly")
	return cmd
}

func newSweepCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Set up every installed module (post-update-cmd)",
		Long: `Re-run the host setup command for every installed package of the
module type. One module failing does not stop the others.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := opts.installer.Sweep(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d module(s) processed, %d failed\n", len(report.Outcomes), report.Failed())
			return opts.finish(cmd, report)
		},
	}
}

type packageFunc func(ctx context.Context, name string) (*hooks.Report, error)

func forEachPackage(cmd *cobra.Command, opts *options, event hooks.EventName, names []string, fn packageFunc) error {
	report := &hooks.Report{Event: event}
	collect(cmd, report, names, fn)
	return opts.finish(cmd, report)
}

// collect runs fn for every name and merges the reports. A package that
// cannot be looked up counts as a hard failure; the rest still run.
func collect(cmd *cobra.Command, into *hooks.Report, names []string, fn packageFunc) {
	ctx := context.Background()
	for _, name := range names {
		report, err := fn(ctx, name)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "✗ %v\n", err)
			into.Outcomes = append(into.Outcomes, hooks.Outcome{Package: name, Result: focusmod.HardFailure})
			continue
		}
		into.Outcomes = append(into.Outcomes, report.Outcomes...)
		into.Skipped += report.Skipped
		if report.Skipped > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "- %s is not a module package, skipped\n", name)
		}
	}
}
