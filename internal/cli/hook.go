// internal/cli/hook.go
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arc-language/focusmod/pkg/hooks"
)

func newHookCmd(opts *options) *cobra.Command {
	var (
		input       string
		packageName string
	)

	cmd := &cobra.Command{
		Use:   "hook <event>",
		Short: "Handle a Composer event",
		Long: `Handle one Composer event.

Package events read an operation document as JSON, from stdin by default:

  {"job": "install", "package": {"name": "acme/blog", "type": "focus-module"}}
  {"job": "update", "initial": {...}, "target": {...}}

With --package the package is looked up in vendor/composer/installed.json
and composer.lock instead. post-update-cmd sweeps every installed module.

Events: ` + eventList(),
		Args:      cobra.ExactArgs(1),
		ValidArgs: eventNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			event := hooks.EventName(args[0])
			if !event.Valid() {
				return fmt.Errorf("unsupported event %q (expected one of: %s)", args[0], eventList())
			}

			if packageName != "" && event.IsPackageEvent() {
				report, err := runForPackage(ctx, opts, event, packageName)
				if err != nil {
					return err
				}
				return opts.finish(cmd, report)
			}

			var r io.Reader = cmd.InOrStdin()
			if input != "" && input != "-" {
				f, err := os.Open(input)
				if err != nil {
					return fmt.Errorf("opening operation: %w", err)
				}
				defer f.Close()
				r = f
			}

			report, err := opts.installer.HandleEvent(ctx, event, r)
			if err != nil {
				return err
			}
			return opts.finish(cmd, report)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "operation document file ('-' for stdin)")
	cmd.Flags().StringVarP(&packageName, "package", "p", "", "look the package up by name instead of reading an operation")
	return cmd
}

func runForPackage(ctx context.Context, opts *options, event hooks.EventName, name string) (*hooks.Report, error) {
	switch event {
	case hooks.PostPackageUninstall:
		return opts.installer.Remove(ctx, name)
	case hooks.PostPackageUpdate:
		return opts.installer.Update(ctx, name)
	default:
		return opts.installer.Setup(ctx, name)
	}
}

func eventNames() []string {
	var names []string
	for _, e := range hooks.SubscribedEvents() {
		names = append(names, string(e))
	}
	return names
}

func eventList() string {
	return strings.Join(eventNames(), ", ")
}
