// internal/cli/info.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/focusmod/pkg/naming"
)

func newInfoCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "info [package]",
		Short: "Show how a package maps to a module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, err := opts.installer.Lookup(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Package: %s\n", pkg.PrettyName)
			if pkg.Version != "" {
				fmt.Fprintf(out, "Version: %s\n", pkg.Version)
			}
			fmt.Fprintf(out, "Type: %s\n", pkg.Type)
			fmt.Fprintf(out, "Handled: %v\n", opts.installer.Supports(pkg))

			name := naming.ResolveModuleName(pkg)
			if name.IsEmpty() {
				fmt.Fprintf(out, "Module: (empty, commands would be refused)\n")
				return nil
			}
			fmt.Fprintf(out, "Module: %s\n", name)
			fmt.Fprintf(out, "Install path: %s\n", opts.installer.InstallPath(pkg))
			return nil
		},
	}
}
