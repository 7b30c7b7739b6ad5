// internal/cli/list.go
package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/arc-language/focusmod/pkg/naming"
)

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed module packages",
		Long:  `List every installed package of the module type with its resolved module name and install path.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			packages, err := opts.installer.Packages()
			if err != nil {
				return err
			}

			if len(packages) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No %s packages installed\n", opts.config.PackageType)
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PACKAGE\tVERSION\tMODULE\tPATH")
			for _, pkg := range packages {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					pkg.PrettyName,
					pkg.Version,
					naming.ResolveModuleName(pkg),
					opts.installer.InstallPath(pkg))
			}
			return w.Flush()
		},
	}
}
