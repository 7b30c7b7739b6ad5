// internal/cli/version.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "focusmod version %s\n", Version)
			fmt.Fprintln(cmd.OutOrStdout(), "Composer module installer hook")
			fmt.Fprintln(cmd.OutOrStdout(), "https://github.com/arc-language/focusmod")
		},
	}
}
