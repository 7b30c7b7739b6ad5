// internal/cli/init.go
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arc-language/focusmod"
)

func newInitCmd(opts *options) *cobra.Command {
	var (
		format string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the active configuration to focusmod.yaml",
		Long: `Write the active configuration (defaults, config file and environment
overrides) into the project root as focusmod.yaml or focusmod.toml.

Examples:
  focusmod init
  focusmod init --format toml --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "yaml" && format != "toml" {
				return fmt.Errorf("unknown format %q (expected yaml or toml)", format)
			}

			path := filepath.Join(opts.config.WorkDir, "focusmod."+format)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			if err := focusmod.SaveConfig(opts.config, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "file format: yaml or toml")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
