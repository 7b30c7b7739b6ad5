// internal/cli/doctor.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/focusmod/pkg/composer"
	"github.com/arc-language/focusmod/pkg/platform"
)

func newDoctorCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that module commands can run",
		Long:  `Check the interpreter, the host entry point and the bootstrap marker.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := platform.Detect(opts.config)
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Platform: %s/%s\n", p.OS, p.Arch)
			fmt.Fprintf(out, "Project: %s\n", p.WorkDir)
			fmt.Fprintf(out, "Interpreter: %s\n", orDash(p.Interpreter))
			fmt.Fprintf(out, "Entry point: %s\n", p.EntryPoint)
			fmt.Fprintf(out, "Bootstrap: %s\n", p.Bootstrap)

			if repo, err := composer.LoadInstalled(p.WorkDir); err == nil {
				fmt.Fprintf(out, "Metadata: %s (%d packages, %d modules)\n",
					repo.Source(), len(repo.Packages()), len(repo.OfType(opts.config.PackageType)))
			} else {
				fmt.Fprintf(out, "Metadata: - (%v)\n", err)
			}

			problems := p.Problems()
			if len(problems) == 0 {
				fmt.Fprintln(out, "\n✓ Ready")
				return nil
			}

			fmt.Fprintln(out)
			for _, problem := range problems {
				fmt.Fprintf(out, "✗ %s\n", problem)
			}
			if opts.strict {
				return fmt.Errorf("%d problem(s) found", len(problems))
			}
			return nil
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
