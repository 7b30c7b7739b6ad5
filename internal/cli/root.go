// internal/cli/root.go
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/arc-language/focusmod"
	"github.com/arc-language/focusmod/pkg/console"
	"github.com/arc-language/focusmod/pkg/hooks"
	"github.com/arc-language/focusmod/pkg/logging"
)

// Version is the focusmod release
const Version = "0.1.0"

// options holds global flag values and the objects built from them
type options struct {
	cfgFile   string
	workDir   string
	verbosity int
	strict    bool
	noColor   bool

	config    *focusmod.Config
	installer *focusmod.Installer
}

// Execute executes the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "focusmod",
		Short: "Composer module installer hook",
		Long: `focusmod - Composer module installer hook

Sets up and removes host application modules when Composer installs,
updates or uninstalls packages of the module type. Wire it into
composer.json scripts, e.g.

  "scripts": {
    "post-update-cmd": "focusmod sweep"
  }`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init(cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is ./focusmod.yaml or $XDG_CONFIG_HOME/focusmod/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&opts.workDir, "workdir", "d", "", "project root (default is the current directory)")
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", "increase log verbosity (-v info, -vv debug, -vvv trace)")
	rootCmd.PersistentFlags().BoolVar(&opts.strict, "strict", false, "exit non-zero when any module command fails")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	// Add commands
	rootCmd.AddCommand(newHookCmd(opts))
	rootCmd.AddCommand(newSetupCmd(opts))
	rootCmd.AddCommand(newRemoveCmd(opts))
	rootCmd.AddCommand(newSweepCmd(opts))
	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newInfoCmd(opts))
	rootCmd.AddCommand(newDoctorCmd(opts))
	rootCmd.AddCommand(newInitCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func (o *options) init(stdout, stderr io.Writer) error {
	logging.SetupLoggerTo(stderr, o.verbosity, o.noColor)

	cfg, err := focusmod.LoadConfig(o.cfgFile, o.workDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.Debug && o.verbosity < 2 {
		logging.SetupLoggerTo(stderr, 2, o.noColor)
	}
	o.config = cfg

	out := console.New(stdout, stderr)
	out.SetNoColor(o.noColor || os.Getenv("NO_COLOR") != "")
	o.installer = focusmod.NewInstaller(cfg, out)
	return nil
}

// finish applies the --strict policy to a report
func (o *options) finish(cmd *cobra.Command, report *hooks.Report) error {
	if report == nil {
		return nil
	}
	if failed := report.Failed(); failed > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d module command(s) failed\n", failed)
		if o.strict {
			return fmt.Errorf("%s: %d module command(s) failed", report.Event, failed)
		}
	}
	return nil
}
