package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/modinfo/config"
	"github.com/dhamidi/modinfo/java/module"
)

const version = "0.1.0"

var log = commonlog.GetLogger("modinfo")

// errSilent signals a non-zero exit whose cause has already been printed.
var errSilent = errors.New("exit status 1")

type app struct {
	cfg *config.Config

	errors    string
	verbosity int
	color     string
}

func (a *app) listener() (module.ErrorListener, error) {
	return module.ListenerNamed(a.cfg.Errors, log)
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("errors") {
		cfg.Errors = a.errors
	}
	if flags.Changed("verbose") {
		cfg.Verbosity = a.verbosity
	}
	if flags.Changed("color") {
		cfg.Color = a.color
	}
	a.cfg = cfg

	commonlog.Configure(cfg.Verbosity, nil)

	switch cfg.Color {
	case config.ColorAlways:
		color.NoColor = false
	case config.ColorNever:
		color.NoColor = true
	case config.ColorAuto:
	default:
		return fmt.Errorf("unknown color mode %q", cfg.Color)
	}
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "modinfo",
		Short:         "Inspect Java module declarations",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.errors, "errors", "log", "error policy for malformed input (silent, log, fail)")
	flags.CountVarP(&a.verbosity, "verbose", "v", "increase log verbosity")
	flags.StringVar(&a.color, "color", config.ColorAuto, "colored output (auto, always, never)")

	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newResolveCmd(a))
	rootCmd.AddCommand(newQueryCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newTreeCmd(a))
	rootCmd.AddCommand(newLSPCmd(a))

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errSilent) {
			color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "error: ")
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
