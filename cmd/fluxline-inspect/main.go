package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fluxline/inspect/internal/cli/config"
	"github.com/fluxline/inspect/internal/inspect"
	"github.com/fluxline/inspect/internal/registry"
)

// Exit statuses. Load and construct failures share a status; the error
// types themselves stay distinguishable.
const (
	exitOK          = 0
	exitNotFound    = 1
	exitLoadFailure = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, inspect.ErrNotFound) {
			fmt.Fprintln(stderr, err)
		}
		return statusFromError(err)
	}
	return exitOK
}

func newRootCommand() *cobra.Command {
	var (
		registryPath string
		noColor      bool
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "fluxline-inspect [ELEMENT-NAME | PLUGIN-NAME]",
		Short: "Print information about Fluxline elements",
		Long: `fluxline-inspect is a diagnostic tool for the Fluxline media framework.

With no argument it lists every element known to the registry, grouped by
owning plugin. Given an element name it prints the element's full report:
factory and plugin details, type hierarchy, interfaces, pad templates,
clocking and URI capabilities, live pads, and configurable properties.`,
		Example: `  # List all elements
  fluxline-inspect

  # Inspect one element
  fluxline-inspect videotestsrc

  # Inspect against a specific registry cache
  fluxline-inspect --registry /var/cache/fluxline/registry.json filesrc`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("registry") {
				cfg.Registry = registryPath
			}
			if noColor {
				cfg.NoColor = true
			}
			if verbose {
				cfg.Verbose = true
			}

			if cfg.NoColor {
				color.NoColor = true
			}

			logger := zap.NewNop()
			if cfg.Verbose {
				if dev, err := zap.NewDevelopment(); err == nil {
					logger = dev.With(zap.String("run_id", uuid.NewString()))
				}
			}
			defer func() { _ = logger.Sync() }()

			reg, err := openRegistry(cfg.Registry, logger)
			if err != nil {
				return err
			}

			reporter := inspect.NewReporter(reg, cmd.OutOrStdout(), logger)
			if len(args) == 0 {
				reporter.ListElements()
				return nil
			}

			name := args[0]
			if err := reporter.InspectFeature(name); err != nil {
				if errors.Is(err, inspect.ErrNotFound) {
					fmt.Fprintf(cmd.OutOrStdout(), "No such element or plugin '%s'\n", name)
				}
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&registryPath, "registry", "", "Path to a registry cache file (default: builtin snapshot)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Log registry and construction details to stderr")

	cmd.AddCommand(versionCmd)
	return cmd
}

func openRegistry(path string, logger *zap.Logger) (registry.Registry, error) {
	if path == "" {
		logger.Debug("using builtin registry snapshot")
		return registry.Builtin()
	}
	logger.Debug("loading registry cache", zap.String("path", path))
	return registry.Load(path)
}

// statusFromError maps the inspection error taxonomy onto process exit
// statuses.
func statusFromError(err error) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, inspect.ErrNotFound) {
		return exitNotFound
	}
	return exitLoadFailure
}
