// Package cli implements the cobra command tree for k8sdeployer.
package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hupe1980/k8sdeployer/internal/config"
	"github.com/hupe1980/k8sdeployer/internal/logging"
	"github.com/hupe1980/k8sdeployer/internal/version"
)

// Process exit codes.
const (
	exitGeneral    = 1
	exitUsage      = 2
	exitConfig     = 3
	exitOutput     = 6
	exitValidation = 7
	exitDiff       = 8
)

// ExitError wraps an error with a specific process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}

	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Execute builds the command tree, runs it, and returns the exit code.
func Execute() int {
	cmd := NewRootCommand()

	if err := cmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)

		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}

		return exitGeneral
	}

	return 0
}

// NewRootCommand constructs the top-level cobra.Command with all
// subcommands attached. Run without a subcommand it behaves like generate.
func NewRootCommand() *cobra.Command {
	var cfgFile string

	genOpts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   version.Name,
		Short: "Generate Kubernetes manifests for a microservice",
		Long: `k8sdeployer turns a declarative microservice description into
Kubernetes manifests.

It reads the description (config.json by default), builds a Namespace plus a
Deployment for every component, and a Service, Secret or ConfigMap where the
component asks for one. Each manifest is written to its own file in the
output directory (k8s/ by default).

Running k8sdeployer without a subcommand is the same as "k8sdeployer generate".`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd, cfgFile)
			if err != nil {
				return &ExitError{Code: exitUsage, Err: err}
			}

			logger := logging.Setup(cfg)

			ctx := cmd.Context()
			ctx = config.NewContext(ctx, cfg)
			ctx = logging.NewContext(ctx, logger)
			cmd.SetContext(ctx)

			logger.Debug("configuration loaded",
				slog.String("configFile", cfg.ConfigFile),
				slog.String("input", cfg.Input),
				slog.String("outputDir", cfg.OutputDir),
				slog.Bool("strict", cfg.Strict),
			)

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, genOpts)
		},
	}

	// Global persistent flags.
	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: .k8sdeployer.yaml)")
	pf.String("log-level", config.LogLevelInfo, "log level: debug, info, warn, error")
	pf.String("log-format", config.LogFormatText, "log format: text, json")
	pf.Bool("no-color", false, "disable colored output")
	pf.BoolP("quiet", "q", false, "suppress non-essential output")
	registerInputFlags(cmd)

	registerGenerateFlags(cmd, genOpts)
	registerFlagCompletions(cmd)

	// Flag parsing errors return exit code 2.
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: exitUsage, Err: err}
	})

	cmd.AddCommand(
		newGenerateCommand(),
		newInspectCommand(),
		newDiffCommand(),
		newValidateCommand(),
		newWatchCommand(),
		newVersionCommand(),
		newCompletionCommand(),
	)

	return cmd
}
