package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/k8sdeployer/internal/config"
	"github.com/hupe1980/k8sdeployer/internal/logging"
	"github.com/hupe1980/k8sdeployer/internal/output"
	"github.com/hupe1980/k8sdeployer/internal/ui"
)

type generateOptions struct {
	stdout bool
}

func newGenerateCommand() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate manifests from a microservice description",
		Long: `Generate reads the microservice description and writes one manifest
per resource to the output directory, named "<microservice>-<resource>.yaml".

Existing files are overwritten. Files left over from earlier runs with other
component names are not removed. With --stdout the manifests are written as
a single multi-document YAML stream instead.

Exit codes:
  0  Success
  3  Invalid microservice description
  6  Output could not be written`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts)
		},
	}

	registerGenerateFlags(cmd, opts)

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)

	result, err := runPipeline(ctx)
	if err != nil {
		return err
	}

	if opts.stdout {
		if err := output.WriteStream(output.NewStdoutWriter(cmd.OutOrStdout()), result.Manifests()); err != nil {
			return &ExitError{Code: exitOutput, Err: err}
		}

		return nil
	}

	written, err := writeManifests(cmd, cfg, result)
	if err != nil {
		return err
	}

	if !cfg.Quiet {
		p := ui.New(cmd.ErrOrStderr(), cfg.NoColor)
		p.Success("Generated %d manifest(s) for %q in %s", len(written), result.Microservice, cfg.OutputDir)

		for _, path := range written {
			p.Plain("  %s", path)
		}
	}

	return nil
}

// writeManifests writes every resource of result into the configured output
// directory.
func writeManifests(cmd *cobra.Command, cfg *config.Config, result *pipelineResult) ([]string, error) {
	dw := output.NewDirWriter(cfg.OutputDir, output.WithLogger(logging.FromContext(cmd.Context())))

	written, err := dw.WriteAll(result.Microservice, result.Manifests())
	if err != nil {
		return written, &ExitError{Code: exitOutput, Err: fmt.Errorf("writing manifests: %w", err)}
	}

	return written, nil
}
