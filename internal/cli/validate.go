package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/k8sdeployer/internal/config"
	"github.com/hupe1980/k8sdeployer/internal/manifest"
	"github.com/hupe1980/k8sdeployer/internal/ui"
)

func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a microservice description",
		Long: `Validate checks the microservice description for problems that would
produce unusable manifests: missing fields, names that are not valid
Kubernetes object names, duplicate components, replica counts and ports out
of range, malformed secret and config keys, and related resources that do
not resolve.

Reports all errors and warnings found. Returns exit code 7 on validation
failure (or on warnings with --strict).`,
		Args: cobra.NoArgs,
		RunE: runValidate,
	}

	return cmd
}

func runValidate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	p := ui.New(cmd.ErrOrStderr(), cfg.NoColor)

	desc, err := loadDescription(ctx, cfg)
	if err != nil {
		p.Error("%v", err)
		return &ExitError{Code: exitConfig, Err: err}
	}

	result := manifest.Validate(desc)

	_, _ = fmt.Fprint(cmd.ErrOrStderr(), result.Format())

	if result.HasErrors() {
		return &ExitError{Code: exitValidation, Err: fmt.Errorf("validation failed with %d error(s)", len(result.Errors()))}
	}

	if cfg.Strict && result.HasWarnings() {
		return &ExitError{Code: exitValidation, Err: fmt.Errorf("validation failed with %d warning(s) (strict mode)", len(result.Warnings()))}
	}

	p.Success("Validation passed.")

	return nil
}
