package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/samber/lo"

	"github.com/hupe1980/k8sdeployer/internal/config"
	"github.com/hupe1980/k8sdeployer/internal/deployer"
	"github.com/hupe1980/k8sdeployer/internal/k8s"
	"github.com/hupe1980/k8sdeployer/internal/logging"
	"github.com/hupe1980/k8sdeployer/internal/manifest"
	"github.com/hupe1980/k8sdeployer/internal/output"
)

// pipelineResult holds the outputs of the description-to-resources pipeline.
type pipelineResult struct {
	Microservice string
	Description  *manifest.Configuration
	Validation   *manifest.ValidationResult
	Resources    []k8s.Resource
}

// Manifests returns the resources as output manifests.
func (r *pipelineResult) Manifests() []output.Manifest {
	return lo.Map(r.Resources, func(res k8s.Resource, _ int) output.Manifest { return res })
}

// loadDescription reads the microservice description and merges env-file
// secrets into it when an env component is configured.
func loadDescription(ctx context.Context, cfg *config.Config) (*manifest.Configuration, error) {
	logger := logging.FromContext(ctx)

	logger.Info("loading microservice description", slog.String("path", cfg.Input))

	desc, err := manifest.Load(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("loading description: %w", err)
	}

	if cfg.EnvComponent == "" {
		return desc, nil
	}

	secrets, err := manifest.LoadEnvSecrets(cfg.EnvFile)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn("env file not found, skipping", slog.String("path", cfg.EnvFile))
		return desc, nil
	case err != nil:
		return nil, err
	}

	if err := desc.MergeSecrets(cfg.EnvComponent, secrets); err != nil {
		return nil, err
	}

	logger.Debug("merged env secrets",
		slog.String("component", cfg.EnvComponent),
		slog.Int("keys", len(secrets)),
	)

	return desc, nil
}

// runPipeline loads and validates the description and generates the linked
// resources. Every failure is a configuration error (exit code 3); nothing
// is written.
func runPipeline(ctx context.Context) (*pipelineResult, error) {
	cfg := config.FromContext(ctx)
	logger := logging.FromContext(ctx)

	desc, err := loadDescription(ctx, cfg)
	if err != nil {
		return nil, &ExitError{Code: exitConfig, Err: err}
	}

	validation := manifest.Validate(desc)

	for _, w := range validation.Warnings() {
		logger.Warn(w.Message, slog.String("field", w.Field))
	}

	if err := validation.Err(); err != nil {
		return nil, &ExitError{Code: exitConfig, Err: err}
	}

	d := deployer.New(desc,
		deployer.WithLogger(logger),
		deployer.WithStrict(cfg.Strict),
	)

	resources, err := d.GenerateResources()
	if err != nil {
		return nil, &ExitError{Code: exitConfig, Err: fmt.Errorf("generating resources: %w", err)}
	}

	logger.Info("resources generated",
		slog.String("microservice", d.MicroserviceName()),
		slog.Int("count", len(resources)),
	)

	return &pipelineResult{
		Microservice: d.MicroserviceName(),
		Description:  desc,
		Validation:   validation,
		Resources:    resources,
	}, nil
}
