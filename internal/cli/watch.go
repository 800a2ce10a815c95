package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/k8sdeployer/internal/config"
	"github.com/hupe1980/k8sdeployer/internal/logging"
	"github.com/hupe1980/k8sdeployer/internal/watch"
)

type watchOptions struct {
	debounce time.Duration
}

func newWatchCommand() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate manifests whenever the description changes",
		Long: `Watch generates the manifests once and then again each time the
microservice description changes. When --env-component is set, changes to
the env file trigger a regeneration too.

File changes are debounced to avoid rapid re-runs. A failed regeneration is
reported and the watcher keeps running.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().DurationVar(&opts.debounce, "debounce", 500*time.Millisecond, "debounce interval for file changes")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, opts *watchOptions) error {
	cfg := config.FromContext(ctx)

	files := []string{cfg.Input}
	if cfg.EnvComponent != "" {
		files = append(files, cfg.EnvFile)
	}

	runFn := func(fnCtx context.Context) (*watch.RunResult, error) {
		result, err := runPipeline(fnCtx)
		if err != nil {
			return nil, err
		}

		written, err := writeManifests(cmd, cfg, result)
		if err != nil {
			return nil, err
		}

		return &watch.RunResult{
			ResourceCount: len(result.Resources),
			Written:       written,
		}, nil
	}

	watchOpts := watch.Options{
		Files:    files,
		Debounce: opts.debounce,
		Logger:   logging.FromContext(ctx),
		Out:      cmd.ErrOrStderr(),
	}

	return watch.Run(ctx, watchOpts, runFn)
}
