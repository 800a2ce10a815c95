package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/k8sdeployer/internal/config"
	"github.com/hupe1980/k8sdeployer/internal/diff"
	"github.com/hupe1980/k8sdeployer/internal/output"
	"github.com/hupe1980/k8sdeployer/internal/ui"
)

type diffOptions struct {
	// Multi-document YAML stream to compare against instead of the output
	// directory.
	against string

	// Return exit code 8 when any manifest differs.
	exitCode bool

	// Number of context lines in each hunk.
	context int
}

func newDiffCommand() *cobra.Command {
	opts := &diffOptions{}

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Compare generated manifests with the files on disk",
		Long: `Diff generates the manifests in memory and compares each one with the
file generate would overwrite, printing a unified diff. Manifests without a
file on disk are reported as added. Nothing is written.

With --against the manifests are compared with a multi-document YAML stream
instead, for example one saved earlier from "generate --stdout". Objects are
matched by kind, namespace and name; objects in the stream that are no
longer generated are reported as removed.

Exit codes:
  0  No differences (or differences without --exit-code)
  3  Invalid microservice description
  8  Differences found (with --exit-code)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDiff(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.against, "against", "", "compare with a multi-document YAML stream file")
	f.BoolVar(&opts.exitCode, "exit-code", false, "exit with code 8 when differences are found")
	f.IntVarP(&opts.context, "context", "U", 3, "number of context lines")

	return cmd
}

func runDiff(cmd *cobra.Command, opts *diffOptions) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)

	result, err := runPipeline(ctx)
	if err != nil {
		return err
	}

	diffOpts := diff.DefaultOptions()
	diffOpts.Context = opts.context

	baseline := cfg.OutputDir

	var diffs []diff.FileDiff

	if opts.against != "" {
		baseline = opts.against

		stream, readErr := os.ReadFile(opts.against)
		if readErr != nil {
			return &ExitError{Code: exitGeneral, Err: fmt.Errorf("reading %s: %w", opts.against, readErr)}
		}

		diffOpts.OldLabel = opts.against
		diffs, err = diff.Stream(stream, result.Manifests(), diffOpts)
	} else {
		diffs, err = diff.Files(output.NewDirWriter(cfg.OutputDir), result.Microservice, result.Manifests(), diffOpts)
	}

	if err != nil {
		return &ExitError{Code: exitGeneral, Err: fmt.Errorf("computing diff: %w", err)}
	}

	p := ui.New(cmd.OutOrStdout(), cfg.NoColor)

	var added, modified, removed, unchanged int

	for _, d := range diffs {
		switch d.Status {
		case diff.StatusUnchanged:
			unchanged++
			continue
		case diff.StatusAdded:
			added++
		case diff.StatusModified:
			modified++
		case diff.StatusRemoved:
			removed++
		}

		p.Header("%s (%s)", d.Name, d.Status)
		diff.Write(p, d.Result)
		p.Plain("")
	}

	if !diff.Changed(diffs) {
		p.Success("No differences found.")
		return nil
	}

	p.Plain("%d modified, %d added, %d removed, %d unchanged", modified, added, removed, unchanged)

	if opts.exitCode {
		return &ExitError{Code: exitDiff, Err: fmt.Errorf("%d manifest(s) differ from %s", modified+added+removed, baseline)}
	}

	return nil
}
