package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/hupe1980/k8sdeployer/internal/version"
)

func newVersionCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Display the version, git commit, build date, Go version, platform and
the Kubernetes API version the manifests are built from.`,
		Args: cobra.NoArgs,
		// Override parent PersistentPreRunE: version needs no config.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printVersion(cmd.OutOrStdout(), version.GetInfo(), format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json, table")

	return cmd
}

func printVersion(w io.Writer, info version.Info, format string) error {
	switch format {
	case "json":
		j, err := info.JSON()
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(w, j)

		return err
	case "table":
		tbl := table.NewWriter()
		tbl.SetStyle(table.StyleRounded)

		tbl.AppendRow(table.Row{version.Name, info.Version})
		tbl.AppendRow(table.Row{"commit", info.GitCommit})
		tbl.AppendRow(table.Row{"built", info.BuildDate})
		tbl.AppendRow(table.Row{"go", info.GoVersion})
		tbl.AppendRow(table.Row{"platform", info.Platform})

		if info.KubernetesAPI != "" {
			tbl.AppendRow(table.Row{"k8s.io/api", info.KubernetesAPI})
		}

		_, err := fmt.Fprintln(w, tbl.Render())

		return err
	case "text":
		_, err := fmt.Fprintln(w, info.String())

		return err
	default:
		return &ExitError{Code: exitUsage, Err: fmt.Errorf("unknown format %q: expected text, json, table", format)}
	}
}
