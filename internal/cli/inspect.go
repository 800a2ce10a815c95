package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/hupe1980/k8sdeployer/internal/config"
	"github.com/hupe1980/k8sdeployer/internal/k8s"
	"github.com/hupe1980/k8sdeployer/internal/output"
)

type inspectOptions struct {
	format string
}

func newInspectCommand() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List the resources a description would produce",
		Long: `Inspect previews the resources that generate would write, without
writing anything: kind, object name, namespace and target file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "table", "output format: table, json, yaml")

	return cmd
}

// inspectResult is the structured output of the inspect command.
type inspectResult struct {
	Microservice string         `json:"microservice"`
	OutputDir    string         `json:"outputDir"`
	Resources    []resourceInfo `json:"resources"`
}

type resourceInfo struct {
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Object    string `json:"object"`
	Namespace string `json:"namespace,omitempty"`
	Component string `json:"component,omitempty"`
	File      string `json:"file"`
}

func runInspect(cmd *cobra.Command, opts *inspectOptions) error {
	switch opts.format {
	case "table", "json", "yaml":
	default:
		return &ExitError{Code: exitUsage, Err: fmt.Errorf("unknown format %q: expected table, json, yaml", opts.format)}
	}

	ctx := cmd.Context()
	cfg := config.FromContext(ctx)

	result, err := runPipeline(ctx)
	if err != nil {
		return err
	}

	dw := output.NewDirWriter(cfg.OutputDir)
	info := inspectResult{
		Microservice: result.Microservice,
		OutputDir:    cfg.OutputDir,
		Resources:    make([]resourceInfo, 0, len(result.Resources)),
	}

	for _, r := range result.Resources {
		ri := resourceInfo{
			Kind:      r.Kind(),
			Name:      r.Name(),
			Object:    r.Metadata()[k8s.MetaName],
			Component: r.Component(),
			File:      dw.Path(result.Microservice, r.Name()),
		}

		if k8s.IsNamespaced(r.Kind()) {
			ri.Namespace = r.Metadata()[k8s.MetaNamespace]
		}

		info.Resources = append(info.Resources, ri)
	}

	w := cmd.OutOrStdout()

	switch opts.format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(info)
	case "yaml":
		data, err := sigsyaml.Marshal(info)
		if err != nil {
			return fmt.Errorf("marshaling inspect result: %w", err)
		}

		_, err = w.Write(data)

		return err
	default:
		return writeInspectTable(w, info)
	}
}

func writeInspectTable(w io.Writer, info inspectResult) error {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleRounded)
	tbl.SetTitle(info.Microservice)

	tbl.AppendHeader(table.Row{"kind", "name", "object", "namespace", "file"})

	for _, r := range info.Resources {
		tbl.AppendRow(table.Row{r.Kind, r.Name, r.Object, r.Namespace, r.File})
	}

	tbl.AppendFooter(table.Row{"", "", "", "total", len(info.Resources)})

	_, err := io.WriteString(w, tbl.Render()+"\n")

	return err
}
