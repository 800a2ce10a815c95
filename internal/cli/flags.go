package cli

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/k8sdeployer/internal/config"
)

// registerInputFlags adds the flags shared by every command that reads a
// microservice description. They are persistent so that config.Load can
// bind them from any subcommand.
func registerInputFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringP("input", "i", config.DefaultInput, "microservice description (JSON or YAML)")
	pf.StringP("output-dir", "o", config.DefaultOutputDir, "directory that receives the manifests")
	pf.String("env-file", config.DefaultEnvFile, "dotenv file with DB_* settings")
	pf.String("env-component", "", "component whose db_secrets are filled from the env file")
	pf.Bool("strict", false, "fail on unresolved related resources (validate also fails on warnings)")
}

// registerGenerateFlags adds the generate-only flags to a cobra command.
func registerGenerateFlags(cmd *cobra.Command, opts *generateOptions) {
	f := cmd.Flags()
	f.BoolVar(&opts.stdout, "stdout", false, "write a multi-document YAML stream to stdout instead of files")
}
