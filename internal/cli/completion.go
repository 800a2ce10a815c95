package cli

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/k8sdeployer/internal/config"
)

func newCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion <shell>",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for k8sdeployer.

Bash:
  $ source <(k8sdeployer completion bash)

Zsh:
  $ k8sdeployer completion zsh > "${fpath[1]}/_k8sdeployer"

Fish:
  $ k8sdeployer completion fish > ~/.config/fish/completions/k8sdeployer.fish

PowerShell:
  PS> k8sdeployer completion powershell | Out-String | Invoke-Expression
`,
		// Override parent PersistentPreRunE: completion needs no config.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Args:              cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs:         []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}

			return nil
		},
	}

	return cmd
}

// registerFlagCompletions completes the persistent flags of root with
// file names, directories and fixed values.
func registerFlagCompletions(root *cobra.Command) {
	completions := map[string]cobra.CompletionFunc{
		"input": func(*cobra.Command, []string, string) ([]cobra.Completion, cobra.ShellCompDirective) {
			return []cobra.Completion{"json", "yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
		},
		"output-dir": func(*cobra.Command, []string, string) ([]cobra.Completion, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveFilterDirs
		},
		"log-level": cobra.FixedCompletions([]cobra.Completion{
			config.LogLevelDebug, config.LogLevelInfo, config.LogLevelWarn, config.LogLevelError,
		}, cobra.ShellCompDirectiveNoFileComp),
		"log-format": cobra.FixedCompletions([]cobra.Completion{
			config.LogFormatText, config.LogFormatJSON,
		}, cobra.ShellCompDirectiveNoFileComp),
	}

	for name, fn := range completions {
		_ = root.RegisterFlagCompletionFunc(name, fn)
	}
}
