package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/archlens/pkg/cache"
)

// completionCommand generates shell completion scripts.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for archlens.

Bash:
  $ source <(archlens completion bash)

Zsh:
  $ archlens completion zsh > "${fpath[1]}/_archlens"

Fish:
  $ archlens completion fish > ~/.config/fish/completions/archlens.fish

PowerShell:
  PS> archlens completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// completeBackends offers cache backend names for --cache.
func completeBackends(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return cache.Backends, cobra.ShellCompDirectiveNoFileComp
}

// completeGraphFiles restricts positional completion to JSON diagrams.
func completeGraphFiles(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
}
