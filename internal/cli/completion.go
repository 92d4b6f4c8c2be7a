package cli

import (
	"slices"
	"strings"

	"github.com/rileyhilliard/popkit/internal/errors"
	"github.com/spf13/cobra"
)

// completionShells is cloned for every completion request. Cobra's bash
// generator sorts ValidArgs in place.
var completionShells = []string{"bash", "zsh", "fish", "powershell"}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for popkit.

Examples:
  # Bash
  popkit completion bash > /etc/bash_completion.d/popkit

  # Zsh
  popkit completion zsh > "${fpath[1]}/_popkit"

  # Fish
  popkit completion fish > ~/.config/fish/completions/popkit.fish`,
	Args: cobra.ExactArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return slices.Clone(completionShells), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(out)
		default:
			return errors.New(errors.ErrOption,
				"Unknown shell: "+args[0],
				"Supported shells: "+strings.Join(completionShells, ", "))
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
