package cli

import (
	"github.com/spf13/cobra"
)

var completionHelp = `Print a completion script for the given shell.

  bash        source <(nameplate completion bash)
  zsh         nameplate completion zsh > "${fpath[1]}/_nameplate"
  fish        nameplate completion fish > ~/.config/fish/completions/nameplate.fish
  powershell  nameplate completion powershell | Out-String | Invoke-Expression

Start a new shell afterwards. Zsh needs compinit enabled in ~/.zshrc.`

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion bash|zsh|fish|powershell",
		Short:                 "Print a shell completion script",
		Long:                  completionHelp,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			default:
				return root.GenBashCompletion(out)
			}
		},
	}
}
