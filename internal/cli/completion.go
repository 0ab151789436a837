package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for pkgdeps.

To load completions:

Bash:
  $ source <(pkgdeps completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ pkgdeps completion bash > /etc/bash_completion.d/pkgdeps
  # macOS:
  $ pkgdeps completion bash > $(brew --prefix)/etc/bash_completion.d/pkgdeps

Zsh:
  $ pkgdeps completion zsh > "${fpath[1]}/_pkgdeps"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ pkgdeps completion fish > ~/.config/fish/completions/pkgdeps.fish

PowerShell:
  PS> pkgdeps completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(c.Out)
			case "zsh":
				return cmd.Root().GenZshCompletion(c.Out)
			case "fish":
				return cmd.Root().GenFishCompletion(c.Out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(c.Out)
			}
			return nil
		},
	}

	return cmd
}
