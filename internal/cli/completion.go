package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for packman.

To load completions:

Bash:
  $ source <(packman completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ packman completion bash > /etc/bash_completion.d/packman
  # macOS:
  $ packman completion bash > $(brew --prefix)/etc/bash_completion.d/packman

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ packman completion zsh > "${fpath[1]}/_packman"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ packman completion fish | source

  # To load completions for each session, execute once:
  $ packman completion fish > ~/.config/fish/completions/packman.fish

PowerShell:
  PS> packman completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> packman completion powershell > packman.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := c.out()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}
