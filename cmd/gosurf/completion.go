package main

import (
	"github.com/philipparndt/gosurf/cmd"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for gosurf.

To load completions:

Bash:

  $ source <(gosurf completion bash)

Zsh:

  $ gosurf completion zsh > "${fpath[1]}/_gosurf"

  You will need to start a new shell for this setup to take effect.

Fish:

  $ gosurf completion fish | source
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(c *cobra.Command, args []string) error {
		out := c.OutOrStdout()
		switch args[0] {
		case "bash":
			return cmd.RootCmd.GenBashCompletion(out)
		case "zsh":
			return cmd.RootCmd.GenZshCompletion(out)
		default:
			return cmd.RootCmd.GenFishCompletion(out, true)
		}
	},
}

func init() {
	cmd.RootCmd.AddCommand(completionCmd)
}
