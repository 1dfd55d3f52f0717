package main

import (
	"github.com/philipparndt/gosurf/cmd"
	"github.com/philipparndt/gosurf/internal/repl"
	"github.com/philipparndt/gosurf/version"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Try expressions interactively",
	Long:  "Parse expressions as you type them and show their interval bound over the configured cube and their value at a sample point.",
	Args:  cobra.NoArgs,
	Run: func(c *cobra.Command, args []string) {
		repl.Start(repl.NewSession(cmd.Config().Extract.HalfSize), c.OutOrStdout(), version.GetVersion())
	},
}

func init() {
	cmd.RootCmd.AddCommand(replCmd)
}
