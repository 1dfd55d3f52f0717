package main

import (
	"github.com/philipparndt/gosurf/cmd"
	"github.com/philipparndt/gosurf/internal/viewer"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Open a plot or STL file in a window",
	Long:  "Show a plot document (.gspl) or STL file. Drag to rotate, scroll to zoom.",
	Args:  cobra.ExactArgs(1),
	RunE:  runView,
}

func init() {
	cmd.RootCmd.AddCommand(viewCmd)
}

func runView(c *cobra.Command, args []string) error {
	scene, err := viewer.LoadScene(args[0])
	if err != nil {
		return err
	}
	cfg := cmd.Config()
	viewer.Show(scene, cfg.View.Width, cfg.View.Height)
	return nil
}
