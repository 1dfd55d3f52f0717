package cmd

import (
	"fmt"
	"os"

	"github.com/philipparndt/gosurf/internal/config"
	"github.com/philipparndt/gosurf/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	quiet      bool
	loaded     *config.Config
)

// RootCmd is the gosurf command. Subcommands register on it from their
// own init functions.
var RootCmd = &cobra.Command{
	Use:   "gosurf",
	Short: "Extract implicit surfaces with interval arithmetic",
	Long: `gosurf approximates the zero set of f(x, y, z) inside a cube around the
origin. Cells whose interval bound excludes zero are discarded, the rest
are split into octants until they are smaller than epsilon, and the
surviving cells are written as points or cubes.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath, os.Getenv)
		if err != nil {
			return err
		}
		loaded = cfg
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default .gosurf.yaml or .gosurf.toml when present)")
	RootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")
}

// Config returns the configuration loaded for the running command, or
// the defaults before loading.
func Config() *config.Config {
	if loaded == nil {
		return config.Defaults()
	}
	return loaded
}

// Quiet reports whether --quiet was given.
func Quiet() bool {
	return quiet
}

// Progressf prints a progress line to the command output unless --quiet
// is set.
func Progressf(cmd *cobra.Command, format string, args ...any) {
	if quiet {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

// Execute runs the root command
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
