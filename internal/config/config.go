// Package config holds the settings shared by the extract, view and
// render commands. Values come from Defaults, then an optional YAML or
// TOML file, then command-line flags.
package config

import "time"

// Config is the complete run configuration.
type Config struct {
	Extract ExtractConfig `yaml:"extract" toml:"extract"`
	Output  OutputConfig  `yaml:"output" toml:"output"`
	View    ViewConfig    `yaml:"view" toml:"view"`
	Watch   WatchConfig   `yaml:"watch" toml:"watch"`

	// Path is the file the configuration was loaded from, if any.
	Path string `yaml:"-" toml:"-"`
}

// ExtractConfig controls the octree refinement.
type ExtractConfig struct {
	Epsilon  float64 `yaml:"epsilon" toml:"epsilon"`
	HalfSize float64 `yaml:"half_size" toml:"half_size"`
	// MaxNodes is the evaluation ceiling; 0 uses the engine default.
	MaxNodes      int64         `yaml:"max_nodes" toml:"max_nodes"`
	ParallelDepth int           `yaml:"parallel_depth" toml:"parallel_depth"`
	Timeout       time.Duration `yaml:"timeout" toml:"timeout"`
}

// OutputConfig controls what is written.
type OutputConfig struct {
	Path string `yaml:"path" toml:"path"`
	// Format is "plot" or "stl"; empty picks by file extension.
	Format string `yaml:"format" toml:"format"`
	Style  string `yaml:"style" toml:"style"`
}

// ViewConfig controls the viewer and image rendering.
type ViewConfig struct {
	// Viewer is the command line started by --plot; empty runs this
	// program's view command.
	Viewer string `yaml:"viewer" toml:"viewer"`
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
}

// WatchConfig controls re-extraction on file changes.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" toml:"debounce"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Extract: ExtractConfig{
			Epsilon:       0.5,
			HalfSize:      20,
			ParallelDepth: 3,
			Timeout:       2 * time.Minute,
		},
		Output: OutputConfig{
			Path:  "out.gspl",
			Style: "points",
		},
		View: ViewConfig{
			Width:  800,
			Height: 600,
		},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
	}
}
