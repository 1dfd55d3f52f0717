package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/philipparndt/gosurf/pkg/plot"
	"gopkg.in/yaml.v3"
)

// EnvConfig names the environment variable holding a config path.
const EnvConfig = "GOSURF_CONFIG"

// defaultNames are tried in the working directory, in order.
var defaultNames = []string{".gosurf.yaml", ".gosurf.yml", ".gosurf.toml"}

// Load reads configuration from a file with ENV interpolation.
// If configPath is empty, it searches default locations and falls back to
// Defaults when none exists. An explicit path must exist.
func Load(configPath string, getenv func(string) string) (*Config, error) {
	path, err := resolveConfigPath(configPath, getenv)
	if err != nil {
		return nil, err
	}
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	data = interpolateEnv(data, getenv)

	if err := decode(path, data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Path = path

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		_, err := toml.Decode(string(data), cfg)
		return err
	case ".yaml", ".yml", "":
		return yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
}

// resolveConfigPath finds the config file to use.
// Search order: explicit path > GOSURF_CONFIG env > ./.gosurf.{yaml,yml,toml}
// > ~/.config/gosurf/config.yaml. No file found is not an error.
func resolveConfigPath(explicit string, getenv func(string) string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	if envPath := getenv(EnvConfig); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("%s file not found: %s", EnvConfig, envPath)
		}
		return envPath, nil
	}

	for _, name := range defaultNames {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "gosurf", "config.yaml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath, nil
		}
	}

	return "", nil
}

// envPattern matches ${VAR} or ${VAR:-default}
var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// interpolateEnv replaces ${VAR} and ${VAR:-default} patterns with environment values.
func interpolateEnv(data []byte, getenv func(string) string) []byte {
	return envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		parts := envPattern.FindSubmatch(match)
		value := getenv(string(parts[1]))
		if value == "" && len(parts[2]) > 0 {
			value = string(parts[2])
		}
		return []byte(value)
	})
}

// Validate checks the configuration after flags have been applied.
// All problems are reported together.
func Validate(cfg *Config) error {
	var errs []error
	positive := func(name string, v float64) {
		if !(v > 0) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("%s must be a positive number, got %g", name, v))
		}
	}
	positive("epsilon", cfg.Extract.Epsilon)
	positive("half_size", cfg.Extract.HalfSize)

	if cfg.Extract.MaxNodes < 0 {
		errs = append(errs, fmt.Errorf("max_nodes must not be negative"))
	}
	if cfg.Extract.ParallelDepth < 0 {
		errs = append(errs, fmt.Errorf("parallel_depth must not be negative"))
	}
	if cfg.Extract.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative"))
	}
	if _, err := plot.ParseStyle(cfg.Output.Style); err != nil {
		errs = append(errs, err)
	}
	if cfg.Output.Format != "" {
		if _, err := plot.ParseFormat(cfg.Output.Format); err != nil {
			errs = append(errs, err)
		}
	}
	if cfg.View.Width <= 0 || cfg.View.Height <= 0 {
		errs = append(errs, fmt.Errorf("view size must be positive, got %dx%d", cfg.View.Width, cfg.View.Height))
	}
	return errors.Join(errs...)
}
