package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) string { return "" }

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultsAreValid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, Validate(cfg))
	assert.Equal(t, 20.0, cfg.Extract.HalfSize)
	assert.Equal(t, "points", cfg.Output.Style)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "gosurf.yaml", `
extract:
  epsilon: 0.25
  max_nodes: 1000
  timeout: 30s
output:
  path: sphere.stl
  style: cubes
`)
	cfg, err := Load(path, noEnv)
	require.NoError(t, err)

	assert.Equal(t, 0.25, cfg.Extract.Epsilon)
	assert.Equal(t, int64(1000), cfg.Extract.MaxNodes)
	assert.Equal(t, 30*time.Second, cfg.Extract.Timeout)
	assert.Equal(t, "sphere.stl", cfg.Output.Path)
	assert.Equal(t, "cubes", cfg.Output.Style)
	assert.Equal(t, 20.0, cfg.Extract.HalfSize, "unset keys keep their defaults")
	assert.Equal(t, path, cfg.Path)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "gosurf.toml", `
[extract]
epsilon = 0.1
half_size = 5.0
parallel_depth = 0

[view]
viewer = "meshlab"
width = 1024
height = 768

[watch]
debounce = "1s"
`)
	cfg, err := Load(path, noEnv)
	require.NoError(t, err)

	assert.Equal(t, 0.1, cfg.Extract.Epsilon)
	assert.Equal(t, 5.0, cfg.Extract.HalfSize)
	assert.Equal(t, 0, cfg.Extract.ParallelDepth)
	assert.Equal(t, "meshlab", cfg.View.Viewer)
	assert.Equal(t, 1024, cfg.View.Width)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
}

func TestLoadInterpolatesEnv(t *testing.T) {
	path := writeFile(t, "gosurf.yaml", "output:\n  path: ${OUT_DIR}/surface.gspl\nview:\n  viewer: ${VIEWER:-gosurf view}\n")
	env := map[string]string{"OUT_DIR": "/tmp/plots"}

	cfg, err := Load(path, func(k string) string { return env[k] })
	require.NoError(t, err)
	assert.Equal(t, "/tmp/plots/surface.gspl", cfg.Output.Path)
	assert.Equal(t, "gosurf view", cfg.View.Viewer)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeFile(t, "gosurf.yaml", "extract:\n  epsilon: -1\noutput:\n  style: spheres\n")
	_, err := Load(path, noEnv)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "epsilon must be a positive number")
	assert.Contains(t, err.Error(), "unknown style")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), noEnv)
	assert.ErrorContains(t, err, "config file not found")

	_, err = Load(writeFile(t, "gosurf.json", "{}"), noEnv)
	assert.ErrorContains(t, err, "unsupported config format")

	_, err = Load(writeFile(t, "gosurf.yaml", "extract: [1, 2"), noEnv)
	assert.ErrorContains(t, err, "failed to parse config")

	_, err = Load("", func(k string) string {
		if k == EnvConfig {
			return "/nonexistent/gosurf.yaml"
		}
		return ""
	})
	assert.ErrorContains(t, err, EnvConfig)
}

func TestLoadFromEnvPath(t *testing.T) {
	path := writeFile(t, "custom.yaml", "extract:\n  epsilon: 2\n")
	cfg, err := Load("", func(k string) string {
		if k == EnvConfig {
			return path
		}
		return ""
	})
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.Extract.Epsilon)
}

func TestValidateFormat(t *testing.T) {
	cfg := Defaults()
	cfg.Output.Format = "obj"
	assert.ErrorContains(t, Validate(cfg), "unknown format")

	cfg.Output.Format = "stl"
	assert.NoError(t, Validate(cfg))
}
