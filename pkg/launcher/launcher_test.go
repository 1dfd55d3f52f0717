package launcher

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseViewer(t *testing.T) {
	v, err := ParseViewer("  gosurf  view --size 800 ")
	require.NoError(t, err)
	assert.Equal(t, Viewer{Command: "gosurf", Args: []string{"view", "--size", "800"}}, v)
	assert.Equal(t, "gosurf view --size 800", v.String())

	_, err = ParseViewer(" ")
	assert.ErrorIs(t, err, ErrNoViewer)
}

func TestDefaultViewerUsesViewCommand(t *testing.T) {
	v, err := Default()
	require.NoError(t, err)
	assert.NotEmpty(t, v.Command)
	assert.Equal(t, []string{"view"}, v.Args)
}

func TestOpenMissingViewer(t *testing.T) {
	err := Open(Viewer{Command: "gosurf-no-such-viewer"}, "out.gspl")
	assert.ErrorContains(t, err, "not found")

	assert.ErrorIs(t, Open(Viewer{}, "out.gspl"), ErrNoViewer)
}

func TestOpenStartsProcess(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}
	assert.NoError(t, Open(Viewer{Command: "true"}, "out.gspl"))
}
