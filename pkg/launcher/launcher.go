// Package launcher starts an external program to display a written file.
package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Viewer is a program and its leading arguments. The file to show is
// appended as the last argument.
type Viewer struct {
	Command string
	Args    []string
}

// ErrNoViewer is returned for an empty viewer command line.
var ErrNoViewer = errors.New("no viewer configured")

// ParseViewer splits a command line such as "gosurf view" on whitespace.
func ParseViewer(s string) (Viewer, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Viewer{}, ErrNoViewer
	}
	return Viewer{Command: fields[0], Args: fields[1:]}, nil
}

// Default returns this executable's view command.
func Default() (Viewer, error) {
	exe, err := os.Executable()
	if err != nil {
		return Viewer{}, fmt.Errorf("failed to locate executable: %w", err)
	}
	return Viewer{Command: exe, Args: []string{"view"}}, nil
}

func (v Viewer) String() string {
	return strings.Join(append([]string{v.Command}, v.Args...), " ")
}

// Open starts the viewer on path without waiting for it to exit. Only a
// failure to start is reported.
func Open(v Viewer, path string) error {
	if v.Command == "" {
		return ErrNoViewer
	}
	bin, err := exec.LookPath(v.Command)
	if err != nil {
		return fmt.Errorf("viewer %s not found in PATH", v.Command)
	}

	args := append(append([]string{}, v.Args...), path)
	cmd := exec.Command(bin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch %s: %w", v, err)
	}
	return cmd.Process.Release()
}
