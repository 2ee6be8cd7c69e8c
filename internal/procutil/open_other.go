//go:build !linux && !darwin && !windows

package procutil

import "os/exec"

// OpenCommand falls back to xdg-open on other unix systems.
func OpenCommand(path string) *exec.Cmd {
	return exec.Command("xdg-open", path)
}
