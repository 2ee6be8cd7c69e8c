//go:build linux

package procutil

import "os/exec"

// OpenCommand returns the command that opens path with xdg-open.
func OpenCommand(path string) *exec.Cmd {
	return exec.Command("xdg-open", path)
}
