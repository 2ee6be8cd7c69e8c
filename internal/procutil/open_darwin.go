//go:build darwin

package procutil

import "os/exec"

// OpenCommand returns the command that opens path with the Finder association.
func OpenCommand(path string) *exec.Cmd {
	return exec.Command("open", path)
}
