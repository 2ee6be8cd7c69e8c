//go:build windows

package procutil

import "os/exec"

// OpenCommand returns the command that opens path with its file association.
func OpenCommand(path string) *exec.Cmd {
	return exec.Command("cmd", "/c", "start", "", path)
}
