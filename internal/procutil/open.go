// Package procutil starts helper processes: the platform file opener and
// the user's editor.
package procutil

import (
	"fmt"
	"os"
	"os/exec"
)

// Open shows path with the platform's default handler without waiting for it.
func Open(path string) error {
	cmd := HideWindow(OpenCommand(path))
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	go cmd.Wait()
	return nil
}

// Edit opens path in $EDITOR, falling back to Open.
func Edit(path string) error {
	if editor := os.Getenv("EDITOR"); editor != "" {
		cmd := exec.Command(editor, path)
		if err := cmd.Start(); err == nil {
			go cmd.Wait()
			return nil
		}
	}
	return Open(path)
}
