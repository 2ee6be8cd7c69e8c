//go:build windows

package logger

import (
	"os"
	"path/filepath"
)

// getLogDir returns %PROGRAMDATA%\ControlBoard, or the executable's
// directory when PROGRAMDATA is unset.
func getLogDir() string {
	if dir := os.Getenv("PROGRAMDATA"); dir != "" {
		return filepath.Join(dir, "ControlBoard")
	}
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}
