//go:build !linux && !darwin && !windows

package logger

import (
	"os"
	"path/filepath"
)

func getLogDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "controlboard")
	}
	return "."
}
