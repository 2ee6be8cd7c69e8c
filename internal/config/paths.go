package config

import (
	"os"
	"path/filepath"
)

const fileName = "controlboard.yaml"

// GetConfigPath returns the configuration path. A file next to the
// executable wins so portable installs keep working; otherwise the file
// lives in the user's config directory.
func GetConfigPath() string {
	if exe, err := os.Executable(); err == nil {
		local := filepath.Join(filepath.Dir(exe), fileName)
		if _, err := os.Stat(local); err == nil {
			return local
		}
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "ControlBoard", fileName)
	}
	return fileName
}
