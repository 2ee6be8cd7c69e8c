//go:build !windows

package ui

import (
	"fmt"
	"os"

	"github.com/user/controlboard/internal/core"
	"github.com/user/controlboard/internal/logger"
	"github.com/user/controlboard/internal/procutil"
)

// ShowAddressDialog opens the config file in the user's editor. Saved
// changes are picked up by the config watcher.
func ShowAddressDialog() {
	defer logger.Recover("ShowAddressDialog")

	configPath := service.ConfigPath()
	if err := procutil.Edit(configPath); err != nil {
		logger.Error("Failed to open config: %v", err)
		fmt.Printf("Edit config manually: %s\n", configPath)
	}
}

// ShowDataWindow writes the current readings to the log and opens it.
func ShowDataWindow() {
	defer logger.Recover("ShowDataWindow")

	logger.Info("Control board data:\n%s", formatData(service.GetStatusPayload()))

	logPath := logger.GetLogPath()
	if logPath == "" {
		return
	}
	if _, err := os.Stat(logPath); err != nil {
		logger.Warning("Log file unavailable: %v", err)
		return
	}
	if err := procutil.Open(logPath); err != nil {
		logger.Error("Failed to open log: %v", err)
	}
}

// RefreshDataWindow is a no-op without a native data window.
func RefreshDataWindow(_ *core.StatusPayload) {}
