// Package ui provides the system tray UI for the control board.
package ui

import (
	"fmt"
	"sync"

	"fyne.io/systray"

	"github.com/user/controlboard/internal/core"
	"github.com/user/controlboard/internal/logger"
	"github.com/user/controlboard/internal/status"
)

var (
	service *core.Service

	// trayMu guards the menu items; status updates may arrive before
	// the tray is ready.
	trayMu    sync.Mutex
	trayReady bool

	// Systray menu items
	mStatus     *systray.MenuItem
	mShowData   *systray.MenuItem
	mSetAddress *systray.MenuItem
	mQuit       *systray.MenuItem
)

// Run creates the service and blocks in the tray loop until Quit.
func Run(configPath string) error {
	logger.Info("Control board starting")

	var err error
	service, err = core.NewService(configPath)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	service.SetStatusListener(updateUI)

	if err := service.Start(); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}

	// Blocks until quit
	systray.Run(onReady, onExit)
	return nil
}

// onReady is called when systray is ready
func onReady() {
	trayMu.Lock()

	p := service.GetStatusPayload()
	systray.SetIcon(GetIcon(p.Icon))
	systray.SetTitle(status.Tooltip)
	systray.SetTooltip(p.Icon.Tooltip())

	// Left click on tray icon opens the data window
	systray.SetOnTapped(func() {
		go ShowDataWindow()
	})

	mStatus = systray.AddMenuItem(statusLine(p), "")
	mStatus.Disable()

	systray.AddSeparator()

	mShowData = systray.AddMenuItem("Show Data", "Show control board inputs and link status")
	mSetAddress = systray.AddMenuItem("Set NT Server Address…", "Choose the network table server")

	systray.AddSeparator()

	mQuit = systray.AddMenuItem("Quit", "")

	trayReady = true
	trayMu.Unlock()

	logger.SafeGo("systray-menu-loop", func() {
		for {
			select {
			case <-mShowData.ClickedCh:
				go ShowDataWindow()
			case <-mSetAddress.ClickedCh:
				go ShowAddressDialog()
			case <-mQuit.ClickedCh:
				systray.Quit()
				return
			}
		}
	})
}

// onExit is called when systray exits
func onExit() {
	logger.Info("Control board shutting down")
	if service != nil {
		if err := service.Stop(); err != nil {
			logger.Warning("Board close: %v", err)
		}
	}
	logger.Close()
}

func updateUI(p *core.StatusPayload) {
	defer logger.Recover("updateUI")

	if p == nil {
		return
	}

	trayMu.Lock()
	if trayReady {
		mStatus.SetTitle(statusLine(p))
		if p.IconChanged {
			systray.SetIcon(GetIcon(p.Icon))
			systray.SetTooltip(p.Icon.Tooltip())
		}
	}
	trayMu.Unlock()

	RefreshDataWindow(p)
}

func statusLine(p *core.StatusPayload) string {
	return fmt.Sprintf("Board: %s, NT: %s", upDown(p.BoardOK), upDown(p.NetworkTableOK))
}

func upDown(ok bool) string {
	if ok {
		return "connected"
	}
	return "not connected"
}
