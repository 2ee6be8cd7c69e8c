//go:build windows

package ui

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lxn/walk"
	. "github.com/lxn/walk/declarative"

	"github.com/user/controlboard/internal/core"
	"github.com/user/controlboard/internal/logger"
)

var (
	dataWindow   *walk.MainWindow
	dataWindowMu sync.Mutex

	// Data window widget refs
	dwBoardDot *walk.ImageView
	dwNTDot    *walk.ImageView
	dwLblBoard *walk.Label
	dwLblNT    *walk.Label
	dwText     *walk.TextEdit
	dwLblLog   *walk.Label
	dwStop     chan struct{}

	lastLogLine     atomic.Value // string
	logListenerOnce sync.Once
)

// ShowDataWindow displays the control board readings and link status.
func ShowDataWindow() {
	dataWindowMu.Lock()
	if dataWindow != nil {
		win := dataWindow
		dataWindowMu.Unlock()
		win.Synchronize(func() {
			win.Show()
		})
		return
	}
	dataWindowMu.Unlock()

	defer logger.Recover("ShowDataWindow")

	logListenerOnce.Do(func() {
		logger.AddListener(func(line string) { lastLogLine.Store(line) })
	})

	var mw *walk.MainWindow

	if err := (MainWindow{
		AssignTo: &mw,
		Title:    "Control Board Data",
		MinSize:  Size{Width: 320, Height: 300},
		Size:     Size{Width: 380, Height: 360},
		Layout:   VBox{Margins: Margins{Left: 12, Top: 10, Right: 12, Bottom: 8}},
		Children: []Widget{
			Composite{Layout: HBox{MarginsZero: true, Spacing: 6}, Children: []Widget{
				ImageView{AssignTo: &dwBoardDot, MinSize: Size{Width: 12, Height: 12}, MaxSize: Size{Width: 12, Height: 12}},
				Label{Text: "Board:", Font: Font{Bold: true}, MinSize: Size{Width: 80}},
				Label{AssignTo: &dwLblBoard, Text: "—"},
				HSpacer{},
			}},
			Composite{Layout: HBox{MarginsZero: true, Spacing: 6}, Children: []Widget{
				ImageView{AssignTo: &dwNTDot, MinSize: Size{Width: 12, Height: 12}, MaxSize: Size{Width: 12, Height: 12}},
				Label{Text: "NT server:", Font: Font{Bold: true}, MinSize: Size{Width: 80}},
				Label{AssignTo: &dwLblNT, Text: "—"},
				HSpacer{},
			}},
			TextEdit{
				AssignTo: &dwText,
				ReadOnly: true,
				Font:     Font{Family: "Consolas", PointSize: 9},
			},
			Composite{Layout: HBox{MarginsZero: true}, Children: []Widget{
				PushButton{Text: "Set NT Server Address…", OnClicked: func() { go ShowAddressDialog() }},
				HSpacer{},
			}},
			Label{AssignTo: &dwLblLog, Font: Font{PointSize: 8}},
		},
	}).Create(); err != nil {
		logger.Error("Failed to create data window: %v", err)
		return
	}

	if icon := createWindowIcon(); icon != nil {
		mw.SetIcon(icon)
	}

	dataWindowMu.Lock()
	dataWindow = mw
	dataWindowMu.Unlock()

	dwRefreshUI(service.GetStatusPayload())

	dwStop = make(chan struct{})
	go dwTickerLoop(dwStop)

	mw.Run()

	close(dwStop)

	dataWindowMu.Lock()
	dataWindow = nil
	dataWindowMu.Unlock()
}

// RefreshDataWindow updates the data window from the status listener.
func RefreshDataWindow(p *core.StatusPayload) {
	defer logger.Recover("RefreshDataWindow")

	dataWindowMu.Lock()
	win := dataWindow
	dataWindowMu.Unlock()

	if win == nil || p == nil {
		return
	}

	win.Synchronize(func() {
		dwRefreshUI(p)
	})
}

// dwTickerLoop keeps the readings fresh between health polls.
func dwTickerLoop(stop <-chan struct{}) {
	defer logger.Recover("dwTickerLoop")
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			dataWindowMu.Lock()
			win := dataWindow
			dataWindowMu.Unlock()
			if win == nil {
				return
			}
			p := service.GetStatusPayload()
			win.Synchronize(func() {
				dwRefreshUI(p)
			})
		}
	}
}

func dwRefreshUI(p *core.StatusPayload) {
	defer logger.Recover("dwRefreshUI")

	// Window may be partially created or destroyed
	if p == nil || dwLblBoard == nil || dwText == nil {
		return
	}

	dwLblBoard.SetText(p.BoardName + ", " + upDown(p.BoardOK))
	addr := p.ServerAddress
	if addr == "" {
		addr = "not set"
	}
	dwLblNT.SetText(addr + ", " + upDown(p.NetworkTableOK))
	setDot(dwBoardDot, p.BoardOK)
	setDot(dwNTDot, p.NetworkTableOK)
	dwText.SetText(strings.ReplaceAll(formatData(p), "\n", "\r\n"))
	if line, ok := lastLogLine.Load().(string); ok && dwLblLog != nil {
		dwLblLog.SetText(line)
	}
}
