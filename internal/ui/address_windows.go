//go:build windows

package ui

import (
	"runtime"
	"sync/atomic"

	"github.com/lxn/walk"
	. "github.com/lxn/walk/declarative"

	"github.com/user/controlboard/internal/address"
	"github.com/user/controlboard/internal/logger"
)

var addressDialogOpen atomic.Bool

// ShowAddressDialog displays the "Set NT Server Address" dialog and applies
// the chosen address when the user presses OK.
func ShowAddressDialog() {
	if !addressDialogOpen.CompareAndSwap(false, true) {
		return
	}
	defer addressDialogOpen.Store(false)
	defer logger.Recover("ShowAddressDialog")

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	form := address.NewForm(service.ServerAddress())
	if cfg := service.GetConfig(); form.Team() == "" && cfg.NetworkTables.Team != "" {
		form.SetTeamText(cfg.NetworkTables.Team)
	}

	var dlg *walk.Dialog
	var okPB, closePB *walk.PushButton
	var teamHost *walk.Composite
	var teamLE *teamLineEdit
	var addrLE *walk.LineEdit
	var errLbl *walk.Label
	radios := make([]*walk.RadioButton, len(address.Modes()))

	// syncing suppresses change handlers while widgets are written from the form.
	syncing := false
	syncWidgets := func() {
		syncing = true
		defer func() { syncing = false }()

		for i, m := range address.Modes() {
			radios[i].SetChecked(m == form.Mode())
		}
		teamLE.SetEnabled(form.TeamEnabled())
		if teamLE.Text() != form.Team() {
			teamLE.SetText(form.Team())
		}
		addrLE.SetReadOnly(!form.AddressEditable())
		if !form.AddressEditable() {
			addrLE.SetText(form.Address())
		}
		if err := form.Err(); err != nil {
			errLbl.SetText(err.Error())
		} else {
			errLbl.SetText("")
		}
		okPB.SetEnabled(form.CanAccept())
	}

	buttons := make([]Widget, 0, len(address.Modes()))
	for i, m := range address.Modes() {
		buttons = append(buttons, RadioButton{
			AssignTo: &radios[i],
			Text:     m.Label(),
			OnClicked: func() {
				if syncing {
					return
				}
				if err := form.SelectMode(m); err != nil {
					logger.Error("Select mode: %v", err)
				}
				syncWidgets()
			},
		})
	}

	if err := (Dialog{
		AssignTo:      &dlg,
		Title:         "Set NT Server Address",
		DefaultButton: &okPB,
		CancelButton:  &closePB,
		MinSize:       Size{Width: 340, Height: 300},
		Layout:        VBox{Margins: Margins{Left: 12, Top: 10, Right: 12, Bottom: 10}},
		Children: []Widget{
			GroupBox{
				Title:    "Address",
				Layout:   VBox{},
				Children: buttons,
			},
			Composite{
				Layout: Grid{Columns: 2},
				Children: []Widget{
					Label{Text: "Team Number:"},
					Composite{AssignTo: &teamHost, Layout: HBox{MarginsZero: true}},
					Label{Text: "Address:"},
					LineEdit{
						AssignTo: &addrLE,
						OnTextChanged: func() {
							if syncing {
								return
							}
							if form.SetManualAddress(addrLE.Text()) {
								syncWidgets()
							}
						},
					},
				},
			},
			Label{AssignTo: &errLbl, TextColor: walk.RGB(200, 40, 40)},
			Composite{
				Layout: HBox{MarginsZero: true},
				Children: []Widget{
					HSpacer{},
					PushButton{
						AssignTo: &okPB,
						Text:     "OK",
						OnClicked: func() {
							if form.Accept() {
								dlg.Accept()
							}
						},
					},
					PushButton{
						AssignTo:  &closePB,
						Text:      "Close",
						OnClicked: func() { dlg.Cancel() },
					},
				},
			},
		},
	}).Create(nil); err != nil {
		logger.Error("Failed to create address dialog: %v", err)
		return
	}

	// Typed characters are filtered by teamLineEdit; pasted text is
	// filtered here.
	var err error
	if teamLE, err = newTeamLineEdit(teamHost); err != nil {
		logger.Error("Failed to create team field: %v", err)
		return
	}
	teamLE.SetMaxLength(16)
	teamLE.TextChanged().Attach(func() {
		if syncing {
			return
		}
		text := teamLE.Text()
		if digits := address.FilterDigits(text); digits != text {
			syncing = true
			teamLE.SetText(digits)
			syncing = false
			text = digits
		}
		form.SetTeamText(text)
		syncWidgets()
	})

	if icon := createWindowIcon(); icon != nil {
		dlg.SetIcon(icon)
	}
	syncWidgets()

	if dlg.Run() != walk.DlgCmdOK {
		return
	}
	addr, ok := form.Result()
	if !ok {
		return
	}
	if err := service.SetServerAddress(form.Mode(), form.Team(), addr); err != nil {
		logger.Error("Failed to set server address: %v", err)
		walk.MsgBox(nil, "Set NT Server Address", err.Error(), walk.MsgBoxIconError)
	}
}
