//go:build windows

package ui

import (
	"github.com/lxn/walk"
	"github.com/lxn/win"

	"github.com/user/controlboard/internal/address"
)

// teamLineEdit is a LineEdit that discards typed characters rejected by
// address.AcceptKey before they reach the edit buffer.
type teamLineEdit struct {
	*walk.LineEdit
}

func newTeamLineEdit(parent walk.Container) (*teamLineEdit, error) {
	le, err := walk.NewLineEdit(parent)
	if err != nil {
		return nil, err
	}

	tle := &teamLineEdit{LineEdit: le}
	if err := walk.InitWrapperWindow(tle); err != nil {
		le.Dispose()
		return nil, err
	}
	return tle, nil
}

func (tle *teamLineEdit) WndProc(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	if msg == win.WM_CHAR && !address.AcceptKey(rune(wParam)) {
		return 0
	}
	return tle.LineEdit.WndProc(hwnd, msg, wParam, lParam)
}
