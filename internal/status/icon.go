// Package status maps the control board and network-table health signals
// onto the tray icon state.
package status

import "fmt"

// Tooltip is the tray tooltip prefix.
const Tooltip = "FRC Control Board"

// IconState is one of four tray icon images. The value packs the two
// health flags as (boardOK<<1)|networkTableOK.
type IconState uint8

const (
	IconNoBoardNoNT IconState = iota
	IconNoBoardNT
	IconBoardNoNT
	IconBoardNT
)

// States returns all icon states in numeric order.
func States() []IconState {
	return []IconState{IconNoBoardNoNT, IconNoBoardNT, IconBoardNoNT, IconBoardNT}
}

// StateFor derives the icon state from the two health flags.
func StateFor(boardOK, networkTableOK bool) IconState {
	var s IconState
	if boardOK {
		s |= 1 << 1
	}
	if networkTableOK {
		s |= 1
	}
	return s
}

// BoardOK reports the control board flag encoded in s.
func (s IconState) BoardOK() bool { return s&(1<<1) != 0 }

// NetworkTableOK reports the network-table flag encoded in s.
func (s IconState) NetworkTableOK() bool { return s&1 != 0 }

// String returns the asset name of the icon.
func (s IconState) String() string {
	switch s {
	case IconNoBoardNoNT:
		return "Status_NoCtrlB_NoNT"
	case IconNoBoardNT:
		return "Status_NoCtrlB_YesNT"
	case IconBoardNoNT:
		return "Status_YesCtrlB_NoNT"
	case IconBoardNT:
		return "Status_YesCtrlB_YesNT"
	default:
		return fmt.Sprintf("IconState(%d)", uint8(s))
	}
}

// Tooltip returns the tray tooltip for s.
func (s IconState) Tooltip() string {
	return fmt.Sprintf("%s\nControl board: %s\nNetwork tables: %s",
		Tooltip, onOff(s.BoardOK()), onOff(s.NetworkTableOK()))
}

func onOff(ok bool) string {
	if ok {
		return "connected"
	}
	return "disconnected"
}
