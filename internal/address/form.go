package address

import (
	"strconv"

	"github.com/user/controlboard/internal/logger"
)

// Form is the state behind the "Set NT Server Address" dialog. It holds no
// widget references; the dialog forwards events and reads the results.
type Form struct {
	current  string
	mode     Mode
	team     string
	address  string
	err      error
	accepted bool
}

// NewForm opens the form seeded with the address that is currently in use.
// Without a current address the form starts in Simulator mode.
func NewForm(current string) *Form {
	f := &Form{current: current}
	if n, err := LegacyTeam(current); err == nil {
		f.team = strconv.Itoa(n)
	} else if t, ok := ModernTeam(current); ok {
		f.team = t.String()
	}

	if current == "" {
		f.mode = ModeSimulator
	} else {
		f.mode = ModeCurrent
	}
	f.refresh()
	return f
}

// Mode returns the selected mode.
func (f *Form) Mode() Mode { return f.mode }

// Team returns the team number text as stored after filtering.
func (f *Form) Team() string { return f.team }

// Address returns the address that would be applied on accept.
func (f *Form) Address() string { return f.address }

// Err returns the pending validation error, or nil.
func (f *Form) Err() error { return f.err }

// TeamEnabled reports whether the team number field takes input.
func (f *Form) TeamEnabled() bool { return f.mode.UsesTeam() }

// AddressEditable reports whether the address field takes input.
func (f *Form) AddressEditable() bool { return f.mode == ModeManual }

// SelectMode switches the form to m and re-resolves the address.
func (f *Form) SelectMode(m Mode) error {
	if !m.Valid() {
		return ErrUnknownMode
	}
	logger.Info("Connection type selector changed: %s", m.Label())
	f.mode = m
	f.refresh()
	return nil
}

// SetTeamText stores the team number text, dropping non-digit characters,
// and re-resolves when a team mode is selected.
func (f *Form) SetTeamText(s string) {
	f.team = FilterDigits(s)
	if f.mode.UsesTeam() {
		f.refresh()
	}
}

// SetManualAddress sets the address verbatim. It is ignored outside
// Manual mode and reports whether it was applied.
func (f *Form) SetManualAddress(s string) bool {
	if f.mode != ModeManual {
		return false
	}
	f.address = Manual(s)
	return true
}

// CanAccept reports whether the Ok action should be enabled: no pending
// validation error and a non-empty address.
func (f *Form) CanAccept() bool {
	return f.err == nil && f.address != ""
}

// Accept marks the form as confirmed. It refuses while a validation error
// is pending or the address is empty.
func (f *Form) Accept() bool {
	if !f.CanAccept() {
		return false
	}
	f.accepted = true
	logger.Info("Return address is now: %s", f.address)
	return true
}

// Accepted reports whether Accept succeeded.
func (f *Form) Accepted() bool { return f.accepted }

// Result returns the accepted address; ok is false if the form was
// cancelled.
func (f *Form) Result() (addr string, ok bool) {
	if !f.accepted {
		return "", false
	}
	return f.address, true
}

// refresh re-resolves the address for the current mode. A failed team
// validation leaves the displayed address untouched.
func (f *Form) refresh() {
	if f.mode == ModeManual {
		f.err = nil
		return
	}

	addr, err := Resolve(f.mode, Input{Previous: f.current, Team: f.team})
	if err != nil {
		logger.Debug("Team number rejected: %v", err)
		f.err = err
		return
	}
	f.err = nil
	f.address = addr
}
