package ui

import (
	"fmt"
	"strings"

	"github.com/user/controlboard/internal/core"
	"github.com/user/controlboard/internal/logger"
)

// formatData renders the Show Data view as text.
func formatData(p *core.StatusPayload) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Board: %s (%s)\n", p.BoardName, upDown(p.BoardOK))

	addr := p.ServerAddress
	if addr == "" {
		addr = "not set"
	}
	fmt.Fprintf(&b, "NT server: %s [%s] (%s)\n", addr, p.AddressMode.Label(), upDown(p.NetworkTableOK))

	if p.BoardOK {
		b.WriteString("Switches:")
		for i, on := range p.Switches {
			if i%8 == 0 {
				b.WriteString(" ")
			}
			if on {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		b.WriteString("\nAnalog:")
		for _, v := range p.Analog {
			fmt.Fprintf(&b, " %d", v)
		}
		b.WriteString("\n")
	}

	if p.Error != "" {
		fmt.Fprintf(&b, "Error: %s\n", p.Error)
	}
	if !p.CheckedAt.IsZero() {
		fmt.Fprintf(&b, "Checked: %s\n", logger.Timestamp(p.CheckedAt))
	}
	return b.String()
}
