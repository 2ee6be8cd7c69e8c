package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/controlboard/internal/core"
)

func newProbeCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Check the control board and network table server once",
		Args:  cobra.NoArgs,
		PreRun: func(cmd *cobra.Command, args []string) {
			initConsoleLogging()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := core.NewService(configPath)
			if err != nil {
				return err
			}
			defer svc.Stop()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			p := svc.Probe(ctx)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "board:  %s %s\n", p.BoardName, okText(p.BoardOK))
			addr := p.ServerAddress
			if addr == "" {
				addr = "(not set)"
			}
			fmt.Fprintf(out, "nt:     %s %s\n", addr, okText(p.NetworkTableOK))
			fmt.Fprintf(out, "icon:   %s\n", p.Icon)
			if p.Error != "" {
				fmt.Fprintf(out, "error:  %s\n", p.Error)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "overall probe timeout")
	return cmd
}

func okText(ok bool) string {
	if ok {
		return "ok"
	}
	return "unreachable"
}
