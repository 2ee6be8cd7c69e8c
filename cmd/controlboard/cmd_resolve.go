package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/controlboard/internal/address"
)

func newResolveCmd() *cobra.Command {
	var (
		mode    string
		team    string
		current string
		manual  string
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the network table server address for a mode and team",
		Long: `Resolves the network table server address the way the address dialog does.

Modes:
  current    keep the current address (--current)
  mdns       roborio-<team>-frc.local
  ipv4       10.<te>.<am>.5 for teams 1-9999
  simulator  127.0.0.1
  manual     the --manual text as given

Example:
  controlboard resolve --mode ipv4 --team 118`,
		Args: cobra.NoArgs,
		PreRun: func(cmd *cobra.Command, args []string) {
			initConsoleLogging()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := address.ParseMode(mode)
			if err != nil {
				return err
			}
			addr, err := address.Resolve(m, address.Input{
				Previous: current,
				Team:     team,
				Manual:   manual,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), addr)
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", address.ModeModern.String(), "address mode")
	cmd.Flags().StringVarP(&team, "team", "t", "", "team number")
	cmd.Flags().StringVar(&current, "current", "", "current address, for --mode current")
	cmd.Flags().StringVar(&manual, "manual", "", "address text, for --mode manual")
	return cmd
}
