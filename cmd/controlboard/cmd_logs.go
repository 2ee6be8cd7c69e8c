package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/controlboard/internal/logger"
)

func newLogsCmd() *cobra.Command {
	var (
		tail     int
		clearLog bool
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print or clear the tray log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if clearLog {
				if err := logger.InitWith(logger.Options{}); err != nil {
					return err
				}
				return logger.ClearLogs()
			}

			content, err := logger.ReadLogs()
			if err != nil {
				return fmt.Errorf("read log: %w", err)
			}
			lines := strings.SplitAfter(content, "\n")
			if lines[len(lines)-1] == "" {
				lines = lines[:len(lines)-1]
			}
			if tail > 0 && len(lines) > tail {
				lines = lines[len(lines)-tail:]
			}
			fmt.Fprint(cmd.OutOrStdout(), strings.Join(lines, ""))
			return nil
		},
	}

	cmd.Flags().IntVarP(&tail, "tail", "n", 0, "print only the last n lines")
	cmd.Flags().BoolVar(&clearLog, "clear", false, "truncate the log file")
	return cmd
}
