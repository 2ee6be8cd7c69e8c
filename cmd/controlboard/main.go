// Control board tray app and command line tools.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/controlboard/internal/config"
	"github.com/user/controlboard/internal/logger"
	"github.com/user/controlboard/internal/ui"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "controlboard",
		Short: "FRC control board tray companion",
		Long: `controlboard shows the health of the FRC control board and the robot's
network table server as a tray icon.

Run without arguments to start the tray.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				configPath = config.GetConfigPath()
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Close()
		},
		RunE: runTray,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default next to the executable)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")

	root.AddCommand(newResolveCmd(), newProbeCmd(), newLogsCmd())
	return root
}

func runTray(cmd *cobra.Command, args []string) error {
	initTrayLogging(cmd)
	return ui.Run(configPath)
}

// initTrayLogging starts the tray log with a fresh file. The level comes
// from the config unless --verbose forces debug.
func initTrayLogging(cmd *cobra.Command) {
	level := "info"
	m := config.NewManager(configPath)
	if err := m.Load(); err == nil && m.Get().Log.Level != "" {
		level = m.Get().Log.Level
	}
	if verbose {
		level = "debug"
	}

	if err := logger.InitWith(logger.Options{Level: level, Console: verbose, RedirectStderr: true}); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "logging disabled: %v\n", err)
	}
	if err := logger.ClearLogs(); err != nil {
		logger.Warning("Failed to clear log: %v", err)
	}
}

// initConsoleLogging sends debug output to stderr for one-shot commands.
func initConsoleLogging() {
	if !verbose {
		return
	}
	if err := logger.InitWith(logger.Options{Level: "debug", Console: true}); err != nil {
		fmt.Fprintf(os.Stderr, "logging disabled: %v\n", err)
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
