// platformer is a small side-scrolling platformer.
//
// Usage:
//
//	platformer                    - Play the default level
//	platformer --level basic      - Play a specific level
//	platformer simulate           - Run the simulation headless and log a trace
//
// Controls: E/S/D/F move (see prefabs/player.yaml), R restarts, P or Esc pauses.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	flagLevel string
	flagDebug bool
	flagWatch bool
	flagFPS   bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "platformer",
	Short:        "A small side-scrolling platformer",
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLevel, "level", "scene", "level script name in levels/")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "debug logging and collision outlines")
	rootCmd.Flags().BoolVar(&flagWatch, "watch", false, "reload prefabs and level scripts when they change on disk")
	rootCmd.Flags().BoolVar(&flagFPS, "fps", false, "show the FPS counter")

	rootCmd.AddCommand(simulateCmd)
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "platformer",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
