package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/amishk599/resumeiq/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Analyze interactively in the terminal",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	// Log output under the alt-screen corrupts the display.
	silentLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	analyzer, err := setupAnalyzer(context.Background(), cfg, silentLogger)
	if err != nil {
		return err
	}
	return tui.Run(analyzer)
}
