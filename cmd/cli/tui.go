package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hairizuanbinnoorazman/script-tracker/apiclient"
	"github.com/hairizuanbinnoorazman/script-tracker/dashboard"
	"github.com/hairizuanbinnoorazman/script-tracker/internal/tui"
	"github.com/hairizuanbinnoorazman/script-tracker/logger"
	"github.com/spf13/cobra"
)

const tuiLogFile = "scriptctl-tui.log"

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive dashboard",
		Long:  "Open the script dashboard in the terminal. With --debug, logs are written to " + tuiLogFile + ".",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The dashboard owns the terminal, so logs never go to stderr.
			var out io.Writer = io.Discard
			level := "error"
			if flagDebug {
				f, err := os.OpenFile(tuiLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("failed to open log file: %w", err)
				}
				defer f.Close()
				out, level = f, "debug"
			}
			log := logger.NewLogrusLoggerWithOptions(level, "text", out)

			client := apiclient.New(getConfigURL(),
				apiclient.WithTimeout(getConfigTimeout()),
				apiclient.WithLogger(log),
			)
			notifier := dashboard.NewNotifier(dashboard.DefaultToastDuration)
			defer notifier.Close()
			app := dashboard.NewApp(client, notifier, log)

			p := tea.NewProgram(tui.New(cmd.Context(), app), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err := p.Run()
			return err
		},
	}
}
