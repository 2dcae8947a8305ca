package cli

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/labomak/dashboard/internal/application/dashboard"
	"github.com/labomak/dashboard/internal/presentation/tui"
	"github.com/spf13/cobra"
)

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive terminal dashboard",
		Long: `tui opens the dashboard with its four modules: the overview, offers,
products and customers. Logs go to APP_LOG_FILE so they do not corrupt the screen.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cfg, backend, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer backend.Close()

			logFile, err := os.OpenFile(cfg.App.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			defer logFile.Close()
			log.SetOutput(logFile)
			defer log.SetOutput(os.Stderr)

			shell := dashboard.NewDashboardShell(backend.Gateway, backend.Numbers, backend.Prober)
			program := tea.NewProgram(tui.New(ctx, shell), tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("dashboard stopped: %w", err)
			}
			return nil
		},
	}
}
