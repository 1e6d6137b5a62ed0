package cmd

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"devpulse/internal/bootstrap/logging"
	"devpulse/internal/errs"
	"devpulse/internal/usecase/metricsconsole"
)

var consoleDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Start a live contributor dashboard console",
	RunE: withApp(func(cmd *cobra.Command, services *appServices) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		contributorID, _ := cmd.Flags().GetUint64("contributor")
		rangeDays, _ := cmd.Flags().GetInt("range-days")
		refreshInterval, _ := cmd.Flags().GetDuration("refresh-interval")

		model := metricsconsole.NewDashboardModel(ctx, services.Dashboards, metricsconsole.Options{
			ContributorID:   contributorID,
			RangeDays:       rangeDays,
			RefreshInterval: refreshInterval,
		})

		program := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return errs.Wrap(err, "run dashboard console")
		}
		return nil
	}),
}

func init() {
	consoleCmd.AddCommand(consoleDashboardCmd)
	consoleDashboardCmd.Flags().Uint64("contributor", 0, "Contributor id to display")
	consoleDashboardCmd.Flags().Int("range-days", 30, "Window size in days")
	consoleDashboardCmd.Flags().Duration("refresh-interval", 30*time.Second, "Auto refresh interval")
	_ = consoleDashboardCmd.MarkFlagRequired("contributor")
}
