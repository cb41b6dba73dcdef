package main

import (
	"fmt"
	"log/slog"
	"os"

	"pulseboard/internal/report"

	"github.com/spf13/cobra"
)

// Report-specific flag values.
var (
	reportOutput      string
	reportSummaryOnly bool
)

// reportCmd prints the dashboard panels to the terminal.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the dashboard",
	Long: `Generate the dataset, apply the filters and print the KPI summary, the
panel tables and the top posts.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "output file path (default: stdout)")
	reportCmd.Flags().BoolVar(&reportSummaryOnly, "summary-only", false, "print only the KPI summary")
}

func runReport(cmd *cobra.Command, _ []string) error {
	svc, err := newDashboardService()
	if err != nil {
		return err
	}

	view, err := svc.Dashboard(cmd.Context(), dashboardQuery())
	if err != nil {
		return asExitError(err)
	}

	w := cmd.OutOrStdout()
	if reportOutput != "" && reportOutput != "-" {
		f, createErr := os.Create(reportOutput) //nolint:gosec // user-specified output path
		if createErr != nil {
			return exitError(ExitFailure, "pulse: cannot create output file %q (%v)", reportOutput, createErr)
		}
		defer f.Close() //nolint:errcheck // best-effort close on output file
		w = f
	}

	if err := report.Render(w, view, report.Options{
		Panels:      svc.Panels(cliSubject),
		SummaryOnly: reportSummaryOnly,
	}); err != nil {
		return exitError(ExitFailure, "pulse: rendering failed (%v)", err)
	}

	slog.Info("report complete", slog.Int("posts", view.Summary.Posts), slog.String("window", fmt.Sprintf("%dd", view.Filter.WindowDays)))
	return nil
}
