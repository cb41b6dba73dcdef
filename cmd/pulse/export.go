package main

import (
	"bufio"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var exportOutput string

// exportCmd writes the filtered, enriched dataset as CSV.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered posts as CSV",
	Long: `Write the filtered posts with their derived metrics as CSV. The default
file name is social_analytics_YYYYMMDD.csv in the current directory; use
"-o -" to write to stdout.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file path, - for stdout")
}

func runExport(cmd *cobra.Command, _ []string) error {
	svc, err := newDashboardService()
	if err != nil {
		return err
	}
	q := dashboardQuery()
	if _, err := svc.ResolveFilter(q); err != nil {
		return asExitError(err)
	}

	path := exportOutput
	if path == "" {
		path = svc.ExportFileName()
	}

	if path == "-" {
		w := bufio.NewWriter(cmd.OutOrStdout())
		n, err := svc.Export(cmd.Context(), q, w)
		if err != nil {
			return asExitError(err)
		}
		if err := w.Flush(); err != nil {
			return exitError(ExitFailure, "pulse: write failed (%v)", err)
		}
		slog.Info("export complete", slog.Int("rows", n))
		return nil
	}

	f, err := os.Create(path) //nolint:gosec // user-specified output path
	if err != nil {
		return exitError(ExitFailure, "pulse: cannot create output file %q (%v)", path, err)
	}
	n, err := svc.Export(cmd.Context(), q, f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return asExitError(err)
	}

	slog.Info("export complete", slog.Int("rows", n), slog.String("file", path))
	return nil
}
