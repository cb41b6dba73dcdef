package main

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"pulseboard/internal/catalog"
	"pulseboard/internal/featureflags"
	"pulseboard/internal/models"
	"pulseboard/internal/observability"
	"pulseboard/internal/report"
	"pulseboard/internal/seed"
	"pulseboard/internal/service"

	"github.com/spf13/cobra"
)

// Global flag values.
var (
	verbose bool
	quiet   bool
	noColor bool

	platforms   []string
	hooks       []string
	days        int
	datasetSize int
	datasetSeed int64
	catalogFile string
	rowLimit    int
)

// now is the reference clock; tests pin it.
var now = time.Now

// cliSubject keys percentage feature flag rollouts for terminal runs.
const cliSubject = "cli"

// rootCmd is the base command for pulse.
var rootCmd = &cobra.Command{
	Use:   "pulse",
	Short: "Social media content performance dashboard",
	Long: `Pulse generates a reproducible synthetic dataset of social media posts,
derives engagement metrics and prints the dashboard panels or exports the
filtered posts as CSV.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		level := "info"
		switch {
		case quiet:
			level = "warn"
		case verbose:
			level = "debug"
		}
		observability.Setup(cmd.ErrOrStderr(), "cli", "text", level)
		if noColor {
			report.SetColor(false)
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")

	pf.StringSliceVarP(&platforms, "platform", "p", nil, "platforms to include (repeatable or comma separated; default all)")
	pf.StringSliceVar(&hooks, "hook", nil, "hook types to include (repeatable or comma separated; default all)")
	pf.IntVarP(&days, "days", "d", 7, "only posts from the last N days")
	pf.IntVar(&datasetSize, "size", seed.DefaultCount, "number of posts to generate")
	pf.Int64Var(&datasetSeed, "seed", seed.DefaultSeed, "random seed for the dataset")
	pf.StringVar(&catalogFile, "catalog", "", "YAML catalog overriding platforms, labels and distributions")
	pf.IntVar(&rowLimit, "limit", 20, "rows in the top posts table")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

// newDashboardService builds the pipeline from the global flags.
func newDashboardService() (*service.DashboardService, error) {
	cat := catalog.Default()
	if catalogFile != "" {
		loaded, err := catalog.Load(catalogFile)
		if err != nil {
			return nil, exitError(ExitInvalidArgs, "pulse: %v", err)
		}
		cat = loaded
	}
	if datasetSize < 1 {
		return nil, exitError(ExitInvalidArgs, "pulse: --size must be positive, got %d", datasetSize)
	}
	if days < 1 {
		return nil, exitError(ExitInvalidArgs, "pulse: --days must be positive, got %d", days)
	}

	gen := seed.NewGenerator(seed.Options{Catalog: cat, Now: now})
	slog.Debug("dataset configured",
		slog.Int("size", datasetSize),
		slog.Int64("seed", datasetSeed),
		slog.String("catalog", catalogFile),
	)
	return service.NewDashboardService(cat, service.NewDatasetCache(gen), featureflags.NewManager(os.Getenv("FEATURE_FLAGS")), service.DashboardOptions{
		DatasetSize:       datasetSize,
		Seed:              datasetSeed,
		LookbackDays:      gen.LookbackDays(),
		DefaultWindowDays: days,
		RowLimit:          rowLimit,
		Now:               now,
	}), nil
}

func dashboardQuery() service.DashboardQuery {
	return service.DashboardQuery{
		Platforms: platforms,
		HookTypes: hooks,
		Days:      days,
		Subject:   cliSubject,
		Surface:   "cli",
	}
}

// asExitError maps validation errors to ExitInvalidArgs.
func asExitError(err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) && appErr.Code == "VALIDATION_ERROR" {
		return exitError(ExitInvalidArgs, "pulse: %v", err)
	}
	return exitError(ExitFailure, "pulse: %v", err)
}
