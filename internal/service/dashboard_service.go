// Package service orchestrates the dashboard pipeline: load the memoized
// dataset, enrich it, filter it and aggregate it.
package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"pulseboard/internal/analytics"
	"pulseboard/internal/cache"
	"pulseboard/internal/catalog"
	"pulseboard/internal/export"
	"pulseboard/internal/featureflags"
	"pulseboard/internal/metrics"
	"pulseboard/internal/models"
	"pulseboard/internal/observability"
	"pulseboard/internal/seed"

	"go.opentelemetry.io/otel/attribute"
)

// DatasetSource returns the raw dataset for (count, seed).
type DatasetSource interface {
	Get(ctx context.Context, count int, seed int64) ([]models.Post, error)
}

// DashboardOptions configures a DashboardService. Zero values fall back to
// the reference dashboard settings.
type DashboardOptions struct {
	DatasetSize       int
	Seed              int64
	LookbackDays      int
	DefaultWindowDays int
	RowLimit          int
	Now               func() time.Time
}

// DashboardQuery is one user selection. Nil Platforms or HookTypes select
// everything; Days of zero uses the default window.
type DashboardQuery struct {
	Platforms []string
	HookTypes []string
	Days      int
	// Subject keys percentage feature flag rollouts (client IP for HTTP).
	Subject string
	// Surface labels metrics: html, api or cli.
	Surface string
}

// DashboardService turns the memoized dataset into filtered, enriched
// posts, dashboard views and CSV exports.
type DashboardService struct {
	catalog *catalog.Catalog
	dataset DatasetSource
	flags   *featureflags.Manager
	opts    DashboardOptions
}

// NewDashboardService creates a dashboard service. Zero options fall back to
// the defaults; a nil catalog means catalog.Default().
func NewDashboardService(cat *catalog.Catalog, dataset DatasetSource, flags *featureflags.Manager, opts DashboardOptions) *DashboardService {
	if cat == nil {
		cat = catalog.Default()
	}
	if opts.DatasetSize <= 0 {
		opts.DatasetSize = seed.DefaultCount
	}
	if opts.LookbackDays <= 0 {
		opts.LookbackDays = seed.DefaultLookbackDays
	}
	if opts.DefaultWindowDays <= 0 {
		opts.DefaultWindowDays = min(7, opts.LookbackDays)
	}
	if opts.RowLimit <= 0 {
		opts.RowLimit = 20
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &DashboardService{
		catalog: cat,
		dataset: dataset,
		flags:   flags,
		opts:    opts,
	}
}

// NewDatasetCache builds the process-wide dataset memo backed by g.
func NewDatasetCache(g *seed.Generator) *cache.DatasetCache {
	return cache.NewDatasetCache(func(ctx context.Context, count int, s int64) ([]models.Post, error) {
		_, span := observability.StartSpan(ctx, "generate",
			attribute.Int("dataset.count", count),
			attribute.Int64("dataset.seed", s),
		)
		defer span.End()
		defer observability.TrackLatency(observability.DatasetGenerationLatency)()

		posts := g.Generate(count, s)
		observability.Logger.InfoContext(ctx, "dataset generated",
			slog.Int("count", count),
			slog.Int64("seed", s),
		)
		return posts, nil
	})
}

// Catalog returns the catalog the dataset was generated from.
func (s *DashboardService) Catalog() *catalog.Catalog {
	return s.catalog
}

// Options returns the effective options.
func (s *DashboardService) Options() DashboardOptions {
	return s.opts
}

// Enriched returns the whole enriched dataset.
func (s *DashboardService) Enriched(ctx context.Context) ([]models.EnrichedPost, error) {
	ctx, span := observability.StartSpan(ctx, "load",
		attribute.Int("dataset.count", s.opts.DatasetSize),
		attribute.Int64("dataset.seed", s.opts.Seed),
	)
	defer span.End()

	posts, err := s.dataset.Get(ctx, s.opts.DatasetSize, s.opts.Seed)
	if err != nil {
		observability.RecordError(span, err)
		return nil, models.NewInternalError(err)
	}

	stop := observability.TrackLatency(observability.EnrichmentLatency)
	enriched, err := metrics.Enrich(posts)
	stop()
	if err != nil {
		observability.EnrichmentFailures.Inc()
		observability.RecordError(span, err)
		observability.Logger.ErrorContext(ctx, "enrichment failed", slog.String("error", err.Error()))
		return nil, models.NewInternalError(err)
	}
	return enriched, nil
}

// ResolveFilter applies defaults to q and validates it.
func (s *DashboardService) ResolveFilter(q DashboardQuery) (analytics.Filter, error) {
	f := analytics.Filter{
		Platforms:  q.Platforms,
		HookTypes:  q.HookTypes,
		WindowDays: q.Days,
	}
	if f.WindowDays == 0 {
		f.WindowDays = s.opts.DefaultWindowDays
	}
	if err := f.Validate(s.catalog, s.opts.LookbackDays); err != nil {
		return analytics.Filter{}, models.NewValidationError("invalid filter", err)
	}
	return f, nil
}

// Posts returns the enriched posts selected by q, in dataset order.
func (s *DashboardService) Posts(ctx context.Context, q DashboardQuery) ([]models.EnrichedPost, analytics.Filter, error) {
	f, err := s.ResolveFilter(q)
	if err != nil {
		return nil, analytics.Filter{}, err
	}
	all, err := s.Enriched(ctx)
	if err != nil {
		return nil, analytics.Filter{}, err
	}
	selected := analytics.Apply(all, f, s.opts.Now())
	observability.FilteredPosts.Observe(float64(len(selected)))
	return selected, f, nil
}

// Dashboard builds the aggregated view for q.
func (s *DashboardService) Dashboard(ctx context.Context, q DashboardQuery) (*analytics.View, error) {
	observability.LogServiceCall(ctx, "DashboardService", "Dashboard",
		slog.Any("platforms", q.Platforms),
		slog.Any("hooks", q.HookTypes),
		slog.Int("days", q.Days),
	)

	selected, f, err := s.Posts(ctx, q)
	if err != nil {
		return nil, err
	}

	_, span := observability.StartSpan(ctx, "aggregate", attribute.Int("posts.selected", len(selected)))
	defer span.End()

	view := analytics.BuildView(selected, s.catalog, s.opts.RowLimit, func(panel string) bool {
		return s.flags.EnabledDefault(panel, q.Subject, true)
	})
	view.Filter = f
	view.Cutoff = f.Cutoff(s.opts.Now())

	surface := q.Surface
	if surface == "" {
		surface = "api"
	}
	observability.DashboardViews.WithLabelValues(surface).Inc()
	return &view, nil
}

// Export writes the posts selected by q as CSV and returns the row count.
func (s *DashboardService) Export(ctx context.Context, q DashboardQuery, w io.Writer) (int, error) {
	selected, _, err := s.Posts(ctx, q)
	if err != nil {
		return 0, err
	}

	_, span := observability.StartSpan(ctx, "export", attribute.Int("posts.selected", len(selected)))
	defer span.End()

	n, err := export.WriteCSV(w, selected)
	observability.ExportRows.Add(float64(n))
	if err != nil {
		observability.RecordError(span, err)
		return n, models.NewInternalError(err)
	}
	return n, nil
}

// ExportFileName is the download name for an export taken now.
func (s *DashboardService) ExportFileName() string {
	return export.FileName(s.opts.Now())
}

// Panels evaluates the panel feature flags for subject.
func (s *DashboardService) Panels(subject string) map[string]bool {
	out := make(map[string]bool, len(analytics.Panels))
	for _, p := range analytics.Panels {
		out[p] = s.flags.EnabledDefault(p, subject, true)
	}
	return out
}

// FeatureFlags returns the raw flag configuration and its evaluation for subject.
func (s *DashboardService) FeatureFlags(subject string) (map[string]string, map[string]bool) {
	return s.flags.Raw(), s.flags.Snapshot(subject, analytics.Panels...)
}
