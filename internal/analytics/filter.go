// Package analytics filters the enriched dataset and aggregates it into the
// dashboard panels.
package analytics

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"pulseboard/internal/catalog"
	"pulseboard/internal/models"
)

var (
	ErrUnknownPlatform  = errors.New("unknown platform")
	ErrUnknownHookType  = errors.New("unknown hook type")
	ErrWindowOutOfRange = errors.New("window out of range")
	errNilCatalog       = errors.New("catalog is required")
)

// Filter selects a subset of posts. Empty Platforms or HookTypes match every
// value; a non-positive WindowDays disables the date bound.
type Filter struct {
	Platforms  []string `json:"platforms"`
	HookTypes  []string `json:"hook_types"`
	WindowDays int      `json:"window_days"`
}

// Validate checks the filter against the catalog and the dataset horizon.
func (f Filter) Validate(cat *catalog.Catalog, lookbackDays int) error {
	if cat == nil {
		return errNilCatalog
	}
	for _, p := range f.Platforms {
		if _, ok := cat.Platform(p); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownPlatform, p)
		}
	}
	for _, h := range f.HookTypes {
		if !cat.HasHookType(h) {
			return fmt.Errorf("%w: %q", ErrUnknownHookType, h)
		}
	}
	if f.WindowDays < 1 || f.WindowDays > lookbackDays {
		return fmt.Errorf("%w: days must be between 1 and %d, got %d", ErrWindowOutOfRange, lookbackDays, f.WindowDays)
	}
	return nil
}

// Cutoff is the earliest date a post may carry to pass the filter.
func (f Filter) Cutoff(now time.Time) time.Time {
	return now.AddDate(0, 0, -f.WindowDays)
}

// Matches reports whether a single post passes the filter.
func (f Filter) Matches(p models.EnrichedPost, now time.Time) bool {
	if len(f.Platforms) > 0 && !slices.Contains(f.Platforms, p.Platform) {
		return false
	}
	if len(f.HookTypes) > 0 && !slices.Contains(f.HookTypes, p.HookType) {
		return false
	}
	if f.WindowDays > 0 && p.Date.Before(f.Cutoff(now)) {
		return false
	}
	return true
}

// Apply returns the posts that pass the filter, preserving order.
func Apply(posts []models.EnrichedPost, f Filter, now time.Time) []models.EnrichedPost {
	out := make([]models.EnrichedPost, 0, len(posts))
	for _, p := range posts {
		if f.Matches(p, now) {
			out = append(out, p)
		}
	}
	return out
}
