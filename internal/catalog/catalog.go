// Package catalog holds the vocabularies and value ranges used to synthesize
// post records. The generator reads everything it draws from a Catalog, so the
// platforms, labels and distributions can be swapped without touching the
// generation algorithm.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidCatalog is returned (wrapped) by Validate and Load.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Platform is a social network together with the baseline follower count of
// the account posting on it.
type Platform struct {
	Name      string `yaml:"name" json:"name"`
	Followers int    `yaml:"followers" json:"followers"`
	Color     string `yaml:"color,omitempty" json:"color,omitempty"`
}

// Range is a closed interval for uniform draws.
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Distributions are the ranges the generator draws numeric fields from.
// The rate ranges are fractions of reach.
type Distributions struct {
	ReachMultiplier Range `yaml:"reach_multiplier" json:"reach_multiplier"`
	LikeRate        Range `yaml:"like_rate" json:"like_rate"`
	ShareRate       Range `yaml:"share_rate" json:"share_rate"`
	SaveRate        Range `yaml:"save_rate" json:"save_rate"`
	CommentRate     Range `yaml:"comment_rate" json:"comment_rate"`
	QualityScore    Range `yaml:"quality_score" json:"quality_score"`
}

// Catalog is the full configuration of the synthetic dataset.
type Catalog struct {
	Platforms     []Platform    `yaml:"platforms" json:"platforms"`
	HookTypes     []string      `yaml:"hook_types" json:"hook_types"`
	CreativeTypes []string      `yaml:"creative_types" json:"creative_types"`
	VisualStyles  []string      `yaml:"visual_styles" json:"visual_styles"`
	TimeSlots     []string      `yaml:"time_slots" json:"time_slots"`
	Distributions Distributions `yaml:"distributions" json:"distributions"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return &Catalog{
		Platforms: []Platform{
			{Name: "Instagram", Followers: 28000, Color: "#E4405F"},
			{Name: "TikTok", Followers: 35000, Color: "#000000"},
			{Name: "LinkedIn", Followers: 12000, Color: "#0A66C2"},
		},
		HookTypes: []string{
			"Question", "Controversy", "Story", "Tutorial", "Trend", "Before/After", "Data Insight",
		},
		CreativeTypes: []string{
			"Carousel", "Video", "Reel", "Text Post", "Infographic", "Story",
		},
		VisualStyles: []string{
			"Bold Text", "Face to Camera", "Minimal", "Dynamic B-Roll", "Trending Audio",
			"Comparison", "Clean Graphics", "POV Style",
		},
		TimeSlots: []string{
			"07:00", "08:00", "09:00", "11:00", "14:00", "16:00", "18:00", "20:00",
		},
		Distributions: Distributions{
			ReachMultiplier: Range{Min: 0.5, Max: 8.0},
			LikeRate:        Range{Min: 0.02, Max: 0.15},
			ShareRate:       Range{Min: 0.005, Max: 0.025},
			SaveRate:        Range{Min: 0.003, Max: 0.04},
			CommentRate:     Range{Min: 0.002, Max: 0.015},
			QualityScore:    Range{Min: 6.0, Max: 9.5},
		},
	}
}

// Load reads a YAML catalog from path. Keys missing from the file keep their
// built-in values; lists present in the file replace the built-in lists.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied config path
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	cat := Default()
	if err := yaml.Unmarshal(data, cat); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

// Validate checks that every draw the generator can make is well formed and
// that generated records satisfy reach > 0, followers > 0 and
// likes+shares+saves+comments <= reach.
func (c *Catalog) Validate() error {
	if len(c.Platforms) == 0 {
		return fmt.Errorf("%w: at least one platform is required", ErrInvalidCatalog)
	}
	seen := make(map[string]bool, len(c.Platforms))
	for _, p := range c.Platforms {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return fmt.Errorf("%w: platform name is empty", ErrInvalidCatalog)
		}
		if seen[name] {
			return fmt.Errorf("%w: duplicate platform %q", ErrInvalidCatalog, name)
		}
		seen[name] = true
		if p.Followers <= 0 {
			return fmt.Errorf("%w: platform %q must have positive followers", ErrInvalidCatalog, name)
		}
	}

	vocabularies := []struct {
		field  string
		values []string
	}{
		{"hook_types", c.HookTypes},
		{"creative_types", c.CreativeTypes},
		{"visual_styles", c.VisualStyles},
		{"time_slots", c.TimeSlots},
	}
	for _, v := range vocabularies {
		if err := validateVocabulary(v.field, v.values); err != nil {
			return err
		}
	}
	for _, slot := range c.TimeSlots {
		if _, err := SlotHour(slot); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
	}

	return c.Distributions.validate(c.minFollowers())
}

func (d Distributions) validate(minFollowers int) error {
	ranges := []struct {
		field string
		r     Range
	}{
		{"reach_multiplier", d.ReachMultiplier},
		{"like_rate", d.LikeRate},
		{"share_rate", d.ShareRate},
		{"save_rate", d.SaveRate},
		{"comment_rate", d.CommentRate},
		{"quality_score", d.QualityScore},
	}
	for _, rr := range ranges {
		if rr.r.Min > rr.r.Max {
			return fmt.Errorf("%w: %s min %.4g exceeds max %.4g", ErrInvalidCatalog, rr.field, rr.r.Min, rr.r.Max)
		}
		if rr.r.Min < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidCatalog, rr.field)
		}
	}

	// reach = floor(followers * multiplier) must stay >= 1 for the smallest account.
	if d.ReachMultiplier.Min <= 0 || float64(minFollowers)*d.ReachMultiplier.Min < 1 {
		return fmt.Errorf("%w: reach_multiplier min %.4g can produce zero reach", ErrInvalidCatalog, d.ReachMultiplier.Min)
	}

	total := d.LikeRate.Max + d.ShareRate.Max + d.SaveRate.Max + d.CommentRate.Max
	if total > 1 {
		return fmt.Errorf("%w: engagement rate maxima sum to %.4g, total engagement could exceed reach", ErrInvalidCatalog, total)
	}
	return nil
}

func validateVocabulary(field string, values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("%w: %s must not be empty", ErrInvalidCatalog, field)
	}
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: %s contains an empty value", ErrInvalidCatalog, field)
		}
		if seen[v] {
			return fmt.Errorf("%w: %s contains duplicate %q", ErrInvalidCatalog, field, v)
		}
		seen[v] = true
	}
	return nil
}

func (c *Catalog) minFollowers() int {
	minimum := 0
	for i, p := range c.Platforms {
		if i == 0 || p.Followers < minimum {
			minimum = p.Followers
		}
	}
	return minimum
}

// Platform looks up a platform by name.
func (c *Catalog) Platform(name string) (Platform, bool) {
	for _, p := range c.Platforms {
		if p.Name == name {
			return p, true
		}
	}
	return Platform{}, false
}

// PlatformNames returns platform names in catalog order.
func (c *Catalog) PlatformNames() []string {
	names := make([]string, len(c.Platforms))
	for i, p := range c.Platforms {
		names[i] = p.Name
	}
	return names
}

// PlatformColor returns the display color for a platform, or "" if unknown.
func (c *Catalog) PlatformColor(name string) string {
	p, _ := c.Platform(name)
	return p.Color
}

// HasHookType reports whether name is a known hook type.
func (c *Catalog) HasHookType(name string) bool {
	for _, h := range c.HookTypes {
		if h == name {
			return true
		}
	}
	return false
}

// SlotHour parses the hour from a "HH:MM" time slot.
func SlotHour(slot string) (int, error) {
	hh, mm, ok := strings.Cut(slot, ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return 0, fmt.Errorf("time slot %q is not HH:MM", slot)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("time slot %q has an invalid hour", slot)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time slot %q has an invalid minute", slot)
	}
	return hour, nil
}
