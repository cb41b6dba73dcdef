package analytics

import (
	"cmp"
	"slices"
	"time"

	"pulseboard/internal/catalog"
	"pulseboard/internal/metrics"
	"pulseboard/internal/models"
)

// Summary is the KPI row. Every field is zero for an empty selection.
type Summary struct {
	Posts             int     `json:"posts"`
	TotalReach        int     `json:"total_reach"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
	AvgQualityScore   float64 `json:"avg_quality_score"`
	TotalSaves        int     `json:"total_saves"`
	AvgViralRatio     float64 `json:"avg_viral_ratio"`
}

// HookPerformance is the per hook type panel.
type HookPerformance struct {
	HookType        string  `json:"hook_type"`
	Posts           int     `json:"posts"`
	AvgReach        float64 `json:"avg_reach"`
	AvgQualityScore float64 `json:"avg_quality_score"`
	AvgSaves        float64 `json:"avg_saves"`
	AvgShares       float64 `json:"avg_shares"`
}

// HourPerformance is the time of day panel.
type HourPerformance struct {
	Hour              int     `json:"hour"`
	Posts             int     `json:"posts"`
	AvgReach          float64 `json:"avg_reach"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
}

// QualityPoint is one dot of the quality vs virality scatter.
type QualityPoint struct {
	PostID       string  `json:"post_id"`
	Platform     string  `json:"platform"`
	Color        string  `json:"color,omitempty"`
	QualityScore float64 `json:"quality_score"`
	ViralRatio   float64 `json:"viral_ratio"`
	Reach        int     `json:"reach"`
	HookType     string  `json:"hook_type"`
	CreativeType string  `json:"creative_type"`
	Saves        int     `json:"saves"`
}

// CreativeShare is one slice of the creative type distribution.
type CreativeShare struct {
	CreativeType string  `json:"creative_type"`
	Posts        int     `json:"posts"`
	Percent      float64 `json:"percent"`
}

// VisualStyleRates is the engagement quality panel.
type VisualStyleRates struct {
	VisualStyle       string  `json:"visual_style"`
	Posts             int     `json:"posts"`
	AvgSaveRate       float64 `json:"avg_save_rate"`
	AvgShareRate      float64 `json:"avg_share_rate"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
}

// CreativeEfficiency is the reach efficiency panel.
type CreativeEfficiency struct {
	CreativeType       string  `json:"creative_type"`
	Posts              int     `json:"posts"`
	AvgReachEfficiency float64 `json:"avg_reach_efficiency"`
}

// TableRow is one line of the top posts table.
type TableRow struct {
	PostID         string  `json:"post_id"`
	Platform       string  `json:"platform"`
	Date           string  `json:"date"`
	HookType       string  `json:"hook_type"`
	CreativeType   string  `json:"creative_type"`
	VisualStyle    string  `json:"visual_style"`
	Reach          int     `json:"reach"`
	EngagementRate float64 `json:"engagement_rate"`
	QualityScore   float64 `json:"quality_score"`
	SaveRate       float64 `json:"save_rate"`
	ViralRatio     float64 `json:"viral_ratio"`
}

// Summarize computes the KPI row.
func Summarize(posts []models.EnrichedPost) Summary {
	if len(posts) == 0 {
		return Summary{}
	}
	s := Summary{Posts: len(posts)}
	for _, p := range posts {
		s.TotalReach += p.Reach
		s.TotalSaves += p.Saves
	}
	s.AvgEngagementRate = metrics.Round(mean(posts, engagementRate), 2)
	s.AvgQualityScore = metrics.Round(mean(posts, qualityScore), 1)
	s.AvgViralRatio = metrics.Round(mean(posts, viralRatio), 1)
	return s
}

// ByHook averages reach, quality, saves and shares per hook type, ordered by
// hook type name. Values are rounded to whole numbers.
func ByHook(posts []models.EnrichedPost) []HookPerformance {
	groups := groupBy(posts, func(p models.EnrichedPost) string { return p.HookType })
	out := make([]HookPerformance, 0, len(groups))
	for _, g := range groups {
		out = append(out, HookPerformance{
			HookType:        g.key,
			Posts:           len(g.posts),
			AvgReach:        metrics.Round(mean(g.posts, reach), 0),
			AvgQualityScore: metrics.Round(mean(g.posts, qualityScore), 0),
			AvgSaves:        metrics.Round(mean(g.posts, saves), 0),
			AvgShares:       metrics.Round(mean(g.posts, shares), 0),
		})
	}
	return out
}

// ByHour averages reach and engagement rate per posting hour, ascending.
func ByHour(posts []models.EnrichedPost) []HourPerformance {
	groups := groupBy(posts, func(p models.EnrichedPost) int { return p.Hour })
	out := make([]HourPerformance, 0, len(groups))
	for _, g := range groups {
		out = append(out, HourPerformance{
			Hour:              g.key,
			Posts:             len(g.posts),
			AvgReach:          metrics.Round(mean(g.posts, reach), 0),
			AvgEngagementRate: metrics.Round(mean(g.posts, engagementRate), 2),
		})
	}
	return out
}

// QualityVsVirality returns one point per post in input order.
func QualityVsVirality(posts []models.EnrichedPost, cat *catalog.Catalog) []QualityPoint {
	out := make([]QualityPoint, 0, len(posts))
	for _, p := range posts {
		pt := QualityPoint{
			PostID:       p.PostID,
			Platform:     p.Platform,
			QualityScore: metrics.Round(p.QualityScore, 2),
			ViralRatio:   p.ViralRatio,
			Reach:        p.Reach,
			HookType:     p.HookType,
			CreativeType: p.CreativeType,
			Saves:        p.Saves,
		}
		if cat != nil {
			pt.Color = cat.PlatformColor(p.Platform)
		}
		out = append(out, pt)
	}
	return out
}

// CreativeMix counts posts per creative type, most frequent first.
func CreativeMix(posts []models.EnrichedPost) []CreativeShare {
	groups := groupBy(posts, func(p models.EnrichedPost) string { return p.CreativeType })
	out := make([]CreativeShare, 0, len(groups))
	for _, g := range groups {
		out = append(out, CreativeShare{
			CreativeType: g.key,
			Posts:        len(g.posts),
			Percent:      metrics.Round(float64(len(g.posts))/float64(len(posts))*100, 1),
		})
	}
	// groups are name ordered, so a stable sort keeps ties alphabetical
	slices.SortStableFunc(out, func(a, b CreativeShare) int {
		return cmp.Compare(b.Posts, a.Posts)
	})
	return out
}

// ByVisualStyle averages save, share and engagement rates per visual style.
func ByVisualStyle(posts []models.EnrichedPost) []VisualStyleRates {
	groups := groupBy(posts, func(p models.EnrichedPost) string { return p.VisualStyle })
	out := make([]VisualStyleRates, 0, len(groups))
	for _, g := range groups {
		out = append(out, VisualStyleRates{
			VisualStyle:       g.key,
			Posts:             len(g.posts),
			AvgSaveRate:       metrics.Round(mean(g.posts, saveRate), 3),
			AvgShareRate:      metrics.Round(mean(g.posts, shareRate), 3),
			AvgEngagementRate: metrics.Round(mean(g.posts, engagementRate), 2),
		})
	}
	return out
}

// ReachEfficiencyByCreative averages reach efficiency per creative type,
// lowest first.
func ReachEfficiencyByCreative(posts []models.EnrichedPost) []CreativeEfficiency {
	groups := groupBy(posts, func(p models.EnrichedPost) string { return p.CreativeType })
	out := make([]CreativeEfficiency, 0, len(groups))
	for _, g := range groups {
		out = append(out, CreativeEfficiency{
			CreativeType:       g.key,
			Posts:              len(g.posts),
			AvgReachEfficiency: metrics.Round(mean(g.posts, reachEfficiency), 2),
		})
	}
	slices.SortStableFunc(out, func(a, b CreativeEfficiency) int {
		return cmp.Compare(a.AvgReachEfficiency, b.AvgReachEfficiency)
	})
	return out
}

// TopPosts returns up to limit rows, newest first. limit <= 0 means no limit.
func TopPosts(posts []models.EnrichedPost, limit int) []TableRow {
	sorted := slices.Clone(posts)
	slices.SortStableFunc(sorted, func(a, b models.EnrichedPost) int {
		return b.Date.Compare(a.Date)
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	rows := make([]TableRow, 0, len(sorted))
	for _, p := range sorted {
		rows = append(rows, TableRow{
			PostID:         p.PostID,
			Platform:       p.Platform,
			Date:           p.DateString(),
			HookType:       p.HookType,
			CreativeType:   p.CreativeType,
			VisualStyle:    p.VisualStyle,
			Reach:          p.Reach,
			EngagementRate: p.EngagementRate,
			QualityScore:   metrics.Round(p.QualityScore, 1),
			SaveRate:       p.SaveRate,
			ViralRatio:     p.ViralRatio,
		})
	}
	return rows
}

// View is the complete dashboard for one filter selection. Panels switched
// off by feature flags are left nil.
type View struct {
	Filter          Filter               `json:"filter"`
	Cutoff          time.Time            `json:"cutoff"`
	Summary         Summary              `json:"summary"`
	HookPerformance []HookPerformance    `json:"hook_performance,omitempty"`
	TimeOfDay       []HourPerformance    `json:"time_of_day,omitempty"`
	QualityScatter  []QualityPoint       `json:"quality_scatter,omitempty"`
	CreativeMix     []CreativeShare      `json:"creative_mix,omitempty"`
	VisualStyles    []VisualStyleRates   `json:"engagement_quality,omitempty"`
	ReachEfficiency []CreativeEfficiency `json:"reach_efficiency,omitempty"`
	TopPosts        []TableRow           `json:"top_posts"`
}

// Panel names, shared with the feature flag configuration.
const (
	PanelHookPerformance   = "hook_performance"
	PanelTimeOfDay         = "time_of_day"
	PanelQualityScatter    = "quality_scatter"
	PanelCreativeMix       = "creative_mix"
	PanelEngagementQuality = "engagement_quality"
	PanelReachEfficiency   = "reach_efficiency"
)

// Panels lists every optional panel in display order.
var Panels = []string{
	PanelHookPerformance,
	PanelTimeOfDay,
	PanelQualityScatter,
	PanelCreativeMix,
	PanelEngagementQuality,
	PanelReachEfficiency,
}

// BuildView aggregates already filtered posts. enabled decides which optional
// panels are computed; nil enables all of them.
func BuildView(posts []models.EnrichedPost, cat *catalog.Catalog, rowLimit int, enabled func(panel string) bool) View {
	if enabled == nil {
		enabled = func(string) bool { return true }
	}

	v := View{
		Summary:  Summarize(posts),
		TopPosts: TopPosts(posts, rowLimit),
	}
	if enabled(PanelHookPerformance) {
		v.HookPerformance = ByHook(posts)
	}
	if enabled(PanelTimeOfDay) {
		v.TimeOfDay = ByHour(posts)
	}
	if enabled(PanelQualityScatter) {
		v.QualityScatter = QualityVsVirality(posts, cat)
	}
	if enabled(PanelCreativeMix) {
		v.CreativeMix = CreativeMix(posts)
	}
	if enabled(PanelEngagementQuality) {
		v.VisualStyles = ByVisualStyle(posts)
	}
	if enabled(PanelReachEfficiency) {
		v.ReachEfficiency = ReachEfficiencyByCreative(posts)
	}
	return v
}

type group[K cmp.Ordered] struct {
	key   K
	posts []models.EnrichedPost
}

// groupBy buckets posts by key, returning groups in ascending key order.
func groupBy[K cmp.Ordered](posts []models.EnrichedPost, key func(models.EnrichedPost) K) []group[K] {
	index := make(map[K]int)
	var groups []group[K]
	for _, p := range posts {
		k := key(p)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, group[K]{key: k})
		}
		groups[i].posts = append(groups[i].posts, p)
	}
	slices.SortFunc(groups, func(a, b group[K]) int { return cmp.Compare(a.key, b.key) })
	return groups
}

func mean(posts []models.EnrichedPost, field func(models.EnrichedPost) float64) float64 {
	if len(posts) == 0 {
		return 0
	}
	var sum float64
	for _, p := range posts {
		sum += field(p)
	}
	return sum / float64(len(posts))
}

func reach(p models.EnrichedPost) float64           { return float64(p.Reach) }
func saves(p models.EnrichedPost) float64           { return float64(p.Saves) }
func shares(p models.EnrichedPost) float64          { return float64(p.Shares) }
func qualityScore(p models.EnrichedPost) float64    { return p.QualityScore }
func engagementRate(p models.EnrichedPost) float64  { return p.EngagementRate }
func viralRatio(p models.EnrichedPost) float64      { return p.ViralRatio }
func saveRate(p models.EnrichedPost) float64        { return p.SaveRate }
func shareRate(p models.EnrichedPost) float64       { return p.ShareRate }
func reachEfficiency(p models.EnrichedPost) float64 { return p.ReachEfficiency }
