// Package export serializes enriched posts to CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"pulseboard/internal/models"
)

// TimestampLayout is how post dates are written to CSV.
const TimestampLayout = "2006-01-02 15:04:05"

// Header is the CSV header row, raw fields first then derived ones.
var Header = []string{
	"post_id", "platform", "date", "hook_type", "creative_type", "visual_style", "post_time",
	"reach", "likes", "shares", "saves", "comments", "followers", "quality_score",
	"total_engagement", "engagement_rate", "quality_engagement", "reach_efficiency",
	"viral_ratio", "save_rate", "share_rate", "hour",
}

// FileName is the download name for an export taken at now.
func FileName(now time.Time) string {
	return fmt.Sprintf("social_analytics_%s.csv", now.Format("20060102"))
}

// WriteCSV writes the header and one row per post. It returns the number of
// data rows written.
func WriteCSV(w io.Writer, posts []models.EnrichedPost) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return 0, fmt.Errorf("write csv header: %w", err)
	}
	for i, p := range posts {
		if err := cw.Write(Record(p)); err != nil {
			return i, fmt.Errorf("write csv row %s: %w", p.PostID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return len(posts), fmt.Errorf("flush csv: %w", err)
	}
	return len(posts), nil
}

// Record renders one post as a CSV record in Header order.
func Record(p models.EnrichedPost) []string {
	return []string{
		p.PostID,
		p.Platform,
		p.Date.Format(TimestampLayout),
		p.HookType,
		p.CreativeType,
		p.VisualStyle,
		p.PostTime,
		strconv.Itoa(p.Reach),
		strconv.Itoa(p.Likes),
		strconv.Itoa(p.Shares),
		strconv.Itoa(p.Saves),
		strconv.Itoa(p.Comments),
		strconv.Itoa(p.Followers),
		formatFloat(p.QualityScore),
		strconv.Itoa(p.TotalEngagement),
		formatFloat(p.EngagementRate),
		formatFloat(p.QualityEngagement),
		formatFloat(p.ReachEfficiency),
		formatFloat(p.ViralRatio),
		formatFloat(p.SaveRate),
		formatFloat(p.ShareRate),
		strconv.Itoa(p.Hour),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
