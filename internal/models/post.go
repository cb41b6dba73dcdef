// Package models contains the data records shared across the application.
package models

import "time"

// DateLayout is the calendar-date format used in JSON, CSV and the dashboard.
const DateLayout = "2006-01-02"

// Post is one synthetic social media post as produced by the generator.
type Post struct {
	PostID       string    `json:"post_id"`
	Platform     string    `json:"platform"`
	Date         time.Time `json:"date"`
	HookType     string    `json:"hook_type"`
	CreativeType string    `json:"creative_type"`
	VisualStyle  string    `json:"visual_style"`
	PostTime     string    `json:"post_time"`
	Reach        int       `json:"reach"`
	Likes        int       `json:"likes"`
	Shares       int       `json:"shares"`
	Saves        int       `json:"saves"`
	Comments     int       `json:"comments"`
	Followers    int       `json:"followers"`
	QualityScore float64   `json:"quality_score"`
}

// EnrichedPost is a Post plus the metrics derived from it.
type EnrichedPost struct {
	Post
	TotalEngagement   int     `json:"total_engagement"`
	EngagementRate    float64 `json:"engagement_rate"`
	QualityEngagement float64 `json:"quality_engagement"`
	ReachEfficiency   float64 `json:"reach_efficiency"`
	ViralRatio        float64 `json:"viral_ratio"`
	SaveRate          float64 `json:"save_rate"`
	ShareRate         float64 `json:"share_rate"`
	Hour              int     `json:"hour"`
}

// DateString formats the post date as YYYY-MM-DD.
func (p Post) DateString() string {
	return p.Date.Format(DateLayout)
}
