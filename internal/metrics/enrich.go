// Package metrics derives per-post performance metrics from raw counts.
package metrics

import (
	"errors"
	"fmt"
	"math"

	"pulseboard/internal/catalog"
	"pulseboard/internal/models"
)

var (
	// ErrNonPositiveReach is returned for a post whose reach is zero or negative.
	ErrNonPositiveReach = errors.New("reach must be positive")
	// ErrNonPositiveFollowers is returned for a post whose follower count is zero or negative.
	ErrNonPositiveFollowers = errors.New("followers must be positive")
	// ErrNegativeCount is returned when likes, shares, saves or comments is negative.
	ErrNegativeCount = errors.New("engagement counts must not be negative")
	// ErrInvalidTimeSlot is returned when the post time cannot be parsed as HH:MM.
	ErrInvalidTimeSlot = errors.New("invalid time slot")
)

// Enrich returns a new slice with the derived metrics of every post, in input
// order. The input is not modified. The first invalid post aborts enrichment.
func Enrich(posts []models.Post) ([]models.EnrichedPost, error) {
	out := make([]models.EnrichedPost, len(posts))
	for i, p := range posts {
		e, err := EnrichPost(p)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// EnrichPost computes the derived metrics of a single post.
func EnrichPost(p models.Post) (models.EnrichedPost, error) {
	if p.Reach <= 0 {
		return models.EnrichedPost{}, fmt.Errorf("post %s: %w (got %d)", p.PostID, ErrNonPositiveReach, p.Reach)
	}
	if p.Followers <= 0 {
		return models.EnrichedPost{}, fmt.Errorf("post %s: %w (got %d)", p.PostID, ErrNonPositiveFollowers, p.Followers)
	}
	if p.Likes < 0 || p.Shares < 0 || p.Saves < 0 || p.Comments < 0 {
		return models.EnrichedPost{}, fmt.Errorf("post %s: %w", p.PostID, ErrNegativeCount)
	}
	hour, err := catalog.SlotHour(p.PostTime)
	if err != nil {
		return models.EnrichedPost{}, fmt.Errorf("post %s: %w: %v", p.PostID, ErrInvalidTimeSlot, err)
	}

	reach := float64(p.Reach)
	followers := float64(p.Followers)
	total := p.Likes + p.Shares + p.Saves + p.Comments

	// zero likes counts as one so the ratio stays finite
	likes := max(p.Likes, 1)

	return models.EnrichedPost{
		Post:              p,
		TotalEngagement:   total,
		EngagementRate:    Round(float64(total)/reach*100, 2),
		QualityEngagement: Round(float64(p.Shares+p.Saves)/float64(likes)*100, 2),
		ReachEfficiency:   Round(reach/followers, 2),
		ViralRatio:        Round((reach-followers)/followers*100, 1),
		SaveRate:          Round(float64(p.Saves)/reach*100, 3),
		ShareRate:         Round(float64(p.Shares)/reach*100, 3),
		Hour:              hour,
	}, nil
}

// Round rounds v to the given number of decimal places, resolving ties to
// the nearest even digit.
func Round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.RoundToEven(v*scale) / scale
}
