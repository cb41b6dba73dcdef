package metrics

import (
	"testing"
	"time"

	"pulseboard/internal/models"
	"pulseboard/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basePost() models.Post {
	return models.Post{
		PostID:       "POST_1",
		Platform:     "Instagram",
		Date:         time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC),
		HookType:     "Question",
		CreativeType: "Reel",
		VisualStyle:  "Minimal",
		PostTime:     "14:00",
		Reach:        1000,
		Likes:        100,
		Shares:       20,
		Saves:        30,
		Comments:     10,
		Followers:    1000,
		QualityScore: 7.5,
	}
}

func TestEnrichPost_RoundingContract(t *testing.T) {
	e, err := EnrichPost(basePost())
	require.NoError(t, err)

	assert.Equal(t, 160, e.TotalEngagement)
	assert.Equal(t, 16.00, e.EngagementRate)
	assert.Equal(t, 50.00, e.QualityEngagement)
	assert.Equal(t, 3.000, e.SaveRate)
	assert.Equal(t, 2.000, e.ShareRate)
	assert.Equal(t, 1.00, e.ReachEfficiency)
	assert.Equal(t, 0.0, e.ViralRatio)
	assert.Equal(t, 14, e.Hour)
	assert.Equal(t, basePost(), e.Post)
}

func TestEnrichPost_ZeroLikes(t *testing.T) {
	p := basePost()
	p.Likes, p.Shares, p.Saves = 0, 5, 5
	e, err := EnrichPost(p)
	require.NoError(t, err)
	assert.Equal(t, 1000.00, e.QualityEngagement)
}

func TestEnrichPost_NegativeViralRatio(t *testing.T) {
	p := basePost()
	p.Followers, p.Reach = 10000, 8000
	e, err := EnrichPost(p)
	require.NoError(t, err)
	assert.Equal(t, -20.0, e.ViralRatio)
	assert.Equal(t, 0.8, e.ReachEfficiency)
}

func TestEnrichPost_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *models.Post)
		wantErr error
	}{
		{"zero reach", func(p *models.Post) { p.Reach = 0 }, ErrNonPositiveReach},
		{"negative reach", func(p *models.Post) { p.Reach = -3 }, ErrNonPositiveReach},
		{"zero followers", func(p *models.Post) { p.Followers = 0 }, ErrNonPositiveFollowers},
		{"negative saves", func(p *models.Post) { p.Saves = -1 }, ErrNegativeCount},
		{"bad time slot", func(p *models.Post) { p.PostTime = "late" }, ErrInvalidTimeSlot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := basePost()
			tt.mutate(&p)
			_, err := EnrichPost(p)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), "POST_1")
		})
	}
}

func TestEnrich_FailsFastOnInvalidRecord(t *testing.T) {
	bad := basePost()
	bad.PostID = "POST_2"
	bad.Reach = 0

	out, err := Enrich([]models.Post{basePost(), bad, basePost()})
	assert.ErrorIs(t, err, ErrNonPositiveReach)
	assert.Contains(t, err.Error(), "POST_2")
	assert.Nil(t, out)
}

func TestEnrich_PureAndOrderPreserving(t *testing.T) {
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	posts := seed.NewGenerator(seed.Options{Now: func() time.Time { return now }}).
		Generate(seed.DefaultCount, seed.DefaultSeed)
	snapshot := append([]models.Post(nil), posts...)

	first, err := Enrich(posts)
	require.NoError(t, err)
	second, err := Enrich(posts)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, posts)
	require.Len(t, first, len(posts))
	for i := range posts {
		assert.Equal(t, posts[i], first[i].Post)
	}
}

func TestEnrich_Empty(t *testing.T) {
	out, err := Enrich(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRound(t *testing.T) {
	tests := []struct {
		v      float64
		places int
		want   float64
	}{
		{16.0, 2, 16.0},
		{2.675, 2, 2.68}, // 2.675*100 is exactly 267.5, a tie
		{2.665, 2, 2.66},
		{0.125, 2, 0.12},
		{0.375, 2, 0.38},
		{2.5, 0, 2},
		{3.5, 0, 4},
		{-20.04, 1, -20.0},
		{1.23456, 3, 1.235},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round(tt.v, tt.places), "Round(%v, %d)", tt.v, tt.places)
	}
}
