package seed

import (
	"strconv"
	"testing"
	"time"

	"pulseboard/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func TestGenerate_Invariants(t *testing.T) {
	g := NewGenerator(Options{Now: fixedClock})
	cat := g.Catalog()
	posts := g.Generate(DefaultCount, DefaultSeed)
	require.Len(t, posts, DefaultCount)

	d := cat.Distributions
	oldest := fixedNow.AddDate(0, 0, -(DefaultLookbackDays - 1))

	for i, p := range posts {
		platform, ok := cat.Platform(p.Platform)
		require.True(t, ok, "unknown platform %q", p.Platform)

		assert.Greater(t, p.Reach, 0, p.PostID)
		assert.Greater(t, p.Followers, 0, p.PostID)
		assert.Equal(t, platform.Followers, p.Followers)
		for _, n := range []int{p.Likes, p.Shares, p.Saves, p.Comments} {
			assert.GreaterOrEqual(t, n, 0)
		}
		assert.LessOrEqual(t, p.Likes+p.Shares+p.Saves+p.Comments, p.Reach)

		assert.True(t, d.QualityScore.Contains(p.QualityScore), "quality %v out of range", p.QualityScore)
		multiplier := float64(p.Reach) / float64(p.Followers)
		assert.GreaterOrEqual(t, multiplier, d.ReachMultiplier.Min-1e-9)
		assert.LessOrEqual(t, multiplier, d.ReachMultiplier.Max)

		assert.False(t, p.Date.After(fixedNow))
		assert.False(t, p.Date.Before(oldest))

		assert.Contains(t, cat.HookTypes, p.HookType)
		assert.Contains(t, cat.CreativeTypes, p.CreativeType)
		assert.Contains(t, cat.VisualStyles, p.VisualStyle)
		assert.Contains(t, cat.TimeSlots, p.PostTime)

		assert.Equal(t, "POST_"+strconv.Itoa(i+1), p.PostID)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	g := NewGenerator(Options{Now: fixedClock})
	first := g.Generate(DefaultCount, DefaultSeed)
	second := g.Generate(DefaultCount, DefaultSeed)
	assert.Equal(t, first, second)

	other := NewGenerator(Options{Now: fixedClock}).Generate(DefaultCount, DefaultSeed)
	assert.Equal(t, first, other)
}

func TestGenerate_DifferentSeedsDiffer(t *testing.T) {
	g := NewGenerator(Options{Now: fixedClock})
	assert.NotEqual(t, g.Generate(DefaultCount, 1), g.Generate(DefaultCount, 2))
}

func TestGenerate_PrefixStable(t *testing.T) {
	g := NewGenerator(Options{Now: fixedClock})
	short := g.Generate(10, DefaultSeed)
	long := g.Generate(DefaultCount, DefaultSeed)
	assert.Equal(t, short, long[:10])
}

func TestGenerate_NonPositiveCount(t *testing.T) {
	g := NewGenerator(Options{Now: fixedClock})
	assert.Empty(t, g.Generate(0, DefaultSeed))
	assert.Empty(t, g.Generate(-5, DefaultSeed))
	assert.NotNil(t, g.Generate(0, DefaultSeed))
}

func TestGenerate_ReadsClockOncePerRun(t *testing.T) {
	calls := 0
	g := NewGenerator(Options{Now: func() time.Time {
		calls++
		return fixedNow.Add(time.Duration(calls) * time.Hour)
	}})
	posts := g.Generate(20, DefaultSeed)
	assert.Equal(t, 1, calls)
	for _, p := range posts {
		assert.Equal(t, fixedNow.Add(time.Hour).Hour(), p.Date.Hour())
	}
}

func TestGenerate_CustomCatalog(t *testing.T) {
	cat := catalog.Default()
	cat.Platforms = []catalog.Platform{{Name: "Mastodon", Followers: 900}}
	cat.HookTypes = []string{"Poll"}
	require.NoError(t, cat.Validate())

	g := NewGenerator(Options{Catalog: cat, LookbackDays: 3, Now: fixedClock})
	assert.Equal(t, 3, g.LookbackDays())
	for _, p := range g.Generate(25, 7) {
		assert.Equal(t, "Mastodon", p.Platform)
		assert.Equal(t, 900, p.Followers)
		assert.Equal(t, "Poll", p.HookType)
		assert.False(t, p.Date.Before(fixedNow.AddDate(0, 0, -2)))
	}
}

func TestNewGenerator_Defaults(t *testing.T) {
	g := NewGenerator(Options{})
	assert.Equal(t, DefaultLookbackDays, g.LookbackDays())
	assert.Equal(t, catalog.Default(), g.Catalog())
	assert.Len(t, Generate(5, DefaultSeed), 5)
}
