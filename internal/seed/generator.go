// Package seed synthesizes the demo dataset of social media posts. Generation
// is deterministic: the same count, seed, catalog and reference time always
// produce the same records.
package seed

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"pulseboard/internal/catalog"
	"pulseboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

const (
	// DefaultCount is the number of posts in the reference dataset.
	DefaultCount = 50
	// DefaultSeed is the seed of the reference dataset.
	DefaultSeed int64 = 42
	// DefaultLookbackDays bounds how far back post dates reach.
	DefaultLookbackDays = 30
)

// Options configures a Generator. Zero values fall back to the defaults.
type Options struct {
	Catalog      *catalog.Catalog
	LookbackDays int
	// Now supplies the reference time. It is read once per generation run.
	Now func() time.Time
}

// Generator builds post records from a catalog.
type Generator struct {
	catalog      *catalog.Catalog
	lookbackDays int
	now          func() time.Time
}

// NewGenerator creates a Generator.
func NewGenerator(opts Options) *Generator {
	g := &Generator{
		catalog:      opts.Catalog,
		lookbackDays: opts.LookbackDays,
		now:          opts.Now,
	}
	if g.catalog == nil {
		g.catalog = catalog.Default()
	}
	if g.lookbackDays <= 0 {
		g.lookbackDays = DefaultLookbackDays
	}
	if g.now == nil {
		g.now = time.Now
	}
	return g
}

// NewSource returns a faker drawing from a math/rand source seeded with seed.
// Each call returns an independent source; a source must not be shared
// between goroutines.
func NewSource(seed int64) *gofakeit.Faker {
	src := rand.NewSource(seed).(rand.Source64) //nolint:gosec // synthetic data, not security sensitive
	return gofakeit.NewCustom(src)
}

// LookbackDays reports the date horizon of generated posts.
func (g *Generator) LookbackDays() int {
	return g.lookbackDays
}

// Catalog returns the catalog the generator draws from.
func (g *Generator) Catalog() *catalog.Catalog {
	return g.catalog
}

// Generate produces count posts using a fresh source seeded with seed.
func (g *Generator) Generate(count int, seed int64) []models.Post {
	return g.GenerateFrom(NewSource(seed), count)
}

// GenerateFrom produces count posts drawing every random value from f.
func (g *Generator) GenerateFrom(f *gofakeit.Faker, count int) []models.Post {
	if count <= 0 {
		return []models.Post{}
	}

	ref := g.now()
	d := g.catalog.Distributions
	posts := make([]models.Post, 0, count)

	for i := 0; i < count; i++ {
		platform := g.catalog.Platforms[f.IntRange(0, len(g.catalog.Platforms)-1)]

		multiplier := f.Float64Range(d.ReachMultiplier.Min, d.ReachMultiplier.Max)
		reach := int(math.Floor(float64(platform.Followers) * multiplier))

		likes := fraction(f, reach, d.LikeRate)
		shares := fraction(f, reach, d.ShareRate)
		saves := fraction(f, reach, d.SaveRate)
		comments := fraction(f, reach, d.CommentRate)

		quality := f.Float64Range(d.QualityScore.Min, d.QualityScore.Max)
		daysAgo := f.IntRange(0, g.lookbackDays-1)

		posts = append(posts, models.Post{
			PostID:       fmt.Sprintf("POST_%d", i+1),
			Platform:     platform.Name,
			Date:         ref.AddDate(0, 0, -daysAgo),
			HookType:     f.RandomString(g.catalog.HookTypes),
			CreativeType: f.RandomString(g.catalog.CreativeTypes),
			VisualStyle:  f.RandomString(g.catalog.VisualStyles),
			PostTime:     f.RandomString(g.catalog.TimeSlots),
			Reach:        reach,
			Likes:        likes,
			Shares:       shares,
			Saves:        saves,
			Comments:     comments,
			Followers:    platform.Followers,
			QualityScore: quality,
		})
	}

	return posts
}

func fraction(f *gofakeit.Faker, reach int, r catalog.Range) int {
	return int(math.Floor(float64(reach) * f.Float64Range(r.Min, r.Max)))
}

// Generate produces count posts from the built-in catalog, anchored at the
// current time.
func Generate(count int, seed int64) []models.Post {
	return NewGenerator(Options{}).Generate(count, seed)
}
