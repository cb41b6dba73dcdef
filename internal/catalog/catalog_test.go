package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cat := Default()
	require.NoError(t, cat.Validate())

	assert.Equal(t, []string{"Instagram", "TikTok", "LinkedIn"}, cat.PlatformNames())
	assert.Len(t, cat.HookTypes, 7)
	assert.Len(t, cat.CreativeTypes, 6)
	assert.Len(t, cat.VisualStyles, 8)
	assert.Len(t, cat.TimeSlots, 8)

	p, ok := cat.Platform("TikTok")
	require.True(t, ok)
	assert.Equal(t, 35000, p.Followers)
	assert.Equal(t, "#0A66C2", cat.PlatformColor("LinkedIn"))
	assert.Empty(t, cat.PlatformColor("MySpace"))
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	a := Default()
	a.HookTypes[0] = "changed"
	b := Default()
	assert.Equal(t, "Question", b.HookTypes[0])
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Catalog)
	}{
		{"no platforms", func(c *Catalog) { c.Platforms = nil }},
		{"zero followers", func(c *Catalog) { c.Platforms[0].Followers = 0 }},
		{"duplicate platform", func(c *Catalog) { c.Platforms[1].Name = c.Platforms[0].Name }},
		{"empty platform name", func(c *Catalog) { c.Platforms[0].Name = "  " }},
		{"empty hooks", func(c *Catalog) { c.HookTypes = []string{} }},
		{"duplicate creative", func(c *Catalog) { c.CreativeTypes = []string{"Reel", "Reel"} }},
		{"blank visual style", func(c *Catalog) { c.VisualStyles = []string{""} }},
		{"bad time slot", func(c *Catalog) { c.TimeSlots = []string{"7am"} }},
		{"hour out of range", func(c *Catalog) { c.TimeSlots = []string{"25:00"} }},
		{"inverted range", func(c *Catalog) { c.Distributions.QualityScore = Range{Min: 9, Max: 6} }},
		{"negative rate", func(c *Catalog) { c.Distributions.LikeRate = Range{Min: -0.1, Max: 0.1} }},
		{"zero reach multiplier", func(c *Catalog) { c.Distributions.ReachMultiplier = Range{Min: 0, Max: 2} }},
		{"multiplier yields zero reach", func(c *Catalog) {
			c.Platforms = []Platform{{Name: "Tiny", Followers: 1}}
			c.Distributions.ReachMultiplier = Range{Min: 0.5, Max: 2}
		}},
		{"engagement exceeds reach", func(c *Catalog) { c.Distributions.LikeRate = Range{Min: 0.5, Max: 0.99} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := Default()
			tt.mutate(cat)
			err := cat.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestParse_OverlaysDefaults(t *testing.T) {
	data := []byte(`
platforms:
  - name: YouTube
    followers: 50000
    color: "#FF0000"
hook_types: [Question, Story]
distributions:
  quality_score: {min: 1, max: 10}
`)
	cat, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"YouTube"}, cat.PlatformNames())
	assert.Equal(t, []string{"Question", "Story"}, cat.HookTypes)
	assert.Equal(t, Default().CreativeTypes, cat.CreativeTypes)
	assert.Equal(t, Range{Min: 1, Max: 10}, cat.Distributions.QualityScore)
	assert.Equal(t, Default().Distributions.LikeRate, cat.Distributions.LikeRate)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("platforms: [::"))
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yml")
	require.NoError(t, os.WriteFile(path, []byte("time_slots: [\"06:30\", \"21:15\"]\n"), 0o600))

	cat, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"06:30", "21:15"}, cat.TimeSlots)

	_, err = Load(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}

func TestSlotHour(t *testing.T) {
	tests := []struct {
		slot    string
		want    int
		wantErr bool
	}{
		{"07:00", 7, false},
		{"20:00", 20, false},
		{"00:59", 0, false},
		{"7:00", 0, true},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
		{"ab:00", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.slot, func(t *testing.T) {
			got, err := SlotHour(tt.slot)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasHookType(t *testing.T) {
	cat := Default()
	assert.True(t, cat.HasHookType("Before/After"))
	assert.False(t, cat.HasHookType("before/after"))
}
