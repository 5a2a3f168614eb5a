package collector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompetitorCollector(t *testing.T) {
	c := NewCompetitorCollector(newTestLogger())

	t.Run("returns one profile per username and platform", func(t *testing.T) {
		profiles, err := c.Collect(context.Background(), []string{"@garyvee", "@someone"})
		require.NoError(t, err)
		require.Len(t, profiles, 4)

		assert.Equal(t, "@garyvee", profiles[0].Username)
		assert.Equal(t, "Instagram", profiles[0].Platform)
		assert.Equal(t, "@garyvee", profiles[1].Username)
		assert.Equal(t, "TikTok", profiles[1].Platform)
	})

	t.Run("uses known follower baselines", func(t *testing.T) {
		profiles, err := c.Collect(context.Background(), []string{"@garyvee"})
		require.NoError(t, err)
		require.Len(t, profiles, 2)

		assert.Equal(t, 10000000, profiles[0].FollowerCount)
		assert.Equal(t, 12000000, profiles[1].FollowerCount)
	})

	t.Run("empty request selects the default set", func(t *testing.T) {
		profiles, err := c.Collect(context.Background(), nil)
		require.NoError(t, err)
		assert.Len(t, profiles, len(defaultCompetitors)*2)
	})

	t.Run("profiles are deterministic per username", func(t *testing.T) {
		first, err := c.Collect(context.Background(), []string{"@unknownhandle"})
		require.NoError(t, err)
		second, err := c.Collect(context.Background(), []string{"@unknownhandle"})
		require.NoError(t, err)

		require.Len(t, first, 2)
		assert.Equal(t, first[0].FollowerCount, second[0].FollowerCount)
		assert.Equal(t, first[0].TopTopics, second[0].TopTopics)
		assert.Equal(t, first[0].PostFrequency, second[0].PostFrequency)
		assert.Equal(t, first[0].AvgEngagement, second[0].AvgEngagement)
	})

	t.Run("profile fields are populated and bounded", func(t *testing.T) {
		profiles, err := c.Collect(context.Background(), []string{"@anyone"})
		require.NoError(t, err)

		for _, p := range profiles {
			assert.NotEmpty(t, p.PostFrequency)
			assert.Len(t, p.TopTopics, 4)
			assert.Len(t, p.ContentFormats, 3)
			assert.Len(t, p.RecentPosts, 5)
			assert.GreaterOrEqual(t, p.AvgEngagement, 2.5)
			assert.LessOrEqual(t, p.AvgEngagement, 15.0)
			assert.Positive(t, p.FollowerCount)
		}
	})
}
