package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"contentengine/internal/domain/trend"
)

func TestValidateItems(t *testing.T) {
	t.Run("drops items without a title and keeps order", func(t *testing.T) {
		items := []trend.Item{
			{Title: "first", Platform: "reddit"},
			{Title: "", Platform: "reddit"},
			{Title: "second", Platform: "reddit"},
		}

		valid := validateItems(items, 10)

		assert.Len(t, valid, 2)
		assert.Equal(t, "first", valid[0].Title)
		assert.Equal(t, "second", valid[1].Title)
	})

	t.Run("does not alter surviving items", func(t *testing.T) {
		score := 42
		items := []trend.Item{
			{Title: "keep", Platform: "news", EngagementScore: &score, URL: "https://example.com", Metadata: map[string]interface{}{"k": "v"}},
			{Platform: "news"},
		}

		valid := validateItems(items, 10)

		assert.Len(t, valid, 1)
		assert.Equal(t, items[0], valid[0])
	})

	t.Run("truncates to limit keeping highest ranked", func(t *testing.T) {
		items := []trend.Item{
			{Title: "a"}, {Title: "b"}, {Title: "c"}, {Title: "d"},
		}

		valid := validateItems(items, 2)

		assert.Len(t, valid, 2)
		assert.Equal(t, "a", valid[0].Title)
		assert.Equal(t, "b", valid[1].Title)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		assert.Empty(t, validateItems(nil, 5))
	})
}

func TestRankScore(t *testing.T) {
	assert.Equal(t, 1000, rankScore(0))
	assert.Equal(t, 900, rankScore(1))
	assert.Equal(t, 100, rankScore(9))

	// floor at 100 for any deeper rank
	assert.Equal(t, 100, rankScore(10))
	assert.Equal(t, 100, rankScore(50))

	// monotonically decreasing
	for i := 1; i < 20; i++ {
		assert.LessOrEqual(t, rankScore(i), rankScore(i-1))
	}
}
