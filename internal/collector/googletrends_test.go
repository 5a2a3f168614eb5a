package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentengine/internal/domain/trend"
)

const trendsFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Daily Search Trends</title>
    <item><title>ipl final</title></item>
    <item><title>budget 2026</title></item>
    <item><title>monsoon forecast</title></item>
  </channel>
</rss>`

type stubCollector struct {
	platform string
	items    []trend.Item
	err      error
	calls    int
}

func (s *stubCollector) Platform() string { return s.platform }

func (s *stubCollector) Collect(ctx context.Context, limit int) ([]trend.Item, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if limit > 0 && len(s.items) > limit {
		return s.items[:limit], nil
	}
	return s.items, nil
}

func TestGoogleTrendsCollector(t *testing.T) {
	t.Run("maps feed entries with rank-synthesized scores", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/rss+xml")
			w.Write([]byte(trendsFeed))
		}))
		defer ts.Close()

		fallback := &stubCollector{platform: "reddit"}
		c := NewGoogleTrendsCollector("IN", fallback, newTestLogger())
		c.SetFeedURL(ts.URL)

		items, err := c.Collect(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, items, 3)

		assert.Equal(t, "ipl final", items[0].Title)
		assert.Equal(t, "google_trends", items[0].Platform)
		require.NotNil(t, items[0].EngagementScore)
		assert.Equal(t, 1000, *items[0].EngagementScore)
		assert.Equal(t, 900, *items[1].EngagementScore)
		assert.Equal(t, 1, items[0].Metadata["rank"])
		assert.Equal(t, "IN", items[0].Metadata["region"])
		assert.Contains(t, items[0].URL, "trends.google.com")

		assert.Zero(t, fallback.calls)
	})

	t.Run("limit bounds the result", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(trendsFeed))
		}))
		defer ts.Close()

		c := NewGoogleTrendsCollector("IN", nil, newTestLogger())
		c.SetFeedURL(ts.URL)

		items, err := c.Collect(context.Background(), 2)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("falls back to the alternate source on feed failure", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer ts.Close()

		fallback := &stubCollector{
			platform: "reddit",
			items:    []trend.Item{{Title: "from reddit", Platform: "reddit"}},
		}
		c := NewGoogleTrendsCollector("IN", fallback, newTestLogger())
		c.SetFeedURL(ts.URL)

		items, err := c.Collect(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, items, 1)

		// fallback items keep their own platform tag
		assert.Equal(t, "reddit", items[0].Platform)
		assert.Equal(t, 1, fallback.calls)
	})

	t.Run("errors when feed fails and no fallback is configured", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer ts.Close()

		c := NewGoogleTrendsCollector("IN", nil, newTestLogger())
		c.SetFeedURL(ts.URL)

		_, err := c.Collect(context.Background(), 10)
		assert.Error(t, err)
	})
}
