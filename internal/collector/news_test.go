package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const newsFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>World News</title>
    <item><title>Markets rally on rate cut</title><link>https://news.example.com/rally</link><pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate></item>
    <item><title>Storm approaches coast</title><link>https://news.example.com/storm</link></item>
    <item><title>Election results announced</title><link>https://news.example.com/election</link></item>
    <item><title>Fourth item beyond per-feed cap</title><link>https://news.example.com/fourth</link></item>
  </channel>
</rss>`

func TestNewsCollector(t *testing.T) {
	t.Run("takes up to three items per feed", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(newsFeed))
		}))
		defer ts.Close()

		c := NewNewsCollector([]string{ts.URL}, newTestLogger())

		items, err := c.Collect(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, items, 3)

		first := items[0]
		assert.Equal(t, "Markets rally on rate cut", first.Title)
		assert.Equal(t, "news", first.Platform)
		assert.Equal(t, "https://news.example.com/rally", first.URL)
		assert.Equal(t, "news_article", first.Metadata["type"])
		assert.Equal(t, "Mon, 02 Jan 2006 15:04:05 GMT", first.Metadata["published"])
		require.NotNil(t, first.EngagementScore)
		assert.GreaterOrEqual(t, *first.EngagementScore, 500)
		assert.LessOrEqual(t, *first.EngagementScore, 2000)
	})

	t.Run("skips broken feeds and keeps collecting", func(t *testing.T) {
		broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer broken.Close()

		healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(newsFeed))
		}))
		defer healthy.Close()

		c := NewNewsCollector([]string{broken.URL, healthy.URL}, newTestLogger())

		items, err := c.Collect(context.Background(), 10)
		require.NoError(t, err)
		assert.Len(t, items, 3)
	})

	t.Run("falls back to the sample data set when every feed fails", func(t *testing.T) {
		broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer broken.Close()

		c := NewNewsCollector([]string{broken.URL}, newTestLogger())

		items, err := c.Collect(context.Background(), 3)
		require.NoError(t, err)
		require.Len(t, items, 3)

		for _, item := range items {
			assert.Equal(t, "news", item.Platform)
			assert.Equal(t, "sample_data", item.Metadata["origin"])
			assert.NotEmpty(t, item.Title)
		}
	})

	t.Run("sample fallback is deterministic", func(t *testing.T) {
		broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer broken.Close()

		c := NewNewsCollector([]string{broken.URL}, newTestLogger())

		first, err := c.Collect(context.Background(), 5)
		require.NoError(t, err)
		second, err := c.Collect(context.Background(), 5)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}
