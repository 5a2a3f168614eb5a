// internal/collector/googletrends.go

package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/sirupsen/logrus"

	"contentengine/internal/domain/trend"
)

// GoogleTrendsCollector fetches the daily trending-searches feed. When the
// feed is unreachable or unparsable it substitutes the fallback collector's
// output instead of failing, a convenience distinct from the Reddit policy.
type GoogleTrendsCollector struct {
	parser   *gofeed.Parser
	feedURL  string
	region   string
	fallback Collector
	log      *logrus.Entry
}

// NewGoogleTrendsCollector creates a new Google Trends collector with the
// given fallback source.
func NewGoogleTrendsCollector(region string, fallback Collector, log *logrus.Logger) *GoogleTrendsCollector {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: 15 * time.Second}

	return &GoogleTrendsCollector{
		parser:   parser,
		feedURL:  fmt.Sprintf("https://trends.google.com/trending/rss?geo=%s", region),
		region:   region,
		fallback: fallback,
		log:      log.WithField("collector", "google_trends"),
	}
}

// Platform returns the source name for snapshot keys.
func (c *GoogleTrendsCollector) Platform() string { return "google_trends" }

// Collect fetches trending searches, falling back to the alternate source
// on any error.
func (c *GoogleTrendsCollector) Collect(ctx context.Context, limit int) ([]trend.Item, error) {
	if limit <= 0 {
		limit = 10
	}

	feed, err := c.parser.ParseURLWithContext(c.feedURL, ctx)
	if err != nil {
		c.log.WithError(err).Warn("Error collecting Google Trends, falling back to alternate source")
		return c.collectFallback(ctx, limit)
	}

	items := make([]trend.Item, 0, len(feed.Items))
	for i, entry := range feed.Items {
		if i >= limit {
			break
		}
		items = append(items, trend.Item{
			Title:           entry.Title,
			Platform:        c.Platform(),
			EngagementScore: intPtr(rankScore(i)),
			URL:             fmt.Sprintf("https://trends.google.com/trends/explore?q=%s", url.QueryEscape(entry.Title)),
			Metadata: map[string]interface{}{
				"type":   "trending_search",
				"rank":   i + 1,
				"region": c.region,
			},
		})
	}

	valid := validateItems(items, limit)
	if len(valid) == 0 {
		c.log.Warn("Google Trends feed returned no usable entries, falling back to alternate source")
		return c.collectFallback(ctx, limit)
	}

	c.log.WithField("count", len(valid)).Info("Collected Google Trends")

	return valid, nil
}

func (c *GoogleTrendsCollector) collectFallback(ctx context.Context, limit int) ([]trend.Item, error) {
	if c.fallback == nil {
		return nil, trend.NewCollectionError(c.Platform(), fmt.Errorf("trends feed unavailable and no fallback configured"))
	}
	return c.fallback.Collect(ctx, limit)
}

// SetFeedURL overrides the trending-searches feed URL. Used in tests.
func (c *GoogleTrendsCollector) SetFeedURL(url string) { c.feedURL = url }
